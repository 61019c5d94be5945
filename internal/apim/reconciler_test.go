package apim

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/apimanagement/armapimanagement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Reconciler", func() {
	var (
		ctx     context.Context
		client  *fakeManagementClient
		gateway *fakeFunctionAppGateway
		cloud   Cloud
		cfg     *Config
	)

	newReconciler := func(c *Config) *Reconciler {
		r, err := NewReconciler(cloud, c, client, gateway)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		ctx = context.Background()
		client = newFakeManagementClient()
		gateway = newFakeFunctionAppGateway()
		cloud = Cloud{SubscriptionID: "sub", ResourceGroup: "rg", ServiceName: "orders-svc", Logger: GinkgoLogr}
		cfg = &Config{
			Name: "apim1",
			API:  APIConfig{Name: "api1", Path: "orders", Protocols: []string{"https"}},
			CORS: &CORSPolicy{AllowedOrigins: []string{"https://x.com"}},
			Functions: []Function{{
				Name: "list",
				APIM: &FunctionAPIM{Operations: []Operation{{Method: "get", URLTemplate: "/list"}}},
			}},
		}
	})

	It("rejects an invalid configuration on construction", func() {
		_, err := NewReconciler(cloud, &Config{}, client, gateway)
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
	})

	It("refuses a configuration whose operations would overwrite each other", func() {
		cfg.Functions = []Function{
			{Name: "a", APIM: &FunctionAPIM{Operations: []Operation{
				{Method: "get", URLTemplate: "/a"},
				{Method: "post", URLTemplate: "/a"},
			}}},
			{Name: "a-2", APIM: &FunctionAPIM{Operations: []Operation{{Method: "delete", URLTemplate: "/other"}}}},
		}
		_, err := NewReconciler(cloud, cfg, client, gateway)
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		Expect(client.Calls()).To(BeEmpty())
	})

	Context("when apim is not configured", func() {
		It("probes report nothing and deploys are skipped without remote calls", func() {
			r := newReconciler(nil)

			service, ok := r.Get(ctx)
			Expect(ok).To(BeFalse())
			Expect(service).To(BeNil())

			api, ok := r.GetAPI(ctx)
			Expect(ok).To(BeFalse())
			Expect(api).To(BeNil())

			deployed, err := r.DeployAPI(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(deployed).To(BeNil())

			results, err := r.DeployFunctions(ctx, client.service, client.api)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())

			Expect(client.Calls()).To(BeEmpty())
			Expect(gateway.Calls()).To(BeEmpty())
		})
	})

	Context("probes", func() {
		It("returns the service and api when they exist", func() {
			r := newReconciler(cfg)

			service, ok := r.Get(ctx)
			Expect(ok).To(BeTrue())
			Expect(*service.Properties.GatewayURL).To(Equal("https://apim1.azure-api.net"))

			api, ok := r.GetAPI(ctx)
			Expect(ok).To(BeTrue())
			Expect(*api.Properties.Path).To(Equal("orders"))
			Expect(client.Calls()).To(Equal([]call{{"GetService", "apim1"}, {"GetAPI", "api1"}}))
		})

		It("swallows lookup failures", func() {
			client.getServiceErr = fmt.Errorf("api management service apim1: %w", ErrNotFound)
			client.getAPIErr = errors.New("boom")
			r := newReconciler(cfg)

			_, ok := r.Get(ctx)
			Expect(ok).To(BeFalse())
			_, ok = r.GetAPI(ctx)
			Expect(ok).To(BeFalse())
		})

		It("LookupService keeps the cause of a failed lookup", func() {
			client.getServiceErr = fmt.Errorf("api management service apim1: %w", ErrNotFound)
			_, err := newReconciler(cfg).LookupService(ctx)
			Expect(err).To(MatchError(ErrNotFound))

			denied := errors.New("AuthorizationFailed")
			client.getServiceErr = denied
			_, err = newReconciler(cfg).LookupService(ctx)
			Expect(err).To(MatchError(denied))
			Expect(errors.Is(err, ErrNotFound)).To(BeFalse())

			_, err = newReconciler(nil).LookupService(ctx)
			Expect(err).To(MatchError(ErrPrerequisiteMissing))
		})
	})

	Context("DeployAPI", func() {
		It("upserts api, cors policy, property and backend in order", func() {
			r := newReconciler(cfg)

			api, err := r.DeployAPI(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(api).To(Equal(client.api))

			Expect(client.Calls()).To(Equal([]call{
				{"UpsertAPI", "api1"},
				{"UpsertAPIPolicy", "api1"},
				{"UpsertProperty", "orders-svc-key"},
				{"UpsertBackend", "orders-svc"},
			}))
			Expect(gateway.Calls()).To(Equal([]string{"Get", "GetMasterKey"}))

			By("sending the api definition")
			props := client.apiParams.Properties
			Expect(*props.Path).To(Equal("orders"))
			Expect(*props.DisplayName).To(Equal("api1"))
			Expect(*props.IsCurrent).To(BeTrue())
			Expect(props.Protocols).To(Equal([]*armapimanagement.Protocol{to.Ptr(armapimanagement.ProtocolHTTPS)}))

			By("attaching the cors policy")
			Expect(client.apiPolicy).To(ContainSubstring("<origin>https://x.com</origin>"))

			By("storing the master key as a secret")
			Expect(*client.property.Properties.DisplayName).To(Equal("orders-svc-key"))
			Expect(*client.property.Properties.Secret).To(BeTrue())
			Expect(*client.property.Properties.Value).To(Equal("master-key"))

			By("pointing the backend at the function app")
			Expect(*client.backend.Properties.URL).To(Equal("https://myapp.azurewebsites.net/api"))
			Expect(*client.backend.Properties.Credentials.Header["x-functions-key"][0]).To(Equal("{{orders-svc-key}}"))
		})

		It("skips the cors policy when none is configured", func() {
			cfg.CORS = nil
			r := newReconciler(cfg)

			_, err := r.DeployAPI(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Kinds()).To(Equal([]string{"UpsertAPI", "UpsertProperty", "UpsertBackend"}))
		})

		It("aborts before any upsert when the function app cannot be resolved", func() {
			gateway.getErr = ErrNotFound
			r := newReconciler(cfg)

			_, err := r.DeployAPI(ctx)
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
			Expect(client.Calls()).To(BeEmpty())
		})

		It("aborts the pass when the api upsert fails", func() {
			client.upsertAPIErr = errors.New("conflict")
			r := newReconciler(cfg)

			api, err := r.DeployAPI(ctx)
			Expect(err).To(MatchError(ContainSubstring("creating apim api api1: conflict")))
			Expect(api).To(BeNil())
			Expect(client.Kinds()).To(Equal([]string{"UpsertAPI"}))
		})

		It("does not create the backend when the property upsert fails", func() {
			client.propertyErr = errors.New("denied")
			r := newReconciler(cfg)

			_, err := r.DeployAPI(ctx)
			Expect(err).To(MatchError(ContainSubstring("creating apim property orders-svc-key")))
			Expect(client.Kinds()).NotTo(ContainElement("UpsertBackend"))
		})

		It("does not store a key when the master key cannot be fetched", func() {
			gateway.keyErr = errors.New("no keys")
			r := newReconciler(cfg)

			_, err := r.DeployAPI(ctx)
			Expect(err).To(MatchError(ContainSubstring("fetching master key")))
			Expect(client.Kinds()).To(Equal([]string{"UpsertAPI", "UpsertAPIPolicy"}))
		})

		It("returns backend failures", func() {
			client.backendErr = errors.New("bad backend")
			r := newReconciler(cfg)

			_, err := r.DeployAPI(ctx)
			Expect(err).To(MatchError(ContainSubstring("creating apim backend orders-svc: bad backend")))
		})
	})

	Context("DeployFunctions", func() {
		It("fails fast without prerequisites", func() {
			r := newReconciler(cfg)

			_, err := r.DeployFunctions(ctx, nil, client.api)
			Expect(err).To(MatchError(ErrPrerequisiteMissing))
			_, err = r.DeployFunctions(ctx, client.service, nil)
			Expect(err).To(MatchError(ErrPrerequisiteMissing))
			_, err = r.DeployFunction(ctx, nil, nil, cfg.Functions[0])
			Expect(err).To(MatchError(ErrPrerequisiteMissing))
			Expect(client.Calls()).To(BeEmpty())
		})

		It("upserts one operation and one policy for the declared endpoint", func() {
			r := newReconciler(cfg)

			results, err := r.DeployFunctions(ctx, client.service, client.api)
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Calls()).To(Equal([]call{{"UpsertOperation", "list"}, {"UpsertOperationPolicy", "list"}}))

			Expect(results).To(HaveLen(1))
			Expect(results[0].Err).NotTo(HaveOccurred())
			Expect(results[0].Method).To(Equal("GET"))
			Expect(results[0].URL).To(Equal("https://apim1.azure-api.net/orders/list"))
			Expect(*results[0].Operation.Name).To(Equal("list"))
			Expect(client.opPolicies["list"]).To(ContainSubstring(`backend-id="orders-svc"`))
			Expect(FailedOperations(results)).To(BeEmpty())
			Expect(JoinErrors(results)).To(Succeed())
		})

		It("returns results in declaration order", func() {
			cfg.Functions = []Function{
				{Name: "a", APIM: &FunctionAPIM{Operations: []Operation{{Method: "get", URLTemplate: "/a"}, {Method: "post", URLTemplate: "/a"}}}},
				{Name: "skipped"},
				{Name: "b", APIM: &FunctionAPIM{Operations: []Operation{{Method: "delete", URLTemplate: "/b/{id}"}}}},
			}
			r := newReconciler(cfg)

			results, err := r.DeployFunctions(ctx, client.service, client.api)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect([]string{results[0].Method, results[1].Method, results[2].Method}).To(Equal([]string{"GET", "POST", "DELETE"}))
			Expect(client.operations).To(HaveKey("a"))
			Expect(client.operations).To(HaveKey("a-2"))
			Expect(client.operations).To(HaveKey("b"))
			Expect(client.Calls()).To(HaveLen(6))
		})

		It("reports a failed operation without failing the aggregate", func() {
			client.operationPolicyErrs["list"] = errors.New("invalid policy")
			r := newReconciler(cfg)

			results, err := r.DeployFunctions(ctx, client.service, client.api)
			Expect(err).NotTo(HaveOccurred())
			Expect(FailedOperations(results)).To(HaveLen(1))
			Expect(results[0].Operation).To(BeNil())
			Expect(JoinErrors(results)).To(MatchError(ContainSubstring("list GET /list: attaching policy to operation list: invalid policy")))
		})
	})

	Context("DeployFunction", func() {
		It("does nothing for a function without an apim section", func() {
			r := newReconciler(cfg)

			results, err := r.DeployFunction(ctx, client.service, client.api, Function{Name: "timer"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
			Expect(client.Calls()).To(BeEmpty())
		})

		DescribeTable("isolates a failing operation from its siblings",
			func(failing int) {
				const n = 5
				fn := Function{Name: "orders", APIM: &FunctionAPIM{}}
				for i := 0; i < n; i++ {
					fn.APIM.Operations = append(fn.APIM.Operations, Operation{Method: "get", URLTemplate: fmt.Sprintf("/orders/%d", i)})
				}
				failingID := OperationID("orders", failing)
				client.operationErrs[failingID] = errors.New("rejected")
				r := newReconciler(cfg)

				results, err := r.DeployFunction(ctx, client.service, client.api, fn)
				Expect(err).NotTo(HaveOccurred())
				Expect(results).To(HaveLen(n))

				var attempted []string
				for _, c := range client.Calls() {
					if c.Kind == "UpsertOperation" {
						attempted = append(attempted, c.ID)
					}
				}
				Expect(attempted).To(ConsistOf("orders", "orders-2", "orders-3", "orders-4", "orders-5"))

				for i, res := range results {
					if i == failing {
						Expect(res.Err).To(MatchError(ContainSubstring("rejected")))
						Expect(res.Operation).To(BeNil())
						continue
					}
					Expect(res.Err).NotTo(HaveOccurred())
					Expect(res.Operation).NotTo(BeNil())
				}
				Expect(client.opPolicies).To(HaveLen(n - 1))
				Expect(client.opPolicies).NotTo(HaveKey(failingID))
			},
			Entry("first", 0),
			Entry("middle", 2),
			Entry("last", 4),
		)

		It("reports a cancelled context", func() {
			r := newReconciler(cfg)
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := r.DeployFunction(cancelled, client.service, client.api, cfg.Functions[0])
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Context("DeployOperation", func() {
		It("counts successes and failures per api", func() {
			cfg.API.Name = "metrics-api"
			client.operationErrs["broken"] = errors.New("nope")
			r := newReconciler(cfg)

			success := Metrics.operations.WithLabelValues("metrics-api", "success")
			failure := Metrics.operations.WithLabelValues("metrics-api", "error")
			before := testutil.ToFloat64(success)
			beforeFailure := testutil.ToFloat64(failure)

			ok := r.DeployOperation(ctx, client.service, client.api, OperationOptions{Function: "fine", Operation: Operation{Method: "get", URLTemplate: "/fine"}})
			Expect(ok.Err).NotTo(HaveOccurred())
			bad := r.DeployOperation(ctx, client.service, client.api, OperationOptions{Function: "broken", Operation: Operation{Method: "get", URLTemplate: "/broken"}})
			Expect(bad.Err).To(HaveOccurred())

			Expect(testutil.ToFloat64(success) - before).To(Equal(1.0))
			Expect(testutil.ToFloat64(failure) - beforeFailure).To(Equal(1.0))
		})

		It("builds the url from the gateway and api path", func() {
			client.service.Properties.GatewayURL = to.Ptr("https://gw.example.net")
			r := newReconciler(cfg)

			res := r.DeployOperation(ctx, client.service, client.api, OperationOptions{
				Function:  "get",
				Index:     1,
				Operation: Operation{Method: "patch", URLTemplate: "/items/{id}"},
			})
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.URL).To(Equal("https://gw.example.net/orders/items/{id}"))
			Expect(client.Calls()).To(Equal([]call{{"UpsertOperation", "get-2"}, {"UpsertOperationPolicy", "get-2"}}))
			Expect(*client.operations["get-2"].Properties.Method).To(Equal("PATCH"))
		})
	})
})
