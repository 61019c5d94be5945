package apim

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/apimanagement/armapimanagement"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sethvargo/go-retry"
)

const serviceScope = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.ApiManagement/service/apim1"

var _ = Describe("ARM adapters", func() {
	var (
		ctx       context.Context
		transport *fakeTransport
	)

	BeforeEach(func() {
		ctx = context.Background()
		transport = &fakeTransport{handler: func(req *http.Request) fakeResponse {
			return fakeResponse{status: http.StatusOK, body: `{"properties":{"provisioningState":"Succeeded"}}`}
		}}
	})

	Context("ARMManagementClient", func() {
		var client *ARMManagementClient

		BeforeEach(func() {
			var err error
			client, err = NewARMManagementClient("sub", fakeCredential{}, armOptions(transport))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reads the gateway url of the service", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusOK, body: `{"name":"apim1","properties":{"gatewayUrl":"https://apim1.azure-api.net"}}`}
			}

			service, err := client.GetService(ctx, "rg", "apim1")
			Expect(err).NotTo(HaveOccurred())
			Expect(*service.Properties.GatewayURL).To(Equal("https://apim1.azure-api.net"))
			Expect(transport.Requests()).To(HaveLen(1))
			Expect(transport.Requests()[0].Method).To(Equal(http.MethodGet))
			Expect(transport.Requests()[0].Path).To(Equal(serviceScope))
		})

		It("maps 404 to ErrNotFound", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusNotFound, body: notFoundBody}
			}

			_, err := client.GetService(ctx, "rg", "apim1")
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
			_, err = client.GetAPI(ctx, "rg", "apim1", "api1")
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
		})

		It("keeps other failures with their remote error code", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusBadRequest, body: `{"error":{"code":"ValidationError","message":"bad template"}}`}
			}

			_, err := client.UpsertOperation(ctx, "rg", "apim1", "api1", "list", NewOperationContract("list", Operation{Method: "get", URLTemplate: "/list"}))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, ErrNotFound)).To(BeFalse())
			code, status, ok := remoteErrorBody(err)
			Expect(ok).To(BeTrue())
			Expect(code).To(Equal("ValidationError"))
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("sends every upsert to its resource path", func() {
			_, err := client.UpsertAPI(ctx, "rg", "apim1", "api1", armapimanagement.APICreateOrUpdateParameter{
				Properties: &armapimanagement.APICreateOrUpdateProperties{Path: to.Ptr("orders"), IsCurrent: to.Ptr(true)},
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = client.UpsertAPIPolicy(ctx, "rg", "apim1", "api1", rawXMLPolicy("<policies/>"))
			Expect(err).NotTo(HaveOccurred())
			_, err = client.UpsertProperty(ctx, "rg", "apim1", "svc-key", armapimanagement.NamedValueCreateContract{
				Properties: &armapimanagement.NamedValueCreateContractProperties{DisplayName: to.Ptr("svc-key"), Secret: to.Ptr(true), Value: to.Ptr("k")},
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = client.UpsertBackend(ctx, "rg", "apim1", "svc", NewBackendContract("svc", &FunctionApp{ID: "/x", Name: "app", DefaultHostName: "app.net"}, nil))
			Expect(err).NotTo(HaveOccurred())
			_, err = client.UpsertOperation(ctx, "rg", "apim1", "api1", "list", NewOperationContract("list", Operation{Method: "get", URLTemplate: "/list"}))
			Expect(err).NotTo(HaveOccurred())
			_, err = client.UpsertOperationPolicy(ctx, "rg", "apim1", "api1", "list", rawXMLPolicy("<policies/>"))
			Expect(err).NotTo(HaveOccurred())

			var paths []string
			for _, req := range transport.Requests() {
				Expect(req.Method).To(Equal(http.MethodPut))
				paths = append(paths, strings.TrimPrefix(req.Path, serviceScope))
			}
			Expect(paths).To(Equal([]string{
				"/apis/api1",
				"/apis/api1/policies/policy",
				"/namedValues/svc-key",
				"/backends/svc",
				"/apis/api1/operations/list",
				"/apis/api1/operations/list/policies/policy",
			}))

			requests := transport.Requests()
			Expect(requests[0].Body).To(ContainSubstring(`"isCurrent":true`))
			Expect(requests[1].Body).To(ContainSubstring(`"format":"rawxml"`))
			Expect(requests[2].Body).To(ContainSubstring(`"secret":true`))
			Expect(requests[3].Body).To(ContainSubstring(`"x-functions-key":["{{svc-key}}"]`))
			Expect(requests[4].Body).To(ContainSubstring(`"method":"GET"`))
		})
	})

	Context("ARMFunctionAppGateway", func() {
		const siteScope = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Web/sites/myApp"

		var (
			gateway *ARMFunctionAppGateway
			app     = &FunctionApp{ID: siteScope, Name: "myApp", DefaultHostName: "myapp.azurewebsites.net"}
		)

		BeforeEach(func() {
			var err error
			gateway, err = NewARMFunctionAppGateway(
				Cloud{SubscriptionID: "sub", ResourceGroup: "rg", ServiceName: "svc", Logger: GinkgoLogr},
				"myApp", fakeCredential{}, armOptions(transport),
				WithMasterKeyBackoff(func() retry.Backoff {
					return retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond))
				}),
			)
			Expect(err).NotTo(HaveOccurred())
		})

		It("resolves the site", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusOK, body: `{"id":"` + siteScope + `","name":"myApp","properties":{"defaultHostName":"myapp.azurewebsites.net"}}`}
			}

			got, err := gateway.Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(app))
			Expect(transport.Requests()[0].Path).To(Equal(siteScope))
		})

		It("rejects a site without a host name", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusOK, body: `{"id":"` + siteScope + `","name":"myApp","properties":{}}`}
			}

			_, err := gateway.Get(ctx)
			Expect(err).To(MatchError(ContainSubstring("no default host name")))
		})

		It("maps a missing site to ErrNotFound", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusNotFound, body: notFoundBody}
			}

			_, err := gateway.Get(ctx)
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
		})

		It("retries until the master key is available", func() {
			attempts := 0
			transport.handler = func(*http.Request) fakeResponse {
				attempts++
				switch attempts {
				case 1:
					return fakeResponse{status: http.StatusInternalServerError, body: `{"error":{"code":"InternalError","message":"host not ready"}}`}
				case 2:
					return fakeResponse{status: http.StatusOK, body: `{"functionKeys":{}}`}
				default:
					return fakeResponse{status: http.StatusOK, body: `{"masterKey":"secret"}`}
				}
			}

			key, err := gateway.GetMasterKey(ctx, app)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("secret"))

			requests := transport.Requests()
			Expect(requests).To(HaveLen(3))
			Expect(requests[0].Method).To(Equal(http.MethodPost))
			Expect(requests[0].Path).To(Equal(siteScope + "/host/default/listkeys"))
		})

		It("gives up after the configured retries", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusOK, body: `{}`}
			}

			_, err := gateway.GetMasterKey(ctx, app)
			Expect(err).To(MatchError(ContainSubstring("no master key")))
			Expect(transport.Requests()).To(HaveLen(4))
		})

		It("does not retry a missing site", func() {
			transport.handler = func(*http.Request) fakeResponse {
				return fakeResponse{status: http.StatusNotFound, body: notFoundBody}
			}

			_, err := gateway.GetMasterKey(ctx, app)
			Expect(err).To(HaveOccurred())
			Expect(transport.Requests()).To(HaveLen(1))
		})
	})
})
