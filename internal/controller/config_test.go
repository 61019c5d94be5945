/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apimv1 "github.com/hedinit/azure-apim-functions-operator/api/v1"
	"github.com/hedinit/azure-apim-functions-operator/internal/apim"
)

var _ = Describe("configFromSpec", func() {
	svc := &apimv1.APIMService{
		Spec: apimv1.APIMServiceSpec{Name: "apim1", ResourceGroup: "apim-rg", Subscription: "sub"},
	}

	It("uses explicit names when given", func() {
		fnAPI := &apimv1.APIMFunctionAPI{
			ObjectMeta: metav1.ObjectMeta{Name: "cr-name"},
			Spec: apimv1.APIMFunctionAPISpec{
				ServiceName: "orders",
				FunctionApp: apimv1.FunctionAppReference{Name: "orders-func", ResourceGroup: "func-rg"},
				API:         apimv1.APIDefinition{Name: "api1", Path: "orders", SubscriptionRequired: to.Ptr(false)},
				Backend: &apimv1.BackendOverrides{
					Title: "Orders",
					TLS:   &apimv1.BackendTLS{ValidateCertificateName: to.Ptr(true)},
					Proxy: &apimv1.BackendProxy{URL: "http://proxy"},
				},
				Functions: []apimv1.FunctionDeclaration{{
					Name: "get",
					APIM: &apimv1.FunctionAPIM{Operations: []apimv1.OperationDeclaration{{
						Method:             "get",
						URLTemplate:        "/orders/{id}",
						TemplateParameters: []apimv1.ParameterSpec{{Name: "id", Type: "string", Required: true}},
						Responses: []apimv1.ResponseSpec{{
							StatusCode:      200,
							Representations: []apimv1.RepresentationSpec{{ContentType: "application/json"}},
						}},
					}}},
				}},
			},
		}

		cfg, cloud, appName := configFromSpec(fnAPI, svc, "pw")
		Expect(cloud).To(Equal(apim.Cloud{SubscriptionID: "sub", ResourceGroup: "func-rg", ServiceName: "orders"}))
		Expect(appName).To(Equal("orders-func"))
		Expect(cfg.Name).To(Equal("apim1"))
		Expect(cfg.ResourceGroup).To(Equal("apim-rg"))
		Expect(*cfg.API.SubscriptionRequired).To(BeFalse())
		Expect(cfg.CORS).To(BeNil())
		Expect(cfg.Backend.Title).To(Equal("Orders"))
		Expect(*cfg.Backend.TLS.ValidateCertificateName).To(BeTrue())
		Expect(cfg.Backend.Proxy).To(Equal(&apim.BackendProxy{URL: "http://proxy", Password: "pw"}))

		Expect(cfg.Functions).To(HaveLen(1))
		op := cfg.Functions[0].APIM.Operations[0]
		Expect(op.TemplateParameters).To(Equal([]apim.Parameter{{Name: "id", Type: "string", Required: true}}))
		Expect(op.Responses[0].Representations).To(Equal([]apim.Representation{{ContentType: "application/json"}}))
	})

	It("defaults names and resource group and keeps unexposed functions", func() {
		fnAPI := &apimv1.APIMFunctionAPI{
			ObjectMeta: metav1.ObjectMeta{Name: "billing"},
			Spec: apimv1.APIMFunctionAPISpec{
				API:       apimv1.APIDefinition{Name: "billing-api"},
				CORS:      &apimv1.CORSPolicy{AllowCredentials: true, AllowedOrigins: []string{"*"}},
				Functions: []apimv1.FunctionDeclaration{{Name: "nightly"}},
			},
		}

		cfg, cloud, appName := configFromSpec(fnAPI, svc, "")
		Expect(cloud.ServiceName).To(Equal("billing"))
		Expect(cloud.ResourceGroup).To(Equal("apim-rg"))
		Expect(appName).To(Equal("billing"))
		Expect(cfg.Backend).To(BeNil())
		Expect(cfg.CORS).To(Equal(&apim.CORSPolicy{AllowCredentials: true, AllowedOrigins: []string{"*"}}))
		Expect(cfg.Functions).To(Equal([]apim.Function{{Name: "nightly"}}))
	})
})

var _ = DescribeTable("gatewayHost",
	func(in, expected string) {
		Expect(gatewayHost(in)).To(Equal(expected))
	},
	Entry("full url", "https://apim1.azure-api.net", "apim1.azure-api.net"),
	Entry("url with path", "https://apim1.azure-api.net/", "apim1.azure-api.net"),
	Entry("bare host", "apim1.azure-api.net", "apim1.azure-api.net"),
)
