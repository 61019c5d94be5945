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
	apimv1 "github.com/hedinit/azure-apim-functions-operator/api/v1"
	"github.com/hedinit/azure-apim-functions-operator/internal/apim"
)

// configFromSpec maps an APIMFunctionAPI onto the deployment config, the cloud context
// and the name of the function app to front.
func configFromSpec(fnAPI *apimv1.APIMFunctionAPI, svc *apimv1.APIMService, proxyPassword string) (*apim.Config, apim.Cloud, string) {
	spec := fnAPI.Spec

	serviceName := spec.ServiceName
	if serviceName == "" {
		serviceName = fnAPI.Name
	}
	appName := spec.FunctionApp.Name
	if appName == "" {
		appName = serviceName
	}
	appResourceGroup := spec.FunctionApp.ResourceGroup
	if appResourceGroup == "" {
		appResourceGroup = svc.Spec.ResourceGroup
	}

	cloud := apim.Cloud{
		SubscriptionID: svc.Spec.Subscription,
		ResourceGroup:  appResourceGroup,
		ServiceName:    serviceName,
	}

	cfg := &apim.Config{
		Name:          svc.Spec.Name,
		ResourceGroup: svc.Spec.ResourceGroup,
		API: apim.APIConfig{
			Name:                 spec.API.Name,
			DisplayName:          spec.API.DisplayName,
			Description:          spec.API.Description,
			Path:                 spec.API.Path,
			Protocols:            spec.API.Protocols,
			SubscriptionRequired: spec.API.SubscriptionRequired,
		},
	}

	if c := spec.CORS; c != nil {
		cfg.CORS = &apim.CORSPolicy{
			AllowCredentials: c.AllowCredentials,
			AllowedOrigins:   c.AllowedOrigins,
			AllowedMethods:   c.AllowedMethods,
			AllowedHeaders:   c.AllowedHeaders,
			ExposedHeaders:   c.ExposedHeaders,
		}
	}

	if b := spec.Backend; b != nil {
		cfg.Backend = &apim.BackendConfig{
			Title:       b.Title,
			Protocol:    b.Protocol,
			Description: b.Description,
		}
		if b.TLS != nil {
			cfg.Backend.TLS = &apim.BackendTLS{
				ValidateCertificateChain: b.TLS.ValidateCertificateChain,
				ValidateCertificateName:  b.TLS.ValidateCertificateName,
			}
		}
		if b.Proxy != nil {
			cfg.Backend.Proxy = &apim.BackendProxy{
				URL:      b.Proxy.URL,
				Username: b.Proxy.Username,
				Password: proxyPassword,
			}
		}
	}

	for _, fn := range spec.Functions {
		function := apim.Function{Name: fn.Name}
		if fn.APIM != nil {
			function.APIM = &apim.FunctionAPIM{}
			for _, op := range fn.APIM.Operations {
				function.APIM.Operations = append(function.APIM.Operations, operationFromSpec(op))
			}
		}
		cfg.Functions = append(cfg.Functions, function)
	}

	return cfg, cloud, appName
}

func operationFromSpec(op apimv1.OperationDeclaration) apim.Operation {
	out := apim.Operation{
		Method:      op.Method,
		URLTemplate: op.URLTemplate,
		DisplayName: op.DisplayName,
		Description: op.Description,
	}
	for _, p := range op.TemplateParameters {
		out.TemplateParameters = append(out.TemplateParameters, parameterFromSpec(p))
	}
	for _, resp := range op.Responses {
		r := apim.Response{StatusCode: resp.StatusCode, Description: resp.Description}
		for _, rep := range resp.Representations {
			r.Representations = append(r.Representations, apim.Representation{ContentType: rep.ContentType})
		}
		for _, h := range resp.Headers {
			r.Headers = append(r.Headers, parameterFromSpec(h))
		}
		out.Responses = append(out.Responses, r)
	}
	return out
}

func parameterFromSpec(p apimv1.ParameterSpec) apim.Parameter {
	return apim.Parameter{
		Name:         p.Name,
		Type:         p.Type,
		Required:     p.Required,
		Description:  p.Description,
		DefaultValue: p.DefaultValue,
		Values:       p.Values,
	}
}
