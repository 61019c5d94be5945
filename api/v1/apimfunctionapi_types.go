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

package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// APIMFunctionAPISpec declares an API in Azure APIM that fronts an Azure Function App.
// Every declared function operation is exposed through a single backend pointing at the function app.
type APIMFunctionAPISpec struct {
	// APIMService is the name of the APIMService custom resource identifying the APIM instance.
	APIMService string `json:"apimService"`

	// ServiceName names the deployed service. It is used as the APIM backend id and to derive
	// the name of the named value holding the function app master key ("<serviceName>-key").
	// Defaults to the name of this resource.
	// +optional
	ServiceName string `json:"serviceName,omitempty"`

	// FunctionApp identifies the function app the backend forwards to.
	// +optional
	FunctionApp FunctionAppReference `json:"functionApp,omitempty"`

	// API describes the logical API created in APIM.
	API APIDefinition `json:"api"`

	// CORS, when set, is attached as an API-scoped policy right after the API is upserted.
	// +optional
	CORS *CORSPolicy `json:"cors,omitempty"`

	// Backend overrides the defaults of the generated backend.
	// +optional
	Backend *BackendOverrides `json:"backend,omitempty"`

	// Functions lists the functions of the service. Functions without an apim section are not exposed.
	// +optional
	Functions []FunctionDeclaration `json:"functions,omitempty"`
}

// FunctionAppReference points at an Azure Function App (a Microsoft.Web/sites resource).
type FunctionAppReference struct {
	// Name of the function app. Defaults to the service name.
	// +optional
	Name string `json:"name,omitempty"`
	// ResourceGroup of the function app. Defaults to the resource group of the APIM service.
	// +optional
	ResourceGroup string `json:"resourceGroup,omitempty"`
}

// APIDefinition describes the APIM API.
type APIDefinition struct {
	// Name is the API id in APIM.
	Name string `json:"name"`
	// +optional
	DisplayName string `json:"displayName,omitempty"`
	// +optional
	Description string `json:"description,omitempty"`
	// Path is the API URL suffix relative to the gateway URL.
	Path string `json:"path"`
	// Protocols the API is exposed on ("http", "https").
	// +optional
	Protocols []string `json:"protocols,omitempty"`
	// SubscriptionRequired controls whether a subscription key is required to call the API.
	// +optional
	SubscriptionRequired *bool `json:"subscriptionRequired,omitempty"`
}

// CORSPolicy is rendered into an APIM <cors> policy.
// Lists left empty are omitted from the generated policy.
type CORSPolicy struct {
	// +optional
	AllowCredentials bool `json:"allowCredentials,omitempty"`
	// +optional
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
	// +optional
	AllowedMethods []string `json:"allowedMethods,omitempty"`
	// +optional
	AllowedHeaders []string `json:"allowedHeaders,omitempty"`
	// +optional
	ExposedHeaders []string `json:"exposedHeaders,omitempty"`
}

// BackendOverrides customises the generated backend.
type BackendOverrides struct {
	// Title defaults to the function app name.
	// +optional
	Title string `json:"title,omitempty"`
	// Protocol defaults to "http".
	// +kubebuilder:validation:Enum=http;soap
	// +optional
	Protocol string `json:"protocol,omitempty"`
	// +optional
	Description string `json:"description,omitempty"`
	// +optional
	TLS *BackendTLS `json:"tls,omitempty"`
	// +optional
	Proxy *BackendProxy `json:"proxy,omitempty"`
}

// BackendTLS controls certificate validation towards the backend.
type BackendTLS struct {
	// +optional
	ValidateCertificateChain *bool `json:"validateCertificateChain,omitempty"`
	// +optional
	ValidateCertificateName *bool `json:"validateCertificateName,omitempty"`
}

// BackendProxy configures an HTTP proxy used by APIM to reach the backend.
type BackendProxy struct {
	URL string `json:"url"`
	// +optional
	Username string `json:"username,omitempty"`
	// PasswordSecretRef selects a key of a Secret in the namespace of this resource.
	// +optional
	PasswordSecretRef *corev1.SecretKeySelector `json:"passwordSecretRef,omitempty"`
}

// FunctionDeclaration maps a function to the APIM operations it serves.
type FunctionDeclaration struct {
	// Name of the function. The first operation uses it as its APIM operation id,
	// further operations get a "-2", "-3", ... suffix.
	Name string `json:"name"`
	// APIM lists the operations exposing this function. When absent the function is skipped.
	// +optional
	APIM *FunctionAPIM `json:"apim,omitempty"`
}

// FunctionAPIM is the apim section of a function declaration.
type FunctionAPIM struct {
	// +optional
	Operations []OperationDeclaration `json:"operations,omitempty"`
}

// OperationDeclaration describes one routable endpoint under the API.
type OperationDeclaration struct {
	// Method is the HTTP method, e.g. "get".
	Method string `json:"method"`
	// URLTemplate is relative to the API path, e.g. "/orders/{id}".
	URLTemplate string `json:"urlTemplate"`
	// +optional
	DisplayName string `json:"displayName,omitempty"`
	// +optional
	Description string `json:"description,omitempty"`
	// +optional
	TemplateParameters []ParameterSpec `json:"templateParameters,omitempty"`
	// +optional
	Responses []ResponseSpec `json:"responses,omitempty"`
}

// ParameterSpec describes a URL template parameter or header.
type ParameterSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// +optional
	Required bool `json:"required,omitempty"`
	// +optional
	Description string `json:"description,omitempty"`
	// +optional
	DefaultValue string `json:"defaultValue,omitempty"`
	// +optional
	Values []string `json:"values,omitempty"`
}

// ResponseSpec describes a documented operation response.
type ResponseSpec struct {
	StatusCode int32 `json:"statusCode"`
	// +optional
	Description string `json:"description,omitempty"`
	// +optional
	Representations []RepresentationSpec `json:"representations,omitempty"`
	// +optional
	Headers []ParameterSpec `json:"headers,omitempty"`
}

// RepresentationSpec is a response body representation.
type RepresentationSpec struct {
	ContentType string `json:"contentType"`
}

// APIMFunctionAPIStatus defines the observed state of APIMFunctionAPI.
type APIMFunctionAPIStatus struct {
	// Phase is "Created", "PartiallyCreated" or "Error".
	Phase string `json:"phase,omitempty"`

	// Message contains error details or status context.
	Message string `json:"message,omitempty"`

	// GatewayURL is the gateway URL of the APIM instance the API was deployed to.
	GatewayURL string `json:"gatewayUrl,omitempty"`

	// DeployedAt is the RFC3339 time of the last deployment pass.
	DeployedAt string `json:"deployedAt,omitempty"`

	// ObservedGeneration is the generation the last deployment pass was run for.
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Operations reports every operation attempted in the last pass.
	Operations []OperationStatus `json:"operations,omitempty"`
}

// OperationStatus is the outcome of deploying one operation.
type OperationStatus struct {
	Function    string `json:"function"`
	Method      string `json:"method"`
	URLTemplate string `json:"urlTemplate"`
	// URL is the public URL of the operation on the gateway.
	URL   string `json:"url,omitempty"`
	Ready bool   `json:"ready"`
	// Error holds the failure when Ready is false.
	Error string `json:"error,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="API",type=string,JSONPath=`.spec.api.name`
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Deployed",type=string,JSONPath=`.status.deployedAt`

// APIMFunctionAPI is the Schema for the apimfunctionapis API.
type APIMFunctionAPI struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   APIMFunctionAPISpec   `json:"spec,omitempty"`
	Status APIMFunctionAPIStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// APIMFunctionAPIList contains a list of APIMFunctionAPI.
type APIMFunctionAPIList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []APIMFunctionAPI `json:"items"`
}

func init() {
	SchemeBuilder.Register(&APIMFunctionAPI{}, &APIMFunctionAPIList{})
}
