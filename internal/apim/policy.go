package apim

import (
	"encoding/xml"
	"fmt"
)

// generatedPolicyID marks set-backend-service instructions written by the operator.
const generatedPolicyID = "apim-generated-policy"

// policyDocument is the fixed four-section APIM policy skeleton.
// Only inbound ever carries generated instructions; the other sections defer to the parent scope.
type policyDocument struct {
	XMLName  xml.Name       `xml:"policies"`
	Inbound  inboundSection `xml:"inbound"`
	Backend  baseSection    `xml:"backend"`
	Outbound baseSection    `xml:"outbound"`
	OnError  baseSection    `xml:"on-error"`
}

type base struct{}

type baseSection struct {
	Base base `xml:"base"`
}

type inboundSection struct {
	Base              base               `xml:"base"`
	CORS              *corsElement       `xml:"cors,omitempty"`
	SetBackendService *setBackendService `xml:"set-backend-service,omitempty"`
}

type corsElement struct {
	AllowCredentials bool           `xml:"allow-credentials,attr"`
	AllowedOrigins   *corsOrigins   `xml:"allowed-origins,omitempty"`
	AllowedMethods   *corsMethods   `xml:"allowed-methods,omitempty"`
	AllowedHeaders   *corsHeaderSet `xml:"allowed-headers,omitempty"`
	ExposeHeaders    *corsHeaderSet `xml:"expose-headers,omitempty"`
}

type corsOrigins struct {
	Origins []string `xml:"origin"`
}

type corsMethods struct {
	Methods []string `xml:"method"`
}

type corsHeaderSet struct {
	Headers []string `xml:"header"`
}

type setBackendService struct {
	ID        string `xml:"id,attr"`
	BackendID string `xml:"backend-id,attr"`
}

// CORSPolicyXML renders the API-scoped CORS policy for the given configuration.
// An empty list is left out of the document rather than emitted as an empty element.
func CORSPolicyXML(policy CORSPolicy) (string, error) {
	cors := &corsElement{AllowCredentials: policy.AllowCredentials}
	if len(policy.AllowedOrigins) > 0 {
		cors.AllowedOrigins = &corsOrigins{Origins: policy.AllowedOrigins}
	}
	if len(policy.AllowedMethods) > 0 {
		cors.AllowedMethods = &corsMethods{Methods: policy.AllowedMethods}
	}
	if len(policy.AllowedHeaders) > 0 {
		cors.AllowedHeaders = &corsHeaderSet{Headers: policy.AllowedHeaders}
	}
	if len(policy.ExposedHeaders) > 0 {
		cors.ExposeHeaders = &corsHeaderSet{Headers: policy.ExposedHeaders}
	}

	return renderPolicy(policyDocument{Inbound: inboundSection{CORS: cors}})
}

// OperationPolicyXML renders the operation policy that routes every request to backendID.
func OperationPolicyXML(backendID string) (string, error) {
	return renderPolicy(policyDocument{
		Inbound: inboundSection{
			SetBackendService: &setBackendService{
				ID:        generatedPolicyID,
				BackendID: backendID,
			},
		},
	})
}

func renderPolicy(doc policyDocument) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return "", fmt.Errorf("rendering policy xml: %w", err)
	}
	return string(out), nil
}
