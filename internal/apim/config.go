package apim

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
)

// Cloud is the deployment context shared by the reconciler and the gateways it talks to.
type Cloud struct {
	SubscriptionID string
	// ResourceGroup holds the function app. APIM lives here too unless Config.ResourceGroup says otherwise.
	ResourceGroup string
	// ServiceName is the deployed service. It names the backend and the master key named value.
	ServiceName string
	Logger      logr.Logger
}

// Config describes the APIM side of a deployment. It is built once and never mutated.
type Config struct {
	// Name of the APIM service instance.
	Name string
	// ResourceGroup of the APIM instance. Empty means Cloud.ResourceGroup.
	ResourceGroup string
	API           APIConfig
	CORS          *CORSPolicy
	Backend       *BackendConfig
	Functions     []Function
}

type APIConfig struct {
	Name                 string
	DisplayName          string
	Description          string
	Path                 string
	Protocols            []string
	SubscriptionRequired *bool
}

type CORSPolicy struct {
	AllowCredentials bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
}

// BackendConfig overrides the generated backend. Zero values fall back to defaults.
type BackendConfig struct {
	Title       string
	Protocol    string
	Description string
	TLS         *BackendTLS
	Proxy       *BackendProxy
}

type BackendTLS struct {
	ValidateCertificateChain *bool
	ValidateCertificateName  *bool
}

type BackendProxy struct {
	URL      string
	Username string
	Password string
}

// Function is a declared function. A nil APIM section means the function is not exposed.
type Function struct {
	Name string
	APIM *FunctionAPIM
}

type FunctionAPIM struct {
	Operations []Operation
}

type Operation struct {
	Method             string
	URLTemplate        string
	DisplayName        string
	Description        string
	TemplateParameters []Parameter
	Responses          []Response
}

type Parameter struct {
	Name         string
	Type         string
	Required     bool
	Description  string
	DefaultValue string
	Values       []string
}

type Response struct {
	StatusCode      int32
	Description     string
	Representations []Representation
	Headers         []Parameter
}

type Representation struct {
	ContentType string
}

const (
	defaultBackendProtocol = "http"
	masterKeyHeader        = "x-functions-key"
	managementEndpoint     = "https://management.azure.com"
)

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs error
	if c.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: apim name is required", ErrInvalidConfig))
	}
	if c.API.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: api name is required", ErrInvalidConfig))
	}
	if c.Backend != nil && c.Backend.Protocol != "" && c.Backend.Protocol != "http" && c.Backend.Protocol != "soap" {
		errs = multierr.Append(errs, fmt.Errorf("%w: backend protocol %q must be http or soap", ErrInvalidConfig, c.Backend.Protocol))
	}
	owners := make(map[string]string)
	for i, fn := range c.Functions {
		if fn.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: functions[%d] has no name", ErrInvalidConfig, i))
			continue
		}
		if fn.APIM == nil {
			continue
		}
		for j, op := range fn.APIM.Operations {
			if op.Method == "" || op.URLTemplate == "" {
				errs = multierr.Append(errs, fmt.Errorf("%w: function %s operation %d needs method and urlTemplate", ErrInvalidConfig, fn.Name, j))
			}
			id := OperationID(fn.Name, j)
			owner := fmt.Sprintf("function %s operation %d", fn.Name, j)
			if prev, ok := owners[id]; ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s and %s both deploy as operation %q", ErrInvalidConfig, prev, owner, id))
			} else {
				owners[id] = owner
			}
		}
	}
	return errs
}

// PropertyName is the named value holding the function app master key for serviceName.
// Two services sharing a name on one APIM instance share the named value.
func PropertyName(serviceName string) string {
	return serviceName + "-key"
}

// BackendURL is the base URL of the HTTP functions of a function app.
func BackendURL(defaultHostName string) string {
	return fmt.Sprintf("https://%s/api", defaultHostName)
}

// OperationID returns the APIM id of the index-th operation of a function.
// Ids can clash across functions (a's second operation and a function named a-2);
// Validate rejects such configurations.
func OperationID(function string, index int) string {
	if index == 0 {
		return function
	}
	return fmt.Sprintf("%s-%d", function, index+1)
}

// OperationURL joins the gateway URL, API path and URL template for display.
func OperationURL(gatewayURL, apiPath, urlTemplate string) string {
	return fmt.Sprintf("%s/%s%s", strings.TrimSuffix(gatewayURL, "/"), strings.TrimPrefix(apiPath, "/"), urlTemplate)
}
