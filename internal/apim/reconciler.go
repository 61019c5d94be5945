package apim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/apimanagement/armapimanagement"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Reconciler brings an APIM instance in line with a Config.
// A nil Config means APIM is not configured: probes report nothing and deploys are skipped.
type Reconciler struct {
	cloud       Cloud
	config      *Config
	client      ManagementClient
	functionApp FunctionAppGateway
	log         logr.Logger
}

// OperationOptions selects one declared operation of a function.
type OperationOptions struct {
	Function  string
	Index     int
	Operation Operation
}

// OperationResult is the outcome of deploying one operation.
type OperationResult struct {
	Function    string
	Method      string
	URLTemplate string
	// URL is the public operation URL on the gateway.
	URL       string
	Operation *armapimanagement.OperationContract
	Err       error
}

func NewReconciler(cloud Cloud, config *Config, client ManagementClient, functionApp FunctionAppGateway) (*Reconciler, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}

	log := cloud.Logger
	if log.GetSink() == nil {
		log = logger
	}

	return &Reconciler{
		cloud:       cloud,
		config:      config,
		client:      client,
		functionApp: functionApp,
		log:         log,
	}, nil
}

func (r *Reconciler) resourceGroup() string {
	if r.config.ResourceGroup != "" {
		return r.config.ResourceGroup
	}
	return r.cloud.ResourceGroup
}

// Get looks up the APIM service instance. Failures are logged, not returned.
func (r *Reconciler) Get(ctx context.Context) (*armapimanagement.ServiceResource, bool) {
	service, err := r.LookupService(ctx)
	if err != nil {
		if r.config != nil {
			r.log.V(1).Info("🔍 APIM service lookup failed", "name", r.config.Name,
				"notFound", errors.Is(err, ErrNotFound), "error", err.Error())
		}
		return nil, false
	}
	return service, true
}

// LookupService is Get with the failure returned. A missing instance yields ErrNotFound,
// an unconfigured reconciler ErrPrerequisiteMissing.
func (r *Reconciler) LookupService(ctx context.Context) (*armapimanagement.ServiceResource, error) {
	if r.config == nil {
		return nil, ErrPrerequisiteMissing
	}
	return r.client.GetService(ctx, r.resourceGroup(), r.config.Name)
}

// GetAPI looks up the configured API. Failures are logged, not returned.
func (r *Reconciler) GetAPI(ctx context.Context) (*armapimanagement.APIContract, bool) {
	if r.config == nil {
		return nil, false
	}

	api, err := r.client.GetAPI(ctx, r.resourceGroup(), r.config.Name, r.config.API.Name)
	if err != nil {
		r.log.V(1).Info("🔍 APIM API lookup failed", "api", r.config.API.Name,
			"notFound", errors.Is(err, ErrNotFound), "error", err.Error())
		return nil, false
	}
	return api, true
}

// DeployAPI upserts the API with its CORS policy, the master key named value and the backend, in that order.
// The first failure aborts the pass.
func (r *Reconciler) DeployAPI(ctx context.Context) (api *armapimanagement.APIContract, err error) {
	if r.config == nil {
		return nil, nil
	}

	started := time.Now()
	ctx, span := tracer.Start(ctx, "apim.DeployAPI", trace.WithAttributes(
		attribute.String("apim.service", r.config.Name),
		attribute.String("apim.api", r.config.API.Name),
	))
	defer func() {
		endSpan(span, err)
		Metrics.ObservePhase("api", started, err)
	}()

	r.log.Info("🚀 Deploying API", "api", r.config.API.Name, "path", r.config.API.Path)

	app, err := r.functionApp.Get(ctx)
	if err != nil {
		r.log.Error(err, "❌ Error resolving function app", "service", r.cloud.ServiceName)
		return nil, fmt.Errorf("resolving function app: %w", err)
	}

	api, err = r.upsertAPI(ctx)
	if err != nil {
		r.log.Error(err, "❌ Error creating APIM API", "api", r.config.API.Name)
		return nil, err
	}

	if err := r.upsertMasterKey(ctx, app); err != nil {
		r.log.Error(err, "❌ Error creating APIM Property", "property", PropertyName(r.cloud.ServiceName))
		return nil, err
	}

	if err := r.upsertBackend(ctx, app); err != nil {
		r.log.Error(err, "❌ Error creating APIM Backend", "backend", r.cloud.ServiceName)
		return nil, err
	}

	return api, nil
}

func (r *Reconciler) upsertAPI(ctx context.Context) (*armapimanagement.APIContract, error) {
	cfg := r.config.API

	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = cfg.Name
	}
	protocols := cfg.Protocols
	if len(protocols) == 0 {
		protocols = []string{string(armapimanagement.ProtocolHTTPS)}
	}

	props := &armapimanagement.APICreateOrUpdateProperties{
		Path:                 to.Ptr(cfg.Path),
		DisplayName:          to.Ptr(displayName),
		Description:          to.Ptr(cfg.Description),
		IsCurrent:            to.Ptr(true),
		SubscriptionRequired: cfg.SubscriptionRequired,
	}
	for _, p := range protocols {
		props.Protocols = append(props.Protocols, to.Ptr(armapimanagement.Protocol(strings.ToLower(p))))
	}

	api, err := r.client.UpsertAPI(ctx, r.resourceGroup(), r.config.Name, cfg.Name,
		armapimanagement.APICreateOrUpdateParameter{Properties: props})
	if err != nil {
		return nil, fmt.Errorf("creating apim api %s: %w", cfg.Name, err)
	}

	if r.config.CORS != nil {
		policy, err := CORSPolicyXML(*r.config.CORS)
		if err != nil {
			return nil, err
		}
		if _, err := r.client.UpsertAPIPolicy(ctx, r.resourceGroup(), r.config.Name, cfg.Name, rawXMLPolicy(policy)); err != nil {
			return nil, fmt.Errorf("attaching cors policy to api %s: %w", cfg.Name, err)
		}
	}

	return api, nil
}

func (r *Reconciler) upsertMasterKey(ctx context.Context, app *FunctionApp) error {
	r.log.Info("🔑 Deploying API keys", "functionApp", app.Name)

	masterKey, err := r.functionApp.GetMasterKey(ctx, app)
	if err != nil {
		return fmt.Errorf("fetching master key: %w", err)
	}

	name := PropertyName(r.cloud.ServiceName)
	_, err = r.client.UpsertProperty(ctx, r.resourceGroup(), r.config.Name, name, armapimanagement.NamedValueCreateContract{
		Properties: &armapimanagement.NamedValueCreateContractProperties{
			DisplayName: to.Ptr(name),
			Secret:      to.Ptr(true),
			Value:       to.Ptr(masterKey),
		},
	})
	if err != nil {
		return fmt.Errorf("creating apim property %s: %w", name, err)
	}
	return nil
}

func (r *Reconciler) upsertBackend(ctx context.Context, app *FunctionApp) error {
	backend := NewBackendContract(r.cloud.ServiceName, app, r.config.Backend)
	r.log.Info("🔌 Deploying API Backend", "backend", r.cloud.ServiceName, "url", *backend.Properties.URL)

	if _, err := r.client.UpsertBackend(ctx, r.resourceGroup(), r.config.Name, r.cloud.ServiceName, backend); err != nil {
		return fmt.Errorf("creating apim backend %s: %w", r.cloud.ServiceName, err)
	}
	return nil
}

// NewBackendContract builds the backend forwarding to app's HTTP functions with the master key header.
func NewBackendContract(serviceName string, app *FunctionApp, overrides *BackendConfig) armapimanagement.BackendContract {
	cfg := BackendConfig{}
	if overrides != nil {
		cfg = *overrides
	}

	title := cfg.Title
	if title == "" {
		title = app.Name
	}
	protocol := cfg.Protocol
	if protocol == "" {
		protocol = defaultBackendProtocol
	}

	props := &armapimanagement.BackendContractProperties{
		URL:        to.Ptr(BackendURL(app.DefaultHostName)),
		Protocol:   to.Ptr(armapimanagement.BackendProtocol(protocol)),
		ResourceID: to.Ptr(managementEndpoint + app.ID),
		Title:      to.Ptr(title),
		Credentials: &armapimanagement.BackendCredentialsContract{
			Header: map[string][]*string{
				masterKeyHeader: {to.Ptr(fmt.Sprintf("{{%s}}", PropertyName(serviceName)))},
			},
		},
	}
	if cfg.Description != "" {
		props.Description = to.Ptr(cfg.Description)
	}
	if cfg.TLS != nil {
		props.TLS = &armapimanagement.BackendTLSProperties{
			ValidateCertificateChain: cfg.TLS.ValidateCertificateChain,
			ValidateCertificateName:  cfg.TLS.ValidateCertificateName,
		}
	}
	if cfg.Proxy != nil {
		props.Proxy = &armapimanagement.BackendProxyContract{URL: to.Ptr(cfg.Proxy.URL)}
		if cfg.Proxy.Username != "" {
			props.Proxy.Username = to.Ptr(cfg.Proxy.Username)
		}
		if cfg.Proxy.Password != "" {
			props.Proxy.Password = to.Ptr(cfg.Proxy.Password)
		}
	}

	return armapimanagement.BackendContract{Properties: props}
}

// DeployFunctions deploys the operations of every declared function concurrently.
// Operation failures are reported in the results; the error is only set for missing
// prerequisites or a cancelled context.
func (r *Reconciler) DeployFunctions(
	ctx context.Context,
	service *armapimanagement.ServiceResource,
	api *armapimanagement.APIContract,
) (results []OperationResult, err error) {
	if service == nil || api == nil {
		return nil, ErrPrerequisiteMissing
	}
	if r.config == nil {
		return nil, nil
	}

	started := time.Now()
	ctx, span := tracer.Start(ctx, "apim.DeployFunctions", trace.WithAttributes(
		attribute.String("apim.api", r.config.API.Name),
		attribute.Int("apim.functions", len(r.config.Functions)),
	))
	defer func() {
		spanErr := err
		if spanErr == nil {
			spanErr = JoinErrors(results)
		}
		endSpan(span, spanErr)
		Metrics.ObservePhase("functions", started, spanErr)
	}()

	r.log.Info("🚀 Deploying API Operations", "api", r.config.API.Name, "functions", len(r.config.Functions))

	perFunction := make([][]OperationResult, len(r.config.Functions))
	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range r.config.Functions {
		i, fn := i, fn
		g.Go(func() error {
			res, err := r.DeployFunction(gctx, service, api, fn)
			perFunction[i] = res
			return err
		})
	}
	err = g.Wait()

	for _, res := range perFunction {
		results = append(results, res...)
	}
	return results, err
}

// DeployFunction deploys the declared operations of fn concurrently.
// A function without an APIM section is skipped.
func (r *Reconciler) DeployFunction(
	ctx context.Context,
	service *armapimanagement.ServiceResource,
	api *armapimanagement.APIContract,
	fn Function,
) ([]OperationResult, error) {
	if service == nil || api == nil {
		return nil, ErrPrerequisiteMissing
	}
	if r.config == nil || fn.APIM == nil {
		return nil, nil
	}

	results := make([]OperationResult, len(fn.APIM.Operations))
	var g errgroup.Group
	for i, op := range fn.APIM.Operations {
		i, op := i, op
		g.Go(func() error {
			results[i] = r.DeployOperation(ctx, service, api, OperationOptions{Function: fn.Name, Index: i, Operation: op})
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

// DeployOperation upserts one operation and attaches the policy routing it to the backend.
// Failures are logged and returned in the result so sibling operations are unaffected.
func (r *Reconciler) DeployOperation(
	ctx context.Context,
	service *armapimanagement.ServiceResource,
	api *armapimanagement.APIContract,
	opts OperationOptions,
) OperationResult {
	op := opts.Operation
	method := strings.ToUpper(op.Method)
	result := OperationResult{
		Function:    opts.Function,
		Method:      method,
		URLTemplate: op.URLTemplate,
	}
	if service == nil || api == nil {
		result.Err = ErrPrerequisiteMissing
		return result
	}
	if r.config == nil {
		return result
	}

	var gatewayURL, apiPath string
	if service.Properties != nil && service.Properties.GatewayURL != nil {
		gatewayURL = *service.Properties.GatewayURL
	}
	if api.Properties != nil && api.Properties.Path != nil {
		apiPath = *api.Properties.Path
	}
	result.URL = OperationURL(gatewayURL, apiPath, op.URLTemplate)

	operationID := OperationID(opts.Function, opts.Index)
	ctx, span := tracer.Start(ctx, "apim.DeployOperation", trace.WithAttributes(
		attribute.String("apim.api", r.config.API.Name),
		attribute.String("apim.operation", operationID),
		attribute.String("http.method", method),
	))
	defer func() {
		endSpan(span, result.Err)
		Metrics.ObserveOperation(r.config.API.Name, result.Err)
	}()

	r.log.Info(fmt.Sprintf("🔗 Deploying API operation %s: %s %s", opts.Function, method, result.URL))

	contract, err := r.client.UpsertOperation(ctx, r.resourceGroup(), r.config.Name, r.config.API.Name, operationID,
		NewOperationContract(opts.Function, op))
	if err != nil {
		result.Err = fmt.Errorf("creating operation %s: %w", operationID, err)
		r.logOperationError(result)
		return result
	}

	policy, err := OperationPolicyXML(r.cloud.ServiceName)
	if err == nil {
		_, err = r.client.UpsertOperationPolicy(ctx, r.resourceGroup(), r.config.Name, r.config.API.Name, operationID, rawXMLPolicy(policy))
	}
	if err != nil {
		result.Err = fmt.Errorf("attaching policy to operation %s: %w", operationID, err)
		r.logOperationError(result)
		return result
	}

	result.Operation = contract
	return result
}

func (r *Reconciler) logOperationError(result OperationResult) {
	kv := []any{"function", result.Function, "method", result.Method, "url", result.URL}
	if code, status, ok := remoteErrorBody(result.Err); ok {
		kv = append(kv, "errorCode", code, "statusCode", status)
	}
	r.log.Error(result.Err, "❌ Error deploying API operation", kv...)
}

// NewOperationContract builds the APIM operation for one declared function endpoint.
func NewOperationContract(function string, op Operation) armapimanagement.OperationContract {
	displayName := op.DisplayName
	if displayName == "" {
		displayName = function
	}

	props := &armapimanagement.OperationContractProperties{
		DisplayName:        to.Ptr(displayName),
		Method:             to.Ptr(strings.ToUpper(op.Method)),
		URLTemplate:        to.Ptr(op.URLTemplate),
		Description:        to.Ptr(op.Description),
		TemplateParameters: []*armapimanagement.ParameterContract{},
		Responses:          []*armapimanagement.ResponseContract{},
	}
	for _, p := range op.TemplateParameters {
		props.TemplateParameters = append(props.TemplateParameters, parameterContract(p))
	}
	for _, resp := range op.Responses {
		rc := &armapimanagement.ResponseContract{
			StatusCode:      to.Ptr(resp.StatusCode),
			Description:     to.Ptr(resp.Description),
			Representations: []*armapimanagement.RepresentationContract{},
			Headers:         []*armapimanagement.ParameterContract{},
		}
		for _, rep := range resp.Representations {
			rc.Representations = append(rc.Representations, &armapimanagement.RepresentationContract{
				ContentType: to.Ptr(rep.ContentType),
			})
		}
		for _, h := range resp.Headers {
			rc.Headers = append(rc.Headers, parameterContract(h))
		}
		props.Responses = append(props.Responses, rc)
	}

	return armapimanagement.OperationContract{Properties: props}
}

func parameterContract(p Parameter) *armapimanagement.ParameterContract {
	pc := &armapimanagement.ParameterContract{
		Name:        to.Ptr(p.Name),
		Type:        to.Ptr(p.Type),
		Required:    to.Ptr(p.Required),
		Description: to.Ptr(p.Description),
	}
	if p.DefaultValue != "" {
		pc.DefaultValue = to.Ptr(p.DefaultValue)
	}
	if len(p.Values) > 0 {
		pc.Values = to.SliceOfPtrs(p.Values...)
	}
	return pc
}

func rawXMLPolicy(value string) armapimanagement.PolicyContract {
	return armapimanagement.PolicyContract{
		Properties: &armapimanagement.PolicyContractProperties{
			Format: to.Ptr(armapimanagement.PolicyContentFormatRawxml),
			Value:  to.Ptr(value),
		},
	}
}

// FailedOperations returns the results that carry an error.
func FailedOperations(results []OperationResult) []OperationResult {
	var failed []OperationResult
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// JoinErrors combines the errors of all failed operations, or returns nil.
func JoinErrors(results []OperationResult) error {
	var errs error
	for _, res := range FailedOperations(results) {
		errs = multierr.Append(errs, fmt.Errorf("%s %s %s: %w", res.Function, res.Method, res.URLTemplate, res.Err))
	}
	return errs
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
