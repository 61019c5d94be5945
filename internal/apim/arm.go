package apim

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/apimanagement/armapimanagement"
)

// ManagementClient is the subset of the APIM management plane the reconciler uses.
// Every call is scoped by resource group and APIM service name; create and update are a single upsert.
type ManagementClient interface {
	GetService(ctx context.Context, resourceGroup, serviceName string) (*armapimanagement.ServiceResource, error)
	GetAPI(ctx context.Context, resourceGroup, serviceName, apiID string) (*armapimanagement.APIContract, error)
	UpsertAPI(ctx context.Context, resourceGroup, serviceName, apiID string, api armapimanagement.APICreateOrUpdateParameter) (*armapimanagement.APIContract, error)
	UpsertAPIPolicy(ctx context.Context, resourceGroup, serviceName, apiID string, policy armapimanagement.PolicyContract) (*armapimanagement.PolicyContract, error)
	UpsertBackend(ctx context.Context, resourceGroup, serviceName, backendID string, backend armapimanagement.BackendContract) (*armapimanagement.BackendContract, error)
	UpsertProperty(ctx context.Context, resourceGroup, serviceName, propertyID string, property armapimanagement.NamedValueCreateContract) (*armapimanagement.NamedValueContract, error)
	UpsertOperation(ctx context.Context, resourceGroup, serviceName, apiID, operationID string, operation armapimanagement.OperationContract) (*armapimanagement.OperationContract, error)
	UpsertOperationPolicy(ctx context.Context, resourceGroup, serviceName, apiID, operationID string, policy armapimanagement.PolicyContract) (*armapimanagement.PolicyContract, error)
}

// ARMManagementClient implements ManagementClient with the armapimanagement SDK.
type ARMManagementClient struct {
	services          *armapimanagement.ServiceClient
	apis              *armapimanagement.APIClient
	apiPolicies       *armapimanagement.APIPolicyClient
	backends          *armapimanagement.BackendClient
	namedValues       *armapimanagement.NamedValueClient
	operations        *armapimanagement.APIOperationClient
	operationPolicies *armapimanagement.APIOperationPolicyClient
}

var _ ManagementClient = (*ARMManagementClient)(nil)

// NewARMManagementClient creates the APIM SDK clients for a subscription.
func NewARMManagementClient(
	subscriptionID string,
	credential azcore.TokenCredential,
	options *arm.ClientOptions,
) (*ARMManagementClient, error) {
	c := &ARMManagementClient{}
	var err error

	if c.services, err = armapimanagement.NewServiceClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim service client: %w", err)
	}
	if c.apis, err = armapimanagement.NewAPIClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim api client: %w", err)
	}
	if c.apiPolicies, err = armapimanagement.NewAPIPolicyClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim api policy client: %w", err)
	}
	if c.backends, err = armapimanagement.NewBackendClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim backend client: %w", err)
	}
	if c.namedValues, err = armapimanagement.NewNamedValueClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim named value client: %w", err)
	}
	if c.operations, err = armapimanagement.NewAPIOperationClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim operation client: %w", err)
	}
	if c.operationPolicies, err = armapimanagement.NewAPIOperationPolicyClient(subscriptionID, credential, options); err != nil {
		return nil, fmt.Errorf("creating apim operation policy client: %w", err)
	}

	return c, nil
}

func (c *ARMManagementClient) GetService(ctx context.Context, resourceGroup, serviceName string) (*armapimanagement.ServiceResource, error) {
	resp, err := c.services.Get(ctx, resourceGroup, serviceName, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("api management service %s: %w", serviceName, ErrNotFound)
		}
		return nil, fmt.Errorf("getting api management service: %w", err)
	}
	return &resp.ServiceResource, nil
}

func (c *ARMManagementClient) GetAPI(ctx context.Context, resourceGroup, serviceName, apiID string) (*armapimanagement.APIContract, error) {
	resp, err := c.apis.Get(ctx, resourceGroup, serviceName, apiID, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("api %s: %w", apiID, ErrNotFound)
		}
		return nil, fmt.Errorf("getting api: %w", err)
	}
	return &resp.APIContract, nil
}

func (c *ARMManagementClient) UpsertAPI(
	ctx context.Context,
	resourceGroup, serviceName, apiID string,
	api armapimanagement.APICreateOrUpdateParameter,
) (*armapimanagement.APIContract, error) {
	poller, err := c.apis.BeginCreateOrUpdate(ctx, resourceGroup, serviceName, apiID, api, nil)
	if err != nil {
		return nil, fmt.Errorf("starting api upsert: %w", err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting api: %w", err)
	}
	return &resp.APIContract, nil
}

func (c *ARMManagementClient) UpsertAPIPolicy(
	ctx context.Context,
	resourceGroup, serviceName, apiID string,
	policy armapimanagement.PolicyContract,
) (*armapimanagement.PolicyContract, error) {
	resp, err := c.apiPolicies.CreateOrUpdate(ctx, resourceGroup, serviceName, apiID, armapimanagement.PolicyIDNamePolicy, policy, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting api policy: %w", err)
	}
	return &resp.PolicyContract, nil
}

func (c *ARMManagementClient) UpsertBackend(
	ctx context.Context,
	resourceGroup, serviceName, backendID string,
	backend armapimanagement.BackendContract,
) (*armapimanagement.BackendContract, error) {
	resp, err := c.backends.CreateOrUpdate(ctx, resourceGroup, serviceName, backendID, backend, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting backend: %w", err)
	}
	return &resp.BackendContract, nil
}

func (c *ARMManagementClient) UpsertProperty(
	ctx context.Context,
	resourceGroup, serviceName, propertyID string,
	property armapimanagement.NamedValueCreateContract,
) (*armapimanagement.NamedValueContract, error) {
	poller, err := c.namedValues.BeginCreateOrUpdate(ctx, resourceGroup, serviceName, propertyID, property, nil)
	if err != nil {
		return nil, fmt.Errorf("starting named value upsert: %w", err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting named value: %w", err)
	}
	return &resp.NamedValueContract, nil
}

func (c *ARMManagementClient) UpsertOperation(
	ctx context.Context,
	resourceGroup, serviceName, apiID, operationID string,
	operation armapimanagement.OperationContract,
) (*armapimanagement.OperationContract, error) {
	resp, err := c.operations.CreateOrUpdate(ctx, resourceGroup, serviceName, apiID, operationID, operation, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting operation: %w", err)
	}
	return &resp.OperationContract, nil
}

func (c *ARMManagementClient) UpsertOperationPolicy(
	ctx context.Context,
	resourceGroup, serviceName, apiID, operationID string,
	policy armapimanagement.PolicyContract,
) (*armapimanagement.PolicyContract, error) {
	resp, err := c.operationPolicies.CreateOrUpdate(
		ctx, resourceGroup, serviceName, apiID, operationID, armapimanagement.PolicyIDNamePolicy, policy, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting operation policy: %w", err)
	}
	return &resp.PolicyContract, nil
}
