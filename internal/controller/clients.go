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
	"context"
	"errors"
	"os"

	"github.com/hedinit/azure-apim-functions-operator/internal/apim"
	"github.com/hedinit/azure-apim-functions-operator/internal/identity"
)

// ErrMissingAzureCredentials is returned when the workload identity environment is not set.
var ErrMissingAzureCredentials = errors.New("missing AZURE_CLIENT_ID or AZURE_TENANT_ID")

// Clients are the Azure collaborators of one deployment pass.
type Clients struct {
	Management  apim.ManagementClient
	FunctionApp apim.FunctionAppGateway
}

// ClientFactory builds Clients for a deployment context and function app.
type ClientFactory interface {
	NewClients(ctx context.Context, cloud apim.Cloud, functionAppName string) (*Clients, error)
}

// WorkloadIdentityClients authenticates with the pod's Azure workload identity.
type WorkloadIdentityClients struct{}

func (WorkloadIdentityClients) NewClients(ctx context.Context, cloud apim.Cloud, functionAppName string) (*Clients, error) {
	clientID := os.Getenv("AZURE_CLIENT_ID")
	tenantID := os.Getenv("AZURE_TENANT_ID")
	if clientID == "" || tenantID == "" {
		return nil, ErrMissingAzureCredentials
	}

	cred, err := identity.NewManagementCredential(ctx, clientID, tenantID)
	if err != nil {
		return nil, err
	}

	management, err := apim.NewARMManagementClient(cloud.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}
	functionApp, err := apim.NewARMFunctionAppGateway(cloud, functionAppName, cred, nil)
	if err != nil {
		return nil, err
	}

	return &Clients{Management: management, FunctionApp: functionApp}, nil
}
