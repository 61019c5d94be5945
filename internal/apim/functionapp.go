package apim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/sethvargo/go-retry"
)

// FunctionApp is the part of an Azure site the backend is built from.
type FunctionApp struct {
	ID              string
	Name            string
	DefaultHostName string
}

// FunctionAppGateway resolves the function app fronted by APIM.
type FunctionAppGateway interface {
	Get(ctx context.Context) (*FunctionApp, error)
	GetMasterKey(ctx context.Context, app *FunctionApp) (string, error)
}

var errMasterKeyMissing = errors.New("function app returned no master key")

// ARMFunctionAppGateway reads a function app through the armappservice SDK.
type ARMFunctionAppGateway struct {
	cloud   Cloud
	appName string
	sites   *armappservice.WebAppsClient
	backoff func() retry.Backoff
}

var _ FunctionAppGateway = (*ARMFunctionAppGateway)(nil)

// GatewayOption customises an ARMFunctionAppGateway.
type GatewayOption func(*ARMFunctionAppGateway)

// WithMasterKeyBackoff replaces the backoff used while waiting for host keys.
func WithMasterKeyBackoff(b func() retry.Backoff) GatewayOption {
	return func(g *ARMFunctionAppGateway) {
		g.backoff = b
	}
}

// NewARMFunctionAppGateway creates a gateway for appName in cloud.ResourceGroup.
func NewARMFunctionAppGateway(
	cloud Cloud,
	appName string,
	credential azcore.TokenCredential,
	options *arm.ClientOptions,
	opts ...GatewayOption,
) (*ARMFunctionAppGateway, error) {
	sites, err := armappservice.NewWebAppsClient(cloud.SubscriptionID, credential, options)
	if err != nil {
		return nil, fmt.Errorf("creating web apps client: %w", err)
	}

	g := &ARMFunctionAppGateway{
		cloud:   cloud,
		appName: appName,
		sites:   sites,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(5, retry.NewExponential(2*time.Second))
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *ARMFunctionAppGateway) Get(ctx context.Context) (*FunctionApp, error) {
	resp, err := g.sites.Get(ctx, g.cloud.ResourceGroup, g.appName, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("function app %s: %w", g.appName, ErrNotFound)
		}
		return nil, fmt.Errorf("getting function app: %w", err)
	}

	app := &FunctionApp{Name: g.appName}
	if resp.ID != nil {
		app.ID = *resp.ID
	}
	if resp.Name != nil {
		app.Name = *resp.Name
	}
	if resp.Properties != nil && resp.Properties.DefaultHostName != nil {
		app.DefaultHostName = *resp.Properties.DefaultHostName
	}
	if app.DefaultHostName == "" {
		return nil, fmt.Errorf("function app %s has no default host name", app.Name)
	}
	return app, nil
}

// GetMasterKey lists the host keys of app. Keys are not always readable right after a deployment,
// so missing keys and failed calls are retried.
func (g *ARMFunctionAppGateway) GetMasterKey(ctx context.Context, app *FunctionApp) (string, error) {
	var masterKey string
	attempt := 0

	err := retry.Do(ctx, g.backoff(), func(ctx context.Context) error {
		attempt++
		resp, err := g.sites.ListHostKeys(ctx, g.cloud.ResourceGroup, app.Name, nil)
		if err != nil {
			if isNotFound(err) {
				return err
			}
			g.cloud.Logger.V(1).Info("⏳ Host keys not available yet", "functionApp", app.Name, "attempt", attempt, "error", err.Error())
			return retry.RetryableError(err)
		}
		if resp.MasterKey == nil || *resp.MasterKey == "" {
			g.cloud.Logger.V(1).Info("⏳ Master key not available yet", "functionApp", app.Name, "attempt", attempt)
			return retry.RetryableError(errMasterKeyMissing)
		}
		masterKey = *resp.MasterKey
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("listing host keys of %s: %w", app.Name, err)
	}
	return masterKey, nil
}
