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
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	apimv1 "github.com/hedinit/azure-apim-functions-operator/api/v1"
	"github.com/hedinit/azure-apim-functions-operator/internal/apim"
)

// APIMFunctionAPIReconciler reconciles a APIMFunctionAPI object
type APIMFunctionAPIReconciler struct {
	client.Client
	Scheme *runtime.Scheme
	// Clients builds the Azure clients for a pass. Nil means workload identity.
	Clients ClientFactory
}

// +kubebuilder:rbac:groups=apim.operator.io,resources=apimfunctionapis,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=apim.operator.io,resources=apimfunctionapis/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=apim.operator.io,resources=apimservices,verbs=get;list;watch
// +kubebuilder:rbac:groups=apim.operator.io,resources=apimservices/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get

// Reconcile deploys the API described by an APIMFunctionAPI and its function operations
// to the referenced APIM instance, then records the per-operation outcome in the status.
func (r *APIMFunctionAPIReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	var fnAPI apimv1.APIMFunctionAPI
	if err := r.Get(ctx, req.NamespacedName, &fnAPI); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("🧹 APIMFunctionAPI deleted, skipping", "name", req.NamespacedName)
			return ctrl.Result{}, nil
		}
		logger.Error(err, "❌ Failed to get APIMFunctionAPI")
		return ctrl.Result{}, err
	}

	var apimService apimv1.APIMService
	serviceKey := client.ObjectKey{Name: fnAPI.Spec.APIMService, Namespace: getOperatorNamespace()}
	if err := r.Get(ctx, serviceKey, &apimService); err != nil {
		logger.Error(err, "❌ Failed to get APIMService", "name", fnAPI.Spec.APIMService)
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	proxyPassword, err := r.proxyPassword(ctx, &fnAPI)
	if err != nil {
		logger.Error(err, "❌ Failed to read backend proxy password")
		return r.fail(ctx, &fnAPI, err.Error(), deployRetryInterval)
	}

	cfg, cloud, appName := configFromSpec(&fnAPI, &apimService, proxyPassword)
	cloud.Logger = logger.WithName("apim")

	factory := r.Clients
	if factory == nil {
		factory = WorkloadIdentityClients{}
	}
	clients, err := factory.NewClients(ctx, cloud, appName)
	if err != nil {
		if errors.Is(err, ErrMissingAzureCredentials) {
			return ctrl.Result{}, err
		}
		logger.Error(err, "❌ Failed to get Azure token")
		return r.fail(ctx, &fnAPI, errMsgFailedToGetAzureToken, tokenRetryInterval)
	}

	reconciler, err := apim.NewReconciler(cloud, cfg, clients.Management, clients.FunctionApp)
	if err != nil {
		logger.Error(err, "❌ Invalid APIMFunctionAPI spec")
		return r.fail(ctx, &fnAPI, err.Error(), 0)
	}

	service, err := reconciler.LookupService(ctx)
	if errors.Is(err, apim.ErrNotFound) {
		msg := fmt.Sprintf("APIM service %s not found in resource group %s", cfg.Name, cfg.ResourceGroup)
		logger.Info("⚠️ "+msg, "subscription", cloud.SubscriptionID)
		return r.fail(ctx, &fnAPI, msg, deployRetryInterval)
	}
	if err != nil {
		logger.Error(err, "❌ Failed to get APIM service", "name", cfg.Name, "resourceGroup", cfg.ResourceGroup)
		msg := fmt.Sprintf("APIM service %s in resource group %s could not be retrieved: %v", cfg.Name, cfg.ResourceGroup, err)
		return r.fail(ctx, &fnAPI, msg, deployRetryInterval)
	}
	gatewayURL := ""
	if service.Properties != nil && service.Properties.GatewayURL != nil {
		gatewayURL = *service.Properties.GatewayURL
	}
	r.recordGateway(ctx, &apimService, gatewayURL)

	api, err := reconciler.DeployAPI(ctx)
	if err != nil {
		return r.fail(ctx, &fnAPI, err.Error(), deployRetryInterval)
	}

	results, err := reconciler.DeployFunctions(ctx, service, api)
	if err != nil {
		logger.Error(err, "❌ Failed to deploy API operations", "api", cfg.API.Name)
		return r.fail(ctx, &fnAPI, err.Error(), deployRetryInterval)
	}

	statusPatch := client.MergeFrom(fnAPI.DeepCopy())
	fnAPI.Status.GatewayURL = gatewayURL
	fnAPI.Status.DeployedAt = time.Now().UTC().Format(time.RFC3339)
	fnAPI.Status.ObservedGeneration = fnAPI.Generation
	fnAPI.Status.Operations = operationStatuses(results)

	result := ctrl.Result{}
	if failed := apim.FailedOperations(results); len(failed) > 0 {
		fnAPI.Status.Phase = phasePartial
		fnAPI.Status.Message = apim.JoinErrors(results).Error()
		logger.Info("⚠️ APIM API deployed with failed operations", "api", cfg.API.Name,
			"failed", len(failed), "total", len(results))
		result.RequeueAfter = deployRetryInterval
	} else {
		fnAPI.Status.Phase = phaseCreated
		fnAPI.Status.Message = fmt.Sprintf("APIM API %s deployed with %d operations", cfg.API.Name, len(results))
		logger.Info("✅ Successfully deployed APIM API", "api", cfg.API.Name, "operations", len(results))
	}

	if err := r.Status().Patch(ctx, &fnAPI, statusPatch); err != nil {
		logger.Error(err, "❌ Failed to patch APIMFunctionAPI status")
		return ctrl.Result{}, err
	}
	return result, nil
}

// fail records an Error phase and requeues after the given interval (never when zero).
func (r *APIMFunctionAPIReconciler) fail(ctx context.Context, fnAPI *apimv1.APIMFunctionAPI, msg string, requeueAfter time.Duration) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	statusPatch := client.MergeFrom(fnAPI.DeepCopy())
	fnAPI.Status.Phase = phaseError
	fnAPI.Status.Message = msg
	fnAPI.Status.ObservedGeneration = fnAPI.Generation
	if err := r.Status().Patch(ctx, fnAPI, statusPatch); err != nil {
		logger.Error(err, "❌ Failed to patch APIMFunctionAPI status")
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

// recordGateway keeps the APIMService status in sync with what Azure reports.
func (r *APIMFunctionAPIReconciler) recordGateway(ctx context.Context, svc *apimv1.APIMService, gatewayURL string) {
	host := gatewayHost(gatewayURL)
	if gatewayURL == "" || (svc.Status.GatewayURL == gatewayURL && svc.Status.Host == host) {
		return
	}

	statusPatch := client.MergeFrom(svc.DeepCopy())
	svc.Status.Host = host
	svc.Status.GatewayURL = gatewayURL
	if err := r.Status().Patch(ctx, svc, statusPatch); err != nil {
		log.FromContext(ctx).Error(err, "⚠️ Failed to patch APIMService status", "name", svc.Name)
	}
}

func (r *APIMFunctionAPIReconciler) proxyPassword(ctx context.Context, fnAPI *apimv1.APIMFunctionAPI) (string, error) {
	backend := fnAPI.Spec.Backend
	if backend == nil || backend.Proxy == nil || backend.Proxy.PasswordSecretRef == nil {
		return "", nil
	}
	ref := backend.Proxy.PasswordSecretRef

	var secret corev1.Secret
	if err := r.Get(ctx, client.ObjectKey{Name: ref.Name, Namespace: fnAPI.Namespace}, &secret); err != nil {
		return "", fmt.Errorf("reading proxy password secret %s: %w", ref.Name, err)
	}
	value, ok := secret.Data[ref.Key]
	if !ok {
		return "", fmt.Errorf("secret %s has no key %s", ref.Name, ref.Key)
	}
	return string(value), nil
}

func operationStatuses(results []apim.OperationResult) []apimv1.OperationStatus {
	statuses := make([]apimv1.OperationStatus, 0, len(results))
	for _, res := range results {
		status := apimv1.OperationStatus{
			Function:    res.Function,
			Method:      res.Method,
			URLTemplate: res.URLTemplate,
			URL:         res.URL,
			Ready:       res.Err == nil,
		}
		if res.Err != nil {
			status.Error = res.Err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// SetupWithManager sets up the controller with the Manager.
func (r *APIMFunctionAPIReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&apimv1.APIMFunctionAPI{}).
		WithEventFilter(predicate.Funcs{
			CreateFunc: func(e event.CreateEvent) bool { return true },
			UpdateFunc: func(e event.UpdateEvent) bool {
				// Status patches do not bump the generation.
				return e.ObjectOld.GetGeneration() != e.ObjectNew.GetGeneration()
			},
			DeleteFunc:  func(e event.DeleteEvent) bool { return false },
			GenericFunc: func(e event.GenericEvent) bool { return false },
		}).
		Named("apimfunctionapi").
		Complete(r)
}
