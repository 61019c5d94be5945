// Package apim deploys Azure Function Apps behind Azure API Management.
// It upserts the API, its CORS policy, the function app master key as a secret named value,
// the backend pointing at the function app and one operation per declared function endpoint.
package apim

import (
	"go.opentelemetry.io/otel"
	ctrl "sigs.k8s.io/controller-runtime"
)

// logger is the default logger for APIM operations when the Cloud context carries none.
var logger = ctrl.Log.WithName("apim")

var tracer = otel.Tracer("github.com/hedinit/azure-apim-functions-operator/internal/apim")
