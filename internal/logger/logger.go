// Package logger sets up OpenTelemetry tracing for the operator.
// Deploy phases and operation upserts are exported as spans to an OTLP collector.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	ctrl "sigs.k8s.io/controller-runtime"
)

const defaultEndpoint = "opentelemetry-collector.opentelemetry-collector.svc.cluster.local:4317"

var setupLog = ctrl.Log.WithName("tracing")

// InitTracer installs a global tracer provider exporting to an OTLP gRPC collector
// and returns its shutdown function.
//
// OTEL_EXPORTER_OTLP_ENDPOINT overrides the in-cluster collector address. DD_ENV and
// DD_VERSION become the deployment environment and service version resource attributes.
func InitTracer(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
		setupLog.Info("⚠️ OTEL_EXPORTER_OTLP_ENDPOINT not set, using default", "endpoint", endpoint)
	}

	// The collector runs in-cluster.
	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to otlp endpoint %s: %w", endpoint, err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String(os.Getenv("DD_ENV")),
			semconv.ServiceVersionKey.String(os.Getenv("DD_VERSION")),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	setupLog.Info("✅ Tracer configured", "endpoint", endpoint, "service", serviceName,
		"env", os.Getenv("DD_ENV"), "version", os.Getenv("DD_VERSION"))

	return tp.Shutdown, nil
}
