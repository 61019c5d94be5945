package apim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	metricsNamespace = "apim_operator"
	metricsSubsystem = "deploy"
)

// Metrics is the process-wide set of deployment metrics.
var Metrics = newDeployMetrics()

// DeployMetrics holds prometheus metrics for APIM deployment passes.
type DeployMetrics struct {
	operations    *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

func newDeployMetrics() *DeployMetrics {
	return &DeployMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "operations_total",
				Help:      "APIM operation deployments by API and result.",
			},
			[]string{"api", "result"}, // "success" or "error"
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "phase_duration_seconds",
				Help:      "Duration of deployment phases in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"phase", "result"},
		),
	}
}

// ObserveOperation counts one operation deployment.
func (m *DeployMetrics) ObserveOperation(api string, err error) {
	m.operations.WithLabelValues(api, resultLabel(err)).Inc()
}

// ObservePhase records how long a deployment phase took.
func (m *DeployMetrics) ObservePhase(phase string, started time.Time, err error) {
	m.phaseDuration.WithLabelValues(phase, resultLabel(err)).Observe(time.Since(started).Seconds())
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *DeployMetrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.operations)
	registry.MustRegister(m.phaseDuration)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func init() {
	Metrics.MustRegister(metrics.Registry)
}
