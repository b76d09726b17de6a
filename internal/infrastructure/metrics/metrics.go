package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Step execution metrics
	StepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bsdsetup_steps_total",
			Help: "Total number of provisioning steps executed",
		},
		[]string{"step", "status"}, // completed, failed
	)

	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bsdsetup_step_duration_seconds",
			Help:    "Time spent in each provisioning step",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bsdsetup_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, system, network, not_found, timeout, privilege
	)

	// Run information
	RunInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bsdsetup_run_info",
			Help: "Provisioner run information",
		},
		[]string{"version", "hostname"},
	)
)

// RecordStep records the outcome and duration of a step.
func RecordStep(step string, status string, duration float64) {
	StepsTotal.WithLabelValues(step, status).Inc()
	StepDuration.WithLabelValues(step).Observe(duration)
}

// RecordError records an error occurrence by type.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetRunInfo records the provisioner version and host.
func SetRunInfo(version, hostname string) {
	RunInfo.WithLabelValues(version, hostname).Set(1)
}
