// Package metrics exposes the panel's Prometheus instrumentation.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	TwoFactorOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "two_factor_operations_total",
			Help: "Total number of two-factor operations.",
		},
		[]string{"service", "operation", "result"},
	)

	RecoveryCodesIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "two_factor_recovery_codes_issued_total",
			Help: "Total number of recovery codes issued.",
		},
		[]string{"service"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	TwoFactorOperationsTotal = TwoFactorOperationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	RecoveryCodesIssuedTotal = RecoveryCodesIssuedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		TwoFactorOperationsTotal,
		RecoveryCodesIssuedTotal,
	)
}
