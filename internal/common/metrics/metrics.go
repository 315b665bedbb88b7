// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Total number of successful activity signups",
		},
		[]string{"activity"},
	)

	WithdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_withdrawals_total",
			Help: "Total number of successful activity withdrawals",
		},
		[]string{"activity"},
	)

	SignupFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signup_failures_total",
			Help: "Total number of rejected signup or withdrawal attempts",
		},
		[]string{"activity", "error_code"},
	)
)
