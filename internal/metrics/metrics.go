package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hrms_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AttendanceEvents counts check_in, check_out and manual entries.
	AttendanceEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_attendance_events_total",
			Help: "Attendance state changes by kind.",
		},
		[]string{"event"},
	)

	// Decisions counts reviews of correction and leave requests.
	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_request_decisions_total",
			Help: "Correction and leave request transitions.",
		},
		[]string{"kind", "status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_login_attempts_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)
