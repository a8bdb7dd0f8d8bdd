package services

import "github.com/prometheus/client_golang/prometheus"

var (
	alertsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydration_alerts_generated_total",
			Help: "Total number of hydration alerts inserted, by severity and source",
		},
		[]string{"type", "source"},
	)
	alertsSuppressed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hydration_alerts_suppressed_total",
			Help: "Machine alerts skipped because the athlete was well hydrated",
		},
	)
)

// InitMetrics registers the pipeline metrics. Call this from main.go
func InitMetrics() {
	prometheus.MustRegister(alertsGenerated)
	prometheus.MustRegister(alertsSuppressed)
}
