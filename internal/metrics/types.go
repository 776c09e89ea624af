package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	SchedulesGenerated prometheus.Counter
	BracketsGenerated  prometheus.Counter
	WinnersAdvanced    prometheus.Counter
	RosterImports      prometheus.Counter
	GenerationDuration *prometheus.HistogramVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
