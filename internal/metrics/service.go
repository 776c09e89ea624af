package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SchedulesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_schedules_generated_total",
			Help: "The total number of rotation schedules generated.",
		}),
		BracketsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_brackets_generated_total",
			Help: "The total number of knockout brackets generated.",
		}),
		WinnersAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_bracket_rounds_advanced_total",
			Help: "The total number of bracket rounds whose winners were advanced.",
		}),
		RosterImports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_roster_imports_total",
			Help: "The total number of rosters imported from Playtomic.",
		}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courtdraw_generation_duration_seconds",
			Help:    "The duration of schedule and bracket generation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtdraw_events_published_total",
			Help: "The total number of events published to Pub/Sub.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtdraw_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SchedulesGenerated,
		s.BracketsGenerated,
		s.WinnersAdvanced,
		s.RosterImports,
		s.GenerationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSchedulesGenerated() {
	s.SchedulesGenerated.Inc()
}

func (s *Service) IncBracketsGenerated() {
	s.BracketsGenerated.Inc()
}

func (s *Service) IncWinnersAdvanced() {
	s.WinnersAdvanced.Inc()
}

func (s *Service) IncRosterImports() {
	s.RosterImports.Inc()
}

func (s *Service) ObserveGenerationDuration(kind string, duration float64) {
	s.GenerationDuration.WithLabelValues(kind).Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
