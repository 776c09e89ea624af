package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/config"
	"github.com/mauv0809/court-draw/internal/http/handlers"
	"github.com/mauv0809/court-draw/internal/session"
)

func NewServer(svc *session.Service, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Session:        svc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(handlers.StatsHandler(s.Session), paramsMiddleware))

	s.Router.Handle("POST /schedules", Chain(handlers.CreateScheduleHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /schedules", Chain(handlers.ListSchedulesHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /schedules/{id}", Chain(handlers.GetScheduleHandler(s.Session), paramsMiddleware))
	s.Router.Handle("DELETE /schedules/{id}", Chain(handlers.DeleteScheduleHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /schedules/{id}/text", Chain(handlers.ScheduleTextHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /schedules/{id}/summary", Chain(handlers.ScheduleSummaryHandler(s.Session), paramsMiddleware))

	s.Router.Handle("POST /brackets", Chain(handlers.CreateBracketHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /brackets", Chain(handlers.ListBracketsHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /brackets/{id}", Chain(handlers.GetBracketHandler(s.Session), paramsMiddleware))
	s.Router.Handle("DELETE /brackets/{id}", Chain(handlers.DeleteBracketHandler(s.Session), paramsMiddleware))
	s.Router.Handle("PUT /brackets/{id}/rounds/{round}/matches/{match}/score", Chain(handlers.SetScoreHandler(s.Session), paramsMiddleware))
	s.Router.Handle("POST /brackets/{id}/rounds/{round}/advance", Chain(handlers.AdvanceWinnersHandler(s.Session), paramsMiddleware))

	s.Router.Handle("GET /roster", Chain(handlers.RosterHandler(s.Session), paramsMiddleware))

	if secret := s.Cfg.Slack.SigningSecret; secret != "" {
		s.Router.Handle("POST /slack/command/draw", Chain(handlers.DrawCommandHandler(s.Session), paramsMiddleware, slackVerifier(secret)))
	} else {
		log.Info("SLACK_SIGNING_SECRET not set, slash commands are disabled")
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
