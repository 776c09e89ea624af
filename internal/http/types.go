package http

import (
	"net/http"

	"github.com/mauv0809/court-draw/internal/config"
	"github.com/mauv0809/court-draw/internal/session"
)

type Server struct {
	Session        *session.Service
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
