package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/court-draw/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	metrics.NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewService(reg)

	s.IncSchedulesGenerated()
	s.IncSchedulesGenerated()
	s.IncBracketsGenerated()
	s.IncSlackNotifFailed()
	s.ObserveGenerationDuration(metrics.KindSchedule, 0.002)
	s.SetStartupTime(1.5)

	body := scrape(t, reg)
	assert.Contains(t, body, "courtdraw_schedules_generated_total 2")
	assert.Contains(t, body, "courtdraw_brackets_generated_total 1")
	assert.Contains(t, body, "courtdraw_slack_notifications_sent_total 0")
	assert.Contains(t, body, "courtdraw_slack_notifications_failed_total 1")
	assert.Contains(t, body, `courtdraw_generation_duration_seconds_count{kind="schedule"} 1`)
	assert.Contains(t, body, "courtdraw_startup_duration_seconds 1.5")
}

func TestNewService_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.NewService(prometheus.NewRegistry())
		metrics.NewService(prometheus.NewRegistry())
	})
}
