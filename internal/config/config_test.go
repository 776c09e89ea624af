package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_OptionalIntegrations(t *testing.T) {
	t.Setenv("DB_NAME", "court.db")
	t.Setenv("PORT", "8080")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("TENANT_ID", "tenant-1")

	cfg := Load()
	assert.Equal(t, "court.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "tenant-1", cfg.TenantID)
	assert.False(t, cfg.Slack.Enabled())

	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	assert.True(t, Load().Slack.Enabled())
}
