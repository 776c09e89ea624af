package config

// Config holds all configuration for the application.
// Only DBName and Port are required; the integrations are switched off when left empty.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	TenantID  string
	Turso     TursoConfig
	ProjectID string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether announcements can be posted.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
