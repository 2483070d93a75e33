package startup

import "context"

// Config is the resolved application settings snapshot. The config
// collaborator establishes it before the logging phase wires up; the
// sequencer treats it as read-only for the remainder of the run.
type Config struct {
	AppID              string `yaml:"app_id" validate:"required"`
	Environment        string `yaml:"environment,omitempty" validate:"omitempty,oneof=development stage production test"`
	SiteName           string `yaml:"site_name,omitempty"`
	BaseURL            string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	LoginURL           string `yaml:"login_url,omitempty" validate:"omitempty,url"`
	LogoutURL          string `yaml:"logout_url,omitempty" validate:"omitempty,url"`
	AccountsURL        string `yaml:"accounts_url,omitempty" validate:"omitempty,url"`
	AnalyticsURL       string `yaml:"analytics_url,omitempty" validate:"omitempty,url"`
	LoggingLevel       string `yaml:"logging_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LanguageCookieName string `yaml:"language_cookie_name,omitempty"`
}

// ConfigStore resolves the application settings. The sequencer calls
// GetConfig once, immediately before the logging phase wires up, and caches
// the snapshot for the rest of the run.
type ConfigStore interface {
	GetConfig(ctx context.Context) (*Config, error)
}
