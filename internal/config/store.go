// Package config provides the default settings collaborators: stores that
// resolve the startup.Config snapshot from a static value, a YAML document,
// or the process environment.
package config

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// Store resolves a startup.Config snapshot once and caches it.
type Store struct {
	once    sync.Once
	resolve func(ctx context.Context) (*startup.Config, error)
	cfg     *startup.Config
	err     error
}

// NewStatic returns a Store serving the provided snapshot. The snapshot is
// validated on first resolution.
func NewStatic(cfg *startup.Config) *Store {
	return &Store{
		resolve: func(context.Context) (*startup.Config, error) {
			return cfg, nil
		},
	}
}

// NewFromFile returns a Store that parses the YAML document at path.
func NewFromFile(path string) *Store {
	return &Store{
		resolve: func(context.Context) (*startup.Config, error) {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			var cfg startup.Config
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			return &cfg, nil
		},
	}
}

// NewFromEnv returns a Store that assembles settings from APPSTART_* process
// environment variables, applying defaults for anything unset.
func NewFromEnv() *Store {
	return &Store{
		resolve: func(context.Context) (*startup.Config, error) {
			return fromEnv(), nil
		},
	}
}

// GetConfig implements startup.ConfigStore.
func (s *Store) GetConfig(ctx context.Context) (*startup.Config, error) {
	s.once.Do(func() {
		cfg, err := s.resolve(ctx)
		if err != nil {
			s.err = err
			return
		}
		if cfg == nil {
			s.err = fmt.Errorf("config resolved to nil")
			return
		}
		applyDefaults(cfg)
		if err := validateConfig(cfg); err != nil {
			s.err = err
			return
		}
		s.cfg = cfg
	})
	return s.cfg, s.err
}

func fromEnv() *startup.Config {
	return &startup.Config{
		AppID:              os.Getenv("APPSTART_APP_ID"),
		Environment:        os.Getenv("APPSTART_ENVIRONMENT"),
		SiteName:           os.Getenv("APPSTART_SITE_NAME"),
		BaseURL:            os.Getenv("APPSTART_BASE_URL"),
		LoginURL:           os.Getenv("APPSTART_LOGIN_URL"),
		LogoutURL:          os.Getenv("APPSTART_LOGOUT_URL"),
		AccountsURL:        os.Getenv("APPSTART_ACCOUNTS_URL"),
		AnalyticsURL:       os.Getenv("APPSTART_ANALYTICS_URL"),
		LoggingLevel:       os.Getenv("APPSTART_LOGGING_LEVEL"),
		LanguageCookieName: os.Getenv("APPSTART_LANGUAGE_COOKIE_NAME"),
	}
}

func applyDefaults(cfg *startup.Config) {
	if cfg.AppID == "" {
		cfg.AppID = "app"
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	if cfg.LoggingLevel == "" {
		cfg.LoggingLevel = "info"
	}
	if cfg.LanguageCookieName == "" {
		cfg.LanguageCookieName = "language-preference"
	}
}

var _ startup.ConfigStore = (*Store)(nil)
