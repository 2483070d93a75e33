package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

func TestNewStatic_AppliesDefaultsAndValidates(t *testing.T) {
	t.Parallel()

	store := NewStatic(&startup.Config{AppID: "portal"})

	cfg, err := store.GetConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "portal", cfg.AppID)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "info", cfg.LoggingLevel)
	require.Equal(t, "language-preference", cfg.LanguageCookieName)
}

func TestNewStatic_RejectsInvalidEnvironment(t *testing.T) {
	t.Parallel()

	store := NewStatic(&startup.Config{AppID: "portal", Environment: "qa"})

	_, err := store.GetConfig(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "invalid config")
	require.ErrorContains(t, err, "Environment")
}

func TestNewStatic_RejectsMalformedURL(t *testing.T) {
	t.Parallel()

	store := NewStatic(&startup.Config{AppID: "portal", BaseURL: "not a url"})

	_, err := store.GetConfig(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "BaseURL")
}

func TestNewStatic_NilSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStatic(nil)

	_, err := store.GetConfig(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "nil")
}

func TestNewFromFile_ParsesYAMLDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := `app_id: portal
environment: stage
site_name: Example Portal
base_url: https://portal.example.com
login_url: https://accounts.example.com/login
analytics_url: https://analytics.example.com/v1
logging_level: debug
language_cookie_name: lang
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := NewFromFile(path).GetConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "portal", cfg.AppID)
	require.Equal(t, "stage", cfg.Environment)
	require.Equal(t, "Example Portal", cfg.SiteName)
	require.Equal(t, "https://accounts.example.com/login", cfg.LoginURL)
	require.Equal(t, "debug", cfg.LoggingLevel)
	require.Equal(t, "lang", cfg.LanguageCookieName)
}

func TestNewFromFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")).GetConfig(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "read config")
}

func TestNewFromFile_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_id: [unterminated\n"), 0o644))

	_, err := NewFromFile(path).GetConfig(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "parse config")
}

func TestNewFromEnv_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("APPSTART_APP_ID", "portal")
	t.Setenv("APPSTART_ENVIRONMENT", "development")
	t.Setenv("APPSTART_ANALYTICS_URL", "https://analytics.example.com/v1")
	t.Setenv("APPSTART_LOGGING_LEVEL", "warn")

	cfg, err := NewFromEnv().GetConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "portal", cfg.AppID)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "https://analytics.example.com/v1", cfg.AnalyticsURL)
	require.Equal(t, "warn", cfg.LoggingLevel)
}

func TestGetConfig_ResolvesOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &Store{resolve: func(context.Context) (*startup.Config, error) {
		calls++
		return &startup.Config{AppID: "portal"}, nil
	}}

	first, err := store.GetConfig(context.Background())
	require.NoError(t, err)
	second, err := store.GetConfig(context.Background())
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, calls)
}
