package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

func TestConfigure_StoresCatalogAndCookieName(t *testing.T) {
	t.Parallel()

	cfg := New()
	require.NoError(t, cfg.Configure(context.Background(), startup.I18nConfig{
		Config:   &startup.Config{LanguageCookieName: "lang"},
		Messages: startup.MessageSet{"greeting": "hello"},
	}))

	message, ok := cfg.Message("greeting")
	require.True(t, ok)
	require.Equal(t, "hello", message)
	require.Equal(t, "lang", cfg.LanguageCookieName())
}

func TestMessage_MissingIdentifier(t *testing.T) {
	t.Parallel()

	cfg := New()
	require.NoError(t, cfg.Configure(context.Background(), startup.I18nConfig{}))

	_, ok := cfg.Message("absent")
	require.False(t, ok)
}
