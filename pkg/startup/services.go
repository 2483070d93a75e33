package startup

import (
	"context"
	"net/http"
)

// AuthenticatedUser is the identity record owned by the auth collaborator.
// The sequencer never mutates it; the default auth and analytics handlers
// only read it through the collaborator's accessor.
type AuthenticatedUser struct {
	UserID   string
	Username string
	Email    string
	Roles    []string
}

// LoggingConfig carries the wiring inputs for the logging collaborator.
type LoggingConfig struct {
	Config *Config
}

// LoggingService is the error-reporting collaborator. LogError must not
// fail; whatever the backing transport does with the report is its own
// concern.
type LoggingService interface {
	Configure(ctx context.Context, cfg LoggingConfig) error
	LogError(ctx context.Context, err error, fields map[string]interface{})
}

// AuthConfig carries the wiring inputs for the auth collaborator.
type AuthConfig struct {
	Config         *Config
	LoggingService LoggingService
}

// AuthService is the authentication collaborator.
type AuthService interface {
	Configure(ctx context.Context, cfg AuthConfig) error

	// EnsureAuthenticatedUser resolves once a valid session exists. When it
	// instead starts a login redirect, it fails with an error carrying the
	// redirect marker (see IsRedirecting). returnURL is the location the
	// login flow should come back to.
	EnsureAuthenticatedUser(ctx context.Context, returnURL string) error

	// FetchAuthenticatedUser identifies the current user on a best-effort
	// basis without forcing login; it resolves whether or not a user exists.
	FetchAuthenticatedUser(ctx context.Context) error

	// HydrateAuthenticatedUser enriches the resolved user with extra account
	// fields. The default auth handler fires it without awaiting the result.
	HydrateAuthenticatedUser(ctx context.Context) error

	AuthenticatedUser() *AuthenticatedUser
	AuthenticatedHTTPClient() *http.Client
}

// AnalyticsConfig carries the wiring inputs for the analytics collaborator.
type AnalyticsConfig struct {
	Config         *Config
	LoggingService LoggingService
	HTTPClient     *http.Client
}

// AnalyticsService is the analytics collaborator.
type AnalyticsService interface {
	Configure(ctx context.Context, cfg AnalyticsConfig) error
	IdentifyAuthenticatedUser(ctx context.Context, userID string) error
	IdentifyAnonymousUser(ctx context.Context) error
}

// I18nConfig carries the wiring inputs for the i18n collaborator, including
// the already-merged message catalog.
type I18nConfig struct {
	Config         *Config
	LoggingService LoggingService
	Messages       MessageSet
}

// I18nConfigurator is the internationalization collaborator.
type I18nConfigurator interface {
	Configure(ctx context.Context, cfg I18nConfig) error
}

// History reports the current navigation location. The default auth handler
// passes it as the return target for a forced login.
type History interface {
	CurrentLocation() string
}

// StaticHistory is a History pinned to a fixed location.
type StaticHistory string

// CurrentLocation implements History.
func (s StaticHistory) CurrentLocation() string { return string(s) }
