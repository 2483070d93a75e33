package startup

// Options configures one initialization run. Collaborator fields are
// required by New; the appstart root package fills in defaults for any left
// nil. Behavioral fields all default to off/empty.
type Options struct {
	// LoggingService receives the resolved config during the logging phase
	// and error reports on failure.
	LoggingService LoggingService

	// AnalyticsService receives identify calls during the analytics phase.
	AnalyticsService AnalyticsService

	// RequireAuthenticatedUser forces a login redirect when no session
	// exists. Default false.
	RequireAuthenticatedUser bool

	// HydrateAuthenticatedUser triggers a best-effort account-data fetch
	// after a user resolves. Default false.
	HydrateAuthenticatedUser bool

	// Messages holds i18n catalogs, merged in order with last-one-wins on
	// duplicate keys before the i18n phase wires up.
	Messages []MessageSet

	// Handlers overlays replacement handlers onto the defaults, per phase.
	Handlers HandlerOverrides

	// ErrorHandler replaces the default error phase, which forwards the
	// failure to LoggingService.LogError.
	ErrorHandler ErrorHandler

	// Bus carries the completion announcements.
	Bus EventBus

	// Config resolves the settings snapshot consumed by phase wiring.
	Config ConfigStore

	// Auth is the authentication collaborator.
	Auth AuthService

	// I18n is the internationalization collaborator.
	I18n I18nConfigurator

	// History reports the current location, used as the forced-login return
	// target. Defaults to StaticHistory("/").
	History History

	// Logger receives the sequencer's own diagnostics. Defaults to a no-op.
	Logger Logger
}

func (o *Options) validate() error {
	if o.Bus == nil {
		return NewOptionsError("Bus", "event bus is required")
	}
	if o.Config == nil {
		return NewOptionsError("Config", "config store is required")
	}
	if o.LoggingService == nil {
		return NewOptionsError("LoggingService", "logging service is required")
	}
	if o.Auth == nil {
		return NewOptionsError("Auth", "auth service is required")
	}
	if o.AnalyticsService == nil {
		return NewOptionsError("AnalyticsService", "analytics service is required")
	}
	if o.I18n == nil {
		return NewOptionsError("I18n", "i18n configurator is required")
	}
	for phase, handler := range o.Handlers {
		if phase == "initError" {
			return NewOptionsError("Handlers", "the error phase is overridden via Options.ErrorHandler")
		}
		if !knownPhase(phase) {
			return NewOptionsError("Handlers", "unknown phase: "+string(phase))
		}
		if handler == nil {
			return NewOptionsError("Handlers", "nil handler for phase "+string(phase))
		}
	}
	return nil
}
