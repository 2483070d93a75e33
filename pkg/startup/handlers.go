package startup

import "context"

// Handler is the asynchronous unit of work bound to a phase. A handler owns
// any concurrency it needs internally; the sequencer only awaits its return.
type Handler func(ctx context.Context) error

// ErrorHandler receives the failure that stopped the sequence. Its own error,
// if any, is logged and otherwise ignored: the error phase always counts as
// satisfied.
type ErrorHandler func(ctx context.Context, err error) error

// HandlerOverrides maps phase names to replacement handlers. An entry
// replaces the default for that phase wholesale; there is no merging within
// a handler.
type HandlerOverrides map[Phase]Handler

func noopHandler(context.Context) error { return nil }

// resolveHandlers builds the effective handler table for one run: the
// defaults, with any phase present in the overlay replaced.
func (s *Sequencer) resolveHandlers(overrides HandlerOverrides) map[Phase]Handler {
	table := map[Phase]Handler{
		PhasePubSub:    noopHandler,
		PhaseConfig:    noopHandler,
		PhaseLogging:   noopHandler,
		PhaseAuth:      s.defaultAuthHandler,
		PhaseAnalytics: s.defaultAnalyticsHandler,
		PhaseI18n:      noopHandler,
		PhaseReady:     noopHandler,
	}
	for phase, handler := range overrides {
		table[phase] = handler
	}
	return table
}

// defaultAuthHandler resolves the user session. With RequireAuthenticatedUser
// set it forces login, using the current location as the return target; the
// forced-login path may end the run with a redirect marker. Otherwise it
// identifies the user on a best-effort basis. When HydrateAuthenticatedUser
// is set and a user resolved, hydration is fired without a join point:
// initialization must not wait on it and its failure must never abort the
// run, so the error is only logged.
func (s *Sequencer) defaultAuthHandler(ctx context.Context) error {
	if s.opts.RequireAuthenticatedUser {
		if err := s.auth.EnsureAuthenticatedUser(ctx, s.history.CurrentLocation()); err != nil {
			return err
		}
	} else if err := s.auth.FetchAuthenticatedUser(ctx); err != nil {
		return err
	}

	if s.opts.HydrateAuthenticatedUser && s.auth.AuthenticatedUser() != nil {
		hydrateCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.auth.HydrateAuthenticatedUser(hydrateCtx); err != nil {
				s.logger.Warn(hydrateCtx, "account hydration failed", "error", err)
			}
		}()
	}
	return nil
}

// defaultAnalyticsHandler identifies the user established by the auth phase,
// falling back to anonymous identification when no user (or no user ID)
// resolved.
func (s *Sequencer) defaultAnalyticsHandler(ctx context.Context) error {
	if user := s.auth.AuthenticatedUser(); user != nil && user.UserID != "" {
		return s.analytics.IdentifyAuthenticatedUser(ctx, user.UserID)
	}
	return s.analytics.IdentifyAnonymousUser(ctx)
}

// defaultErrorHandler forwards the failure to the logging collaborator.
func (s *Sequencer) defaultErrorHandler(ctx context.Context, err error) error {
	s.logging.LogError(ctx, err, nil)
	return nil
}
