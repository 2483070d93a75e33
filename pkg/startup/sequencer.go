package startup

import (
	"context"
	"sync"
)

// State tracks a Sequencer through its run.
type State uint8

const (
	StateNotStarted State = iota
	StateRunning
	StateErrored
	StateRedirecting
	StateDone
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateErrored:
		return "errored"
	case StateRedirecting:
		return "redirecting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Sequencer executes the startup phases in their fixed order, announcing
// each completion on the event bus. A Sequencer runs at most once: exactly
// one of the ready topic, the error topic, or a silent redirect stop occurs
// per instance.
type Sequencer struct {
	mu    sync.Mutex
	state State
	phase Phase
	err   error

	opts      Options
	logger    Logger
	bus       EventBus
	store     ConfigStore
	logging   LoggingService
	auth      AuthService
	analytics AnalyticsService
	i18n      I18nConfigurator
	history   History

	handlers map[Phase]Handler
	onError  ErrorHandler
	messages MessageSet
	cfg      *Config
}

// New validates the options and builds a sequencer with its effective
// handler table. Handler resolution is pure construction: defaults overlaid
// with the caller's table, total replacement per key.
func New(opts Options) (*Sequencer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Sequencer{
		state:     StateNotStarted,
		opts:      opts,
		logger:    opts.Logger,
		bus:       opts.Bus,
		store:     opts.Config,
		logging:   opts.LoggingService,
		auth:      opts.Auth,
		analytics: opts.AnalyticsService,
		i18n:      opts.I18n,
		history:   opts.History,
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}
	if s.history == nil {
		s.history = StaticHistory("/")
	}
	s.handlers = s.resolveHandlers(opts.Handlers)
	s.onError = opts.ErrorHandler
	if s.onError == nil {
		s.onError = s.defaultErrorHandler
	}
	s.messages = MergeMessages(opts.Messages...)
	return s, nil
}

// Run executes the startup sequence. Progress and failure are reported
// exclusively on the event bus; inspect State and Err afterwards for the
// terminal condition. Calling Run on a sequencer that already ran is a no-op.
func (s *Sequencer) Run(ctx context.Context) {
	if !s.begin(ctx) {
		return
	}

	for _, phase := range phaseOrder {
		s.setPhase(phase)
		s.logger.Debug(ctx, "starting phase", "phase", string(phase))

		if err := s.wire(ctx, phase); err != nil {
			s.fail(ctx, phase, err)
			return
		}
		if err := s.handlers[phase](ctx); err != nil {
			s.fail(ctx, phase, err)
			return
		}
		s.announce(ctx, phase)
	}

	s.setTerminal(StateDone, PhaseReady, nil)
	s.logger.Info(ctx, "application ready")
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure that terminated the run, wrapped in a
// SequenceError naming the phase. It is nil unless State is Errored or
// Redirecting.
func (s *Sequencer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CurrentPhase returns the phase the sequencer last entered.
func (s *Sequencer) CurrentPhase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Sequencer) begin(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNotStarted {
		s.logger.Warn(ctx, "startup sequence already ran", "state", s.state.String())
		return false
	}
	s.state = StateRunning
	return true
}

func (s *Sequencer) setPhase(phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

func (s *Sequencer) setTerminal(state State, phase Phase, err error) {
	s.mu.Lock()
	s.state = state
	s.phase = phase
	if err != nil {
		s.err = NewSequenceError(phase, err)
	}
	s.mu.Unlock()
}

// wire performs the pre-phase configuration of dependent collaborators using
// values derived from already-completed phases. Wiring failures follow the
// same error path as handler failures.
func (s *Sequencer) wire(ctx context.Context, phase Phase) error {
	switch phase {
	case PhaseLogging:
		cfg, err := s.resolveConfig(ctx)
		if err != nil {
			return err
		}
		return s.logging.Configure(ctx, LoggingConfig{Config: cfg})
	case PhaseAuth:
		cfg, err := s.resolveConfig(ctx)
		if err != nil {
			return err
		}
		return s.auth.Configure(ctx, AuthConfig{Config: cfg, LoggingService: s.logging})
	case PhaseAnalytics:
		cfg, err := s.resolveConfig(ctx)
		if err != nil {
			return err
		}
		return s.analytics.Configure(ctx, AnalyticsConfig{
			Config:         cfg,
			LoggingService: s.logging,
			HTTPClient:     s.auth.AuthenticatedHTTPClient(),
		})
	case PhaseI18n:
		cfg, err := s.resolveConfig(ctx)
		if err != nil {
			return err
		}
		return s.i18n.Configure(ctx, I18nConfig{
			Config:         cfg,
			LoggingService: s.logging,
			Messages:       s.messages,
		})
	}
	return nil
}

func (s *Sequencer) resolveConfig(ctx context.Context) (*Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	return cfg, nil
}

// fail routes a phase or wiring failure. A redirect marker means the browser
// is navigating away as the intended outcome of the forced-login path, so the
// run stops silently: no error handler, no error topic. Anything else runs
// the error phase and announces the error topic with the failure as payload.
func (s *Sequencer) fail(ctx context.Context, phase Phase, err error) {
	if IsRedirecting(err) {
		s.setTerminal(StateRedirecting, phase, err)
		s.logger.Debug(ctx, "stopping for in-flight redirect", "phase", string(phase))
		return
	}

	s.setTerminal(StateErrored, phase, err)
	s.logger.Error(ctx, "startup phase failed", "phase", string(phase), "error", err)
	if handlerErr := s.onError(ctx, err); handlerErr != nil {
		s.logger.Warn(ctx, "error handler failed", "error", handlerErr)
	}
	s.publish(ctx, TopicInitError, err)
}

func (s *Sequencer) announce(ctx context.Context, phase Phase) {
	topic, ok := CompletionTopic(phase)
	if !ok {
		return
	}
	s.publish(ctx, topic, nil)
}

func (s *Sequencer) publish(ctx context.Context, topic string, payload interface{}) {
	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		s.logger.Warn(ctx, "failed to publish startup event", "topic", topic, "error", err)
	}
}
