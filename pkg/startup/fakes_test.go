package startup

import (
	"context"
	"net/http"
	"sync"
)

// recordingBus captures every published event in order.
type recordingBus struct {
	mu     sync.Mutex
	topics []string
	events []recordedEvent
	err    error
}

type recordedEvent struct {
	topic   string
	payload interface{}
}

func (b *recordingBus) Publish(_ context.Context, topic string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.topics = append(b.topics, topic)
	b.events = append(b.events, recordedEvent{topic: topic, payload: payload})
	return nil
}

func (b *recordingBus) Subscribe(string, EventHandler) (Subscription, error) {
	return fakeSubscription{}, nil
}

func (b *recordingBus) published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.topics))
	copy(out, b.topics)
	return out
}

func (b *recordingBus) payloadFor(topic string) (interface{}, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ev := range b.events {
		if ev.topic == topic {
			return ev.payload, true
		}
	}
	return nil, false
}

type fakeSubscription struct{}

func (fakeSubscription) Unsubscribe() {}

type fakeConfigStore struct {
	cfg *Config
	err error
}

func (s *fakeConfigStore) GetConfig(context.Context) (*Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg != nil {
		return s.cfg, nil
	}
	return &Config{AppID: "test-app", Environment: "test", LoggingLevel: "info"}, nil
}

type fakeLoggingService struct {
	mu           sync.Mutex
	configured   []LoggingConfig
	configureErr error
	logged       []error
}

func (l *fakeLoggingService) Configure(_ context.Context, cfg LoggingConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.configureErr != nil {
		return l.configureErr
	}
	l.configured = append(l.configured, cfg)
	return nil
}

func (l *fakeLoggingService) LogError(_ context.Context, err error, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logged = append(l.logged, err)
}

func (l *fakeLoggingService) loggedErrors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]error, len(l.logged))
	copy(out, l.logged)
	return out
}

type fakeAuthService struct {
	mu sync.Mutex

	user         *AuthenticatedUser
	configureErr error
	ensureErr    error
	fetchErr     error
	hydrateErr   error

	configured    []AuthConfig
	ensureCalls   []string
	fetchCalls    int
	hydrateCalled chan struct{}
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{hydrateCalled: make(chan struct{}, 1)}
}

func (a *fakeAuthService) Configure(_ context.Context, cfg AuthConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.configureErr != nil {
		return a.configureErr
	}
	a.configured = append(a.configured, cfg)
	return nil
}

func (a *fakeAuthService) EnsureAuthenticatedUser(_ context.Context, returnURL string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureCalls = append(a.ensureCalls, returnURL)
	return a.ensureErr
}

func (a *fakeAuthService) FetchAuthenticatedUser(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetchCalls++
	return a.fetchErr
}

func (a *fakeAuthService) HydrateAuthenticatedUser(context.Context) error {
	a.mu.Lock()
	err := a.hydrateErr
	a.mu.Unlock()
	select {
	case a.hydrateCalled <- struct{}{}:
	default:
	}
	return err
}

func (a *fakeAuthService) AuthenticatedUser() *AuthenticatedUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *fakeAuthService) AuthenticatedHTTPClient() *http.Client {
	return http.DefaultClient
}

func (a *fakeAuthService) ensureReturnURLs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.ensureCalls))
	copy(out, a.ensureCalls)
	return out
}

func (a *fakeAuthService) fetchCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fetchCalls
}

type fakeAnalyticsService struct {
	mu sync.Mutex

	configureErr error
	identifyErr  error

	configured     []AnalyticsConfig
	identifiedIDs  []string
	anonymousCalls int
}

func (s *fakeAnalyticsService) Configure(_ context.Context, cfg AnalyticsConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configureErr != nil {
		return s.configureErr
	}
	s.configured = append(s.configured, cfg)
	return nil
}

func (s *fakeAnalyticsService) IdentifyAuthenticatedUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identifyErr != nil {
		return s.identifyErr
	}
	s.identifiedIDs = append(s.identifiedIDs, userID)
	return nil
}

func (s *fakeAnalyticsService) IdentifyAnonymousUser(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identifyErr != nil {
		return s.identifyErr
	}
	s.anonymousCalls++
	return nil
}

func (s *fakeAnalyticsService) identified() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.identifiedIDs))
	copy(out, s.identifiedIDs)
	return out
}

func (s *fakeAnalyticsService) anonymousCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anonymousCalls
}

type fakeI18nConfigurator struct {
	mu           sync.Mutex
	configureErr error
	configured   []I18nConfig
}

func (c *fakeI18nConfigurator) Configure(_ context.Context, cfg I18nConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configureErr != nil {
		return c.configureErr
	}
	c.configured = append(c.configured, cfg)
	return nil
}

func (c *fakeI18nConfigurator) configuredWith() []I18nConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]I18nConfig, len(c.configured))
	copy(out, c.configured)
	return out
}

// testFixture bundles one set of collaborators wired into Options.
type testFixture struct {
	bus       *recordingBus
	store     *fakeConfigStore
	logging   *fakeLoggingService
	auth      *fakeAuthService
	analytics *fakeAnalyticsService
	i18n      *fakeI18nConfigurator
}

func newTestFixture() *testFixture {
	return &testFixture{
		bus:       &recordingBus{},
		store:     &fakeConfigStore{},
		logging:   &fakeLoggingService{},
		auth:      newFakeAuthService(),
		analytics: &fakeAnalyticsService{},
		i18n:      &fakeI18nConfigurator{},
	}
}

func (f *testFixture) options() Options {
	return Options{
		Bus:              f.bus,
		Config:           f.store,
		LoggingService:   f.logging,
		Auth:             f.auth,
		AnalyticsService: f.analytics,
		I18n:             f.i18n,
	}
}
