package startup

import "context"

// Completion topics announced on the event bus. Each phase topic is published
// immediately after that phase's handler resolves; TopicReady terminates a
// successful run and TopicInitError a failed one. These are the only
// externally observable progress signals.
const (
	TopicPubSubInitialized    = "APP.PUBSUB_INITIALIZED"
	TopicConfigInitialized    = "APP.CONFIG_INITIALIZED"
	TopicLoggingInitialized   = "APP.LOGGING_INITIALIZED"
	TopicAuthInitialized      = "APP.AUTH_INITIALIZED"
	TopicAnalyticsInitialized = "APP.ANALYTICS_INITIALIZED"
	TopicI18nInitialized      = "APP.I18N_INITIALIZED"
	TopicReady                = "APP.READY"
	TopicInitError            = "APP.INIT_ERROR"
)

var completionTopics = map[Phase]string{
	PhasePubSub:    TopicPubSubInitialized,
	PhaseConfig:    TopicConfigInitialized,
	PhaseLogging:   TopicLoggingInitialized,
	PhaseAuth:      TopicAuthInitialized,
	PhaseAnalytics: TopicAnalyticsInitialized,
	PhaseI18n:      TopicI18nInitialized,
	PhaseReady:     TopicReady,
}

// CompletionTopic returns the bus topic announced when the given phase
// finishes successfully.
func CompletionTopic(p Phase) (string, bool) {
	topic, ok := completionTopics[p]
	return topic, ok
}

// EventHandler processes a published event. Failures are surfaced via the
// returned error so the bus can log diagnostics and continue delivering to
// remaining subscribers.
type EventHandler func(ctx context.Context, topic string, payload interface{}) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events.
type Subscription interface {
	Unsubscribe()
}

// EventBus distributes startup events to interested subscribers. The
// sequencer is handed a publish capability explicitly rather than reaching
// for a process-wide bus, so it can be substituted in tests. Implementations
// must be safe for concurrent use.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Subscribe(topic string, handler EventHandler) (Subscription, error)
}
