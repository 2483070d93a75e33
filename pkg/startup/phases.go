// Package startup implements a fixed, overridable application startup
// sequence: an ordered list of named phases, each bound to an asynchronous
// handler that callers may replace, each announcing completion on an event
// bus, with a single top-level failure path.
package startup

// Phase names one ordered step of the startup sequence.
type Phase string

const (
	PhasePubSub    Phase = "pubSub"
	PhaseConfig    Phase = "config"
	PhaseLogging   Phase = "logging"
	PhaseAuth      Phase = "auth"
	PhaseAnalytics Phase = "analytics"
	PhaseI18n      Phase = "i18n"
	PhaseReady     Phase = "ready"
)

// phaseOrder is the fixed total order phases execute in. Later phases depend
// on state established by earlier ones: analytics identification needs the
// auth resolution, and auth/analytics/i18n configuration needs the resolved
// settings plus a configured logging service.
var phaseOrder = []Phase{
	PhasePubSub,
	PhaseConfig,
	PhaseLogging,
	PhaseAuth,
	PhaseAnalytics,
	PhaseI18n,
	PhaseReady,
}

// Phases returns the execution order. The returned slice is a copy; mutating
// it has no effect on the sequencer.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

func knownPhase(p Phase) bool {
	for _, candidate := range phaseOrder {
		if candidate == p {
			return true
		}
	}
	return false
}
