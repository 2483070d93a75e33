package startup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{name: "missing bus", mutate: func(o *Options) { o.Bus = nil }, field: "Bus"},
		{name: "missing config store", mutate: func(o *Options) { o.Config = nil }, field: "Config"},
		{name: "missing logging service", mutate: func(o *Options) { o.LoggingService = nil }, field: "LoggingService"},
		{name: "missing auth service", mutate: func(o *Options) { o.Auth = nil }, field: "Auth"},
		{name: "missing analytics service", mutate: func(o *Options) { o.AnalyticsService = nil }, field: "AnalyticsService"},
		{name: "missing i18n configurator", mutate: func(o *Options) { o.I18n = nil }, field: "I18n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := newTestFixture().options()
			tc.mutate(&opts)

			_, err := New(opts)
			var optsErr *OptionsError
			require.ErrorAs(t, err, &optsErr)
			require.Equal(t, tc.field, optsErr.Field)
		})
	}
}

func TestNew_RejectsErrorPhaseInHandlerTable(t *testing.T) {
	t.Parallel()

	opts := newTestFixture().options()
	opts.Handlers = HandlerOverrides{
		"initError": func(context.Context) error { return nil },
	}

	_, err := New(opts)
	require.ErrorContains(t, err, "Options.ErrorHandler")
}

func TestNew_RejectsUnknownPhase(t *testing.T) {
	t.Parallel()

	opts := newTestFixture().options()
	opts.Handlers = HandlerOverrides{
		"warmCaches": func(context.Context) error { return nil },
	}

	_, err := New(opts)
	require.ErrorContains(t, err, "unknown phase: warmCaches")
}

func TestNew_RejectsNilHandler(t *testing.T) {
	t.Parallel()

	opts := newTestFixture().options()
	opts.Handlers = HandlerOverrides{PhaseConfig: nil}

	_, err := New(opts)
	require.ErrorContains(t, err, "nil handler for phase config")
}

func TestNew_DefaultsLoggerAndHistory(t *testing.T) {
	t.Parallel()

	seq, err := New(newTestFixture().options())
	require.NoError(t, err)
	require.NotNil(t, seq)

	// A sequencer built without Logger or History must still run.
	seq.Run(context.Background())
	require.Equal(t, StateDone, seq.State())
}
