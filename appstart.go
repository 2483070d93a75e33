// Package appstart runs the application startup sequence with default
// collaborators filled in for anything the caller leaves unset. The core
// sequencing logic lives in pkg/startup; this package only wires it.
package appstart

import (
	"context"

	"github.com/alexisbeaulieu97/appstart/internal/config"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/analytics"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/auth"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/i18n"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/remotelog"
	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// Initialize fills collaborator defaults, builds the sequencer, and runs the
// startup sequence. The returned sequencer exposes the terminal state; run
// failures themselves are announced on the event bus, never returned here.
// The returned error covers construction problems only (invalid options).
func Initialize(ctx context.Context, opts startup.Options) (*startup.Sequencer, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}

	seq, err := startup.New(opts)
	if err != nil {
		return nil, err
	}
	seq.Run(ctx)
	return seq, nil
}

// withDefaults resolves nil collaborators to the in-process defaults:
// charmbracelet/log diagnostics, an in-process bus, an env-backed config
// store, zerolog remote logging, in-process auth, log-and-forward analytics,
// and a catalog-holding i18n configurator.
func withDefaults(opts startup.Options) (startup.Options, error) {
	if opts.Logger == nil {
		logger, err := logging.New(logging.Options{Component: "appstart"})
		if err != nil {
			return opts, err
		}
		opts.Logger = logger
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus(opts.Logger)
	}
	if opts.Config == nil {
		opts.Config = config.NewFromEnv()
	}
	if opts.LoggingService == nil {
		opts.LoggingService = remotelog.New(remotelog.Options{})
	}
	if opts.Auth == nil {
		opts.Auth = auth.New()
	}
	if opts.AnalyticsService == nil {
		opts.AnalyticsService = analytics.New(opts.Logger)
	}
	if opts.I18n == nil {
		opts.I18n = i18n.New()
	}
	if opts.History == nil {
		opts.History = startup.StaticHistory("/")
	}
	return opts, nil
}
