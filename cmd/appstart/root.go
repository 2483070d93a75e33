package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/appstart"
	appconfig "github.com/alexisbeaulieu97/appstart/internal/config"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/appstart/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

type rootFlags struct {
	configPath  string
	messages    []string
	requireAuth bool
	hydrate     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "appstart",
		Short:         "Run the application startup sequence and report each phase",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML settings document (default: environment)")
	cmd.Flags().StringArrayVarP(&flags.messages, "messages", "m", nil, "YAML message catalog, repeatable; later files win")
	cmd.Flags().BoolVar(&flags.requireAuth, "require-auth", false, "Force a login redirect when no session exists")
	cmd.Flags().BoolVar(&flags.hydrate, "hydrate", false, "Fetch extra account data after the user resolves")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	level := "info"
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, Component: "appstart"})
	if err != nil {
		return err
	}

	opts := startup.Options{
		Logger:                   logger,
		RequireAuthenticatedUser: flags.requireAuth,
		HydrateAuthenticatedUser: flags.hydrate,
	}

	if flags.configPath != "" {
		opts.Config = appconfig.NewFromFile(flags.configPath)
	}
	if len(flags.messages) > 0 {
		sets, err := startup.LoadMessageFiles(flags.messages...)
		if err != nil {
			return err
		}
		opts.Messages = sets
	}

	bus := events.NewBus(logger)
	opts.Bus = bus
	subscribeProgress(cmd, bus)

	ctx := startup.WithCorrelationID(cmd.Context(), startup.GenerateCorrelationID())
	seq, err := appstart.Initialize(ctx, opts)
	if err != nil {
		return err
	}

	switch seq.State() {
	case startup.StateRedirecting:
		fmt.Fprintf(cmd.OutOrStdout(), "stopped: %v\n", seq.Err())
	case startup.StateErrored:
		fmt.Fprintf(cmd.OutOrStdout(), "failed: %v\n", seq.Err())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", seq.State())
	}
	return nil
}

// subscribeProgress prints every startup topic as it is announced.
func subscribeProgress(cmd *cobra.Command, bus startup.EventBus) {
	topics := make([]string, 0, len(startup.Phases())+1)
	for _, phase := range startup.Phases() {
		if topic, ok := startup.CompletionTopic(phase); ok {
			topics = append(topics, topic)
		}
	}
	topics = append(topics, startup.TopicInitError)

	for _, topic := range topics {
		_, _ = bus.Subscribe(topic, func(_ context.Context, topic string, payload interface{}) error {
			if payload != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", topic, payload)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), topic)
			return nil
		})
	}
}
