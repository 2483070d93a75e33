// Package remotelog provides the default logging collaborator: a zerolog
// writer standing in for a remote log collector.
package remotelog

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// Options describes service configuration supplied at creation time.
type Options struct {
	Writer io.Writer
}

// Service implements startup.LoggingService on top of zerolog. Configure
// applies the resolved application settings (log level, app identity);
// LogError ships error reports as structured entries.
type Service struct {
	mu   sync.Mutex
	base zerolog.Logger
	log  zerolog.Logger
}

// New creates an unconfigured Service. Until Configure runs it logs at the
// default level with no application fields.
func New(opts Options) *Service {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	base := zerolog.New(writer).With().Timestamp().Logger()
	return &Service{base: base, log: base}
}

// Configure implements startup.LoggingService.
func (s *Service) Configure(_ context.Context, cfg startup.LoggingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.base
	if cfg.Config != nil {
		if cfg.Config.LoggingLevel != "" {
			level, err := zerolog.ParseLevel(strings.ToLower(cfg.Config.LoggingLevel))
			if err != nil {
				return err
			}
			logger = logger.Level(level)
		}
		builder := logger.With()
		if cfg.Config.AppID != "" {
			builder = builder.Str("app_id", cfg.Config.AppID)
		}
		if cfg.Config.Environment != "" {
			builder = builder.Str("environment", cfg.Config.Environment)
		}
		logger = builder.Logger()
	}
	s.log = logger
	return nil
}

// LogError implements startup.LoggingService. It never fails; a report that
// cannot be written is simply dropped by the underlying writer.
func (s *Service) LogError(_ context.Context, err error, fields map[string]interface{}) {
	s.mu.Lock()
	logger := s.log
	s.mu.Unlock()

	event := logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg("application error")
}

var _ startup.LoggingService = (*Service)(nil)
