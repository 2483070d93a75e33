package logging

import (
	"context"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

// NoOpLogger discards all log entries.
type NoOpLogger struct{}

// Debug implements startup.Logger.
func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}

// Info implements startup.Logger.
func (n *NoOpLogger) Info(context.Context, string, ...interface{}) {}

// Warn implements startup.Logger.
func (n *NoOpLogger) Warn(context.Context, string, ...interface{}) {}

// Error implements startup.Logger.
func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

// With implements startup.Logger.
func (n *NoOpLogger) With(...interface{}) startup.Logger { return n }

// NewNoOpLogger returns a startup.Logger that discards all log entries.
func NewNoOpLogger() startup.Logger {
	return &NoOpLogger{}
}
