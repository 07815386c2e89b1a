// Package metrics records gameplay observations. Emission must never block
// or fail the primary response path; sinks swallow their own errors.
package metrics

import "log/slog"

// Observation event names.
const (
	EventAnswered     = "answered"
	EventCorrect      = "correct"
	EventWrong        = "wrong"
	EventStarted      = "session_started"
	EventCompleted    = "session_completed"
	EventBuildFailure = "build_failure"
	EventError        = "error"
)

// Sink receives gameplay observations.
type Sink interface {
	Observe(event string, attrs ...any)
}

// LogSink writes observations as structured log lines.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a slog-backed sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Observe logs one observation.
func (s *LogSink) Observe(event string, attrs ...any) {
	s.logger.Info("observation", append([]any{"event", event}, attrs...)...)
}

// NopSink discards observations.
type NopSink struct{}

// Observe does nothing.
func (NopSink) Observe(string, ...any) {}
