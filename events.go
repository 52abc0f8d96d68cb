package helpdesk

import (
	"context"
	"time"
)

// Severity classifies an event for the sink.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	// EventCategoryAuth groups registration, login, logout, and session events
	EventCategoryAuth = "auth"
	// EventCategoryTicket groups ticket lifecycle events
	EventCategoryTicket = "ticket"
)

// Event captures audit-friendly information about an action.
type Event struct {
	Message    string
	Category   string
	Severity   Severity
	Metadata   map[string]any
	Cause      error
	OccurredAt time.Time
}

// Sink consumes events for auditing/telemetry purposes. Sinks must be
// safe to call concurrently; they should not block the caller meaningfully.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopSink struct{}

func (noopSink) Record(context.Context, Event) error {
	return nil
}

func normalizeSink(s Sink) Sink {
	if s == nil {
		return noopSink{}
	}
	return s
}

// emitEvent delivers an event to the sink. The sink can never break the
// calling flow: record errors are logged and panics are recovered.
func emitEvent(ctx context.Context, sink Sink, logger Logger, event Event) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Warn("event sink panicked: %v", r)
		}
	}()

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := normalizeSink(sink).Record(ctx, event); err != nil && logger != nil {
		logger.Warn("event sink record error: %v", err)
	}
}

// LoggerSink routes events to a Logger, mapping severities to levels.
func LoggerSink(logger Logger) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		if logger == nil {
			return nil
		}
		switch e.Severity {
		case SeverityError:
			logger.Error("%s category=%s metadata=%v cause=%v", e.Message, e.Category, e.Metadata, e.Cause)
		case SeverityWarning:
			logger.Warn("%s category=%s metadata=%v", e.Message, e.Category, e.Metadata)
		default:
			logger.Info("%s category=%s metadata=%v", e.Message, e.Category, e.Metadata)
		}
		return nil
	})
}
