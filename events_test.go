package helpdesk_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	helpdesk "github.com/goliatone/go-helpdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records formatted lines per level.
type captureLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{lines: map[string][]string{}}
}

func (l *captureLogger) log(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debug(format string, args ...any) { l.log("debug", format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.log("info", format, args...) }
func (l *captureLogger) Warn(format string, args ...any)  { l.log("warn", format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.log("error", format, args...) }

func (l *captureLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines[level])
}

func TestSinkFunc(t *testing.T) {
	var got helpdesk.Event
	sink := helpdesk.SinkFunc(func(_ context.Context, e helpdesk.Event) error {
		got = e
		return nil
	})

	err := sink.Record(context.Background(), helpdesk.Event{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Message)

	var nilSink helpdesk.SinkFunc
	assert.NoError(t, nilSink.Record(context.Background(), helpdesk.Event{}))
}

func TestLoggerSink(t *testing.T) {
	logger := newCaptureLogger()
	sink := helpdesk.LoggerSink(logger)

	events := []helpdesk.Event{
		{Message: "all good", Severity: helpdesk.SeverityInfo},
		{Message: "heads up", Severity: helpdesk.SeverityWarning},
		{Message: "broken", Severity: helpdesk.SeverityError},
	}
	for _, e := range events {
		require.NoError(t, sink.Record(context.Background(), e))
	}

	assert.Equal(t, 1, logger.count("info"))
	assert.Equal(t, 1, logger.count("warn"))
	assert.Equal(t, 1, logger.count("error"))
}

func TestLoggerSink_NilLogger(t *testing.T) {
	sink := helpdesk.LoggerSink(nil)
	assert.NoError(t, sink.Record(context.Background(), helpdesk.Event{Message: "dropped"}))
}
