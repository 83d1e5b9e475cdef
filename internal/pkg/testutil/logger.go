package testutil

import (
	"sync"

	"github.com/Kargones/v8run/internal/pkg/logging"
)

// LogEntry - одна запись RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// RecordingLogger - logging.Logger, который запоминает записи.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ logging.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Debug записывает сообщение уровня DEBUG.
func (l *RecordingLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }

// Info записывает сообщение уровня INFO.
func (l *RecordingLogger) Info(msg string, args ...any) { l.add("INFO", msg, args) }

// Warn записывает сообщение уровня WARN.
func (l *RecordingLogger) Warn(msg string, args ...any) { l.add("WARN", msg, args) }

// Error записывает сообщение уровня ERROR.
func (l *RecordingLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }

// With возвращает тот же логгер.
func (l *RecordingLogger) With(_ ...any) logging.Logger { return l }

// Messages возвращает сообщения уровня level в порядке записи.
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}
