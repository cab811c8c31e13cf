// Package logger provides structured key/value logging for tempo.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Logger is the logging interface injected across the project.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger carrying additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// Level controls which messages a TextLogger emits.
type Level int

const (
	// LevelDebug emits everything.
	LevelDebug Level = iota

	// LevelInfo emits info and error messages.
	LevelInfo

	// LevelError emits error messages only.
	LevelError
)

// LevelFromFlags maps the CLI verbosity flags to a level.
func LevelFromFlags(debug, trace bool) Level {
	switch {
	case trace:
		return LevelDebug
	case debug:
		return LevelInfo
	default:
		return LevelError
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// TextLogger writes "timestamp LEVEL msg key=value" lines to a writer.
// It is safe for concurrent use.
type TextLogger struct {
	mu      *sync.Mutex
	w       io.Writer
	level   Level
	baseKVs []any
}

// NewTextLogger creates a TextLogger emitting at the given level.
func NewTextLogger(w io.Writer, level Level) *TextLogger {
	return &TextLogger{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// Debug logs debug-level messages.
func (l *TextLogger) Debug(msg string, keysAndValues ...any) {
	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *TextLogger) Info(msg string, keysAndValues ...any) {
	l.log(LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *TextLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

// With returns a new logger carrying additional base key-value pairs. The
// underlying writer and mutex are shared with the parent.
//
//nolint:ireturn // With returns an interface for chaining
func (l *TextLogger) With(keysAndValues ...any) Logger {
	kvs := make([]any, 0, len(l.baseKVs)+len(keysAndValues))
	kvs = append(kvs, l.baseKVs...)
	kvs = append(kvs, keysAndValues...)

	return &TextLogger{
		mu:      l.mu,
		w:       l.w,
		level:   l.level,
		baseKVs: kvs,
	}
}

func (l *TextLogger) log(level Level, msg string, keysAndValues ...any) {
	if level < l.level {
		return
	}

	var b strings.Builder

	b.WriteString(time.Now().Local().Format("2006-01-02T15:04:05-07:00"))
	b.WriteString(" ")
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(msg)

	writeKeyValues(&b, l.baseKVs)
	writeKeyValues(&b, keysAndValues)

	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.w, b.String())
}

// writeKeyValues appends formatted key-value pairs. A trailing key with
// no value is dropped.
func writeKeyValues(b *strings.Builder, kvs []any) {
	for i := 0; i+1 < len(kvs); i += 2 {
		key := fmt.Sprintf("%v", kvs[i])
		value := fmt.Sprintf("%v", kvs[i+1])

		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString("=")

		if strings.ContainsAny(value, " \t\n\"") {
			b.WriteString(quote(value))
		} else {
			b.WriteString(value)
		}
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")

	return "\"" + s + "\""
}

// Noop is a logger that discards everything.
type Noop struct{}

// NewNoop creates a Noop logger.
func NewNoop() *Noop { return &Noop{} }

// Debug does nothing.
func (*Noop) Debug(string, ...any) {}

// Info does nothing.
func (*Noop) Info(string, ...any) {}

// Error does nothing.
func (*Noop) Error(string, ...any) {}

// With returns the same Noop logger.
//
//nolint:ireturn // With returns an interface for chaining
func (n *Noop) With(...any) Logger { return n }
