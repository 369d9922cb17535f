// Package logging writes one JSON object per line, the format every component of the
// service logs in. Each entry carries ts (in the configured location), level and msg.
package logging

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Logger is safe for concurrent use.
type Logger struct {
	mu        *sync.Mutex
	w         io.Writer
	loc       *time.Location
	component string
}

// New returns a Logger writing to w with timestamps in loc (UTC when nil).
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{mu: &sync.Mutex{}, w: w, loc: loc}
}

// Nop discards everything.
func Nop() *Logger {
	return New(io.Discard, time.UTC)
}

// With returns a child logger tagging every entry with component.
func (l *Logger) With(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

// Info logs msg at info level.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.write("info", msg, nil, fields)
}

// Warn logs msg at warn level with an optional cause.
func (l *Logger) Warn(msg string, err error, fields map[string]any) {
	l.write("warn", msg, err, fields)
}

// Error logs msg at error level with the cause.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	l.write("error", msg, err, fields)
}

// Event logs a free-form entry. The level defaults to error when status is "error",
// info otherwise.
func (l *Logger) Event(data map[string]any) {
	entry := make(map[string]any, len(data)+3)
	for k, v := range data {
		entry[k] = v
	}
	if _, ok := entry["level"]; !ok {
		if entry["status"] == "error" {
			entry["level"] = "error"
		} else {
			entry["level"] = "info"
		}
	}
	l.emit(entry)
}

func (l *Logger) write(level, msg string, err error, fields map[string]any) {
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}
	l.emit(entry)
}

func (l *Logger) emit(entry map[string]any) {
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if l.component != "" {
		if _, ok := entry["component"]; !ok {
			entry["component"] = l.component
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{
			"ts":    entry["ts"],
			"level": "error",
			"msg":   "failed to marshal log entry",
			"error": err.Error(),
		})
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
}
