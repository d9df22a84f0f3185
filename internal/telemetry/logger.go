// Package telemetry writes JSON-lines event logs for offline debugging
// of stage transitions and storage activity.
package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// JSONLogger appends one JSON object per event. A zero-path logger
// discards everything, so call sites never need nil checks.
type JSONLogger struct {
	mu     *sync.Mutex
	w      io.WriteCloser
	bound  map[string]any
	debugs bool
}

func NewJSONLogger(path string, debug bool) (*JSONLogger, error) {
	if path == "" {
		return &JSONLogger{mu: &sync.Mutex{}, w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{mu: &sync.Mutex{}, w: f, debugs: debug}, nil
}

// With returns a logger that stamps fields onto every event. The writer
// and mutex are shared with the parent so lines stay atomic.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	bound := make(map[string]any, len(l.bound)+len(fields))
	for k, v := range l.bound {
		bound[k] = v
	}
	for k, v := range fields {
		bound[k] = v
	}
	return &JSONLogger{mu: l.mu, w: l.w, bound: bound, debugs: l.debugs}
}

func (l *JSONLogger) Debug(msg string, fields map[string]any) {
	if l == nil || !l.debugs {
		return
	}
	l.log("debug", msg, fields)
}

func (l *JSONLogger) Info(msg string, fields map[string]any) {
	l.log("info", msg, fields)
}

func (l *JSONLogger) Error(msg string, fields map[string]any) {
	l.log("error", msg, fields)
}

func (l *JSONLogger) log(level, msg string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range l.bound {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
