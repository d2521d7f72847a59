package logger

import (
	"fmt"
	"sync"
	"testing"
)

// TestLogger forwards to t.Logf and keeps every message so tests can assert on them
type TestLogger struct {
	T *testing.T

	mu       *sync.Mutex
	messages *[]string
	fields   string
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{T: t, mu: &sync.Mutex{}, messages: &[]string{}}
}

// NewMockLogger can be called with or without a testing.T
func NewMockLogger(t ...*testing.T) Logger {
	if len(t) > 0 {
		return NewTestLogger(t[0])
	}
	return NewTestLogger(nil)
}

func (l *TestLogger) record(level, msg string) {
	line := fmt.Sprintf("[%s] %s%s", level, msg, l.fields)
	l.mu.Lock()
	*l.messages = append(*l.messages, line)
	l.mu.Unlock()
	if l.T != nil {
		l.T.Log(line)
	}
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.record("FATAL", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &TestLogger{T: l.T, mu: l.mu, messages: l.messages, fields: fmt.Sprintf("%s %s=%v", l.fields, key, value)}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	var out Logger = l
	for k, v := range fields {
		out = out.WithField(k, v)
	}
	return out
}

// Messages returns everything logged through this logger and its children
func (l *TestLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.messages...)
}
