package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// RecordingLogger is a ctxd.Logger that keeps every entry as "level: msg".
type RecordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *RecordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s: %s", level, msg))
}

// Entries returns the recorded entries in order.
func (l *RecordingLogger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

// Has reports whether an entry with the given level contains msg.
func (l *RecordingLogger) Has(level, msg string) bool {
	for _, e := range l.Entries() {
		if strings.HasPrefix(e, level+": ") && strings.Contains(e, msg) {
			return true
		}
	}
	return false
}

func (l *RecordingLogger) Debug(_ context.Context, msg string, _ ...interface{})     { l.record("debug", msg) }
func (l *RecordingLogger) Info(_ context.Context, msg string, _ ...interface{})      { l.record("info", msg) }
func (l *RecordingLogger) Important(_ context.Context, msg string, _ ...interface{}) { l.record("important", msg) }
func (l *RecordingLogger) Warn(_ context.Context, msg string, _ ...interface{})      { l.record("warn", msg) }
func (l *RecordingLogger) Error(_ context.Context, msg string, _ ...interface{})     { l.record("error", msg) }
