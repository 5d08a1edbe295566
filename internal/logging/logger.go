// Package logging provides a ctxd.Logger that writes plain text lines.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/bool64/ctxd"
)

// Logger writes "level: msg key=value ..." lines. Debug lines are dropped
// unless debug is enabled.
type Logger struct {
	std   *log.Logger
	debug bool
}

var _ ctxd.Logger = (*Logger)(nil)

// New creates a Logger writing to w.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{
		std:   log.New(w, "", 0),
		debug: debug,
	}
}

// Debug implements ctxd.Logger.
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.print("debug", msg, keysAndValues)
}

// Info implements ctxd.Logger.
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.print("info", msg, keysAndValues)
}

// Important implements ctxd.Logger.
func (l *Logger) Important(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.print("important", msg, keysAndValues)
}

// Warn implements ctxd.Logger.
func (l *Logger) Warn(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.print("warn", msg, keysAndValues)
}

// Error implements ctxd.Logger. Errors are only shown in debug mode;
// the CLI reports failures itself.
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.print("error", msg, keysAndValues)
}

func (l *Logger) print(level, msg string, keysAndValues []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(": ")
	b.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(keysAndValues) {
			fmt.Fprintf(&b, "%v", keysAndValues[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", keysAndValues[i], quote(keysAndValues[i+1]))
	}

	l.std.Print(b.String())
}

// quote wraps values containing spaces in quotes.
func quote(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
