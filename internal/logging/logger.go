// Package logging holds the module's logger helpers: module-scoped loggers,
// field attachment and fields carried on a context.
package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// WithFields returns logger with fields attached. Loggers that do not
// implement interfaces.FieldsLogger are returned as they are.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// NoOp discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any)                            {}
func (noopLogger) Debug(string, ...any)                            {}
func (noopLogger) Info(string, ...any)                             {}
func (noopLogger) Warn(string, ...any)                             {}
func (noopLogger) Error(string, ...any)                            {}
func (noopLogger) Fatal(string, ...any)                            {}
func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
