package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled reports false so callers skip
// formatting entirely
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that drops all output
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(NopLogger())
}

// SetLogger sets the process-wide diagnostics logger. Safe for concurrent use
// Passing nil restores the silent default
//
// Levels:
//   - Debug: per-action queue traffic, per-step host details
//   - Info: resolution successes, world load/unload, service lifecycle
//   - Warn: permanent resolution failures, queue teardown with dropped actions
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the process-wide diagnostics logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
