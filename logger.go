package snap

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records.  Enabled returns false, so that
// callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by the harness.  By default nothing is
// logged.  Passing nil restores the default.
//
// Log levels used:
//   - [slog.LevelDebug]: one record per rendered frame
//   - [slog.LevelInfo]: run summaries
//   - [slog.LevelWarn]: debug output which could not be written
//   - [slog.LevelError]: pixel mismatches
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger used by the harness.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
