// Package gclog provides the collector's structured logging surface.
//
// Logging is discarded by default so embedding the collector in a host
// application costs nothing until the host opts in with Init.
package gclog

import (
	"io"
	"log/slog"
	"os"
)

// L is the package-level logger. It discards all output until Init is called.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures logger initialization. The collector emits a small,
// bursty stream of phase-transition and barrier-misuse records rather than
// a standalone application log, so Options hands Init a io.Writer directly
// instead of owning a log directory and file-rotation policy of its own;
// hosts that want rotation point Writer at whatever sink already handles
// that for the rest of their logging.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination for log records. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON records instead of text, for hosts that parse gc logs
}

// Init configures logging for the process. Call before constructing a
// Collector if log output is wanted; the zero value of Options keeps
// logging disabled.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	L = slog.New(handler)
}

// WithCycle returns a logger that tags every record with the collector's
// completed-cycle count, so a long-running host process can tell which
// Pause->Pause cycle a given phase-transition or barrier-misuse record
// belongs to without threading a cycle number through every call site.
func WithCycle(n int) *slog.Logger {
	return L.With("cycle", n)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
