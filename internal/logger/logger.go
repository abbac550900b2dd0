package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Logger is the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)

	With(attrs ...any) Logger

	// Write writes a message to the logger in free form.
	Write(string)
}

var _ Logger = (*appLogger)(nil)

type appLogger struct {
	logger         *slog.Logger
	guardedHandler *guardedHandler
	quiet          bool
}

// Config holds the options applied when constructing a logger.
type Config struct {
	debug  bool
	format string
	writer io.Writer
	quiet  bool
}

// Option configures the logger.
type Option func(*Config)

// WithDebug sets the level of the logger to debug.
func WithDebug() Option {
	return func(o *Config) {
		o.debug = true
	}
}

// WithFormat sets the format of the logger (text or json).
func WithFormat(format string) Option {
	return func(o *Config) {
		o.format = format
	}
}

// WithWriter adds a secondary writer that receives every log record,
// typically the per-run log file.
func WithWriter(w io.Writer) Option {
	return func(o *Config) {
		o.writer = w
	}
}

// WithQuiet suppresses output to stderr.
func WithQuiet() Option {
	return func(o *Config) {
		o.quiet = true
	}
}

var defaultLogger = NewLogger(WithFormat("text"))

// NewLogger builds a Logger that fans records out to stderr and, when
// configured, a guarded secondary writer.
func NewLogger(opts ...Option) Logger {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var (
		handlers []slog.Handler
		guarded  *guardedHandler
	)

	if !cfg.quiet {
		handlers = append(handlers, newHandler(os.Stderr, cfg.format, handlerOpts))
	}

	if cfg.writer != nil {
		handler := newHandler(cfg.writer, cfg.format, handlerOpts)
		guarded = newGuardedHandler(handler, cfg.writer)
		handlers = append(handlers, guarded)
	}

	return &appLogger{
		logger:         slog.New(slogmulti.Fanout(handlers...)),
		guardedHandler: guarded,
		quiet:          cfg.quiet,
	}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func (a *appLogger) Debug(msg string, tags ...any) { a.logger.Debug(msg, tags...) }
func (a *appLogger) Info(msg string, tags ...any)  { a.logger.Info(msg, tags...) }
func (a *appLogger) Warn(msg string, tags ...any)  { a.logger.Warn(msg, tags...) }
func (a *appLogger) Error(msg string, tags ...any) { a.logger.Error(msg, tags...) }

// With implements logger.Logger.
func (a *appLogger) With(attrs ...any) Logger {
	return &appLogger{
		logger:         a.logger.With(attrs...),
		guardedHandler: a.guardedHandler,
		quiet:          a.quiet,
	}
}

func (a *appLogger) Write(msg string) {
	if !a.quiet {
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", msg)
	}
	if a.guardedHandler != nil {
		a.guardedHandler.mu.Lock()
		defer a.guardedHandler.mu.Unlock()
		_, _ = a.guardedHandler.writer.Write([]byte(msg + "\n"))
	}
}
