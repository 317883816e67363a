package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config collects the logger options before the handler is built.
type Config struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer
	Attrs  []slog.Attr
}

// Option configures a logger built by New.
type Option func(*Config)

// New creates a slog.Logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &Config{
		Level:  slog.LevelInfo,
		Output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(cfg.Output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.Output, handlerOpts)
	}
	if len(cfg.Attrs) > 0 {
		h = h.WithAttrs(cfg.Attrs)
	}

	return slog.New(h)
}

// WithDevelopment configures text output at debug level tagged with the service name.
func WithDevelopment(service string) Option {
	return func(c *Config) {
		c.Level = slog.LevelDebug
		c.JSON = false
		c.Attrs = append(c.Attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction configures JSON output at info level tagged with the service name.
func WithProduction(service string) Option {
	return func(c *Config) {
		c.Level = slog.LevelInfo
		c.JSON = true
		c.Attrs = append(c.Attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithJSONFormatter switches the handler to JSON.
func WithJSONFormatter() Option {
	return func(c *Config) {
		c.JSON = true
	}
}

// WithTextFormatter switches the handler to logfmt-style text.
func WithTextFormatter() Option {
	return func(c *Config) {
		c.JSON = false
	}
}

// WithOutput sets the destination writer. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		if w != nil {
			c.Output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *Config) {
		c.Attrs = append(c.Attrs, attrs...)
	}
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
