// Package log provides the diagnostic logger shared by every command.
//
// Logs go to stderr through a zerolog console writer. Output meant for the
// user (plans, prompts, results) is printed by internal/ui instead.
package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // zerolog level name, defaults to "warn"
	Output  io.Writer // defaults to os.Stderr
	RunID   string    // generated when empty
	NoColor bool
}

const DefaultLevel = "warn"

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the global logger. Unknown levels fall back to warn.
func Configure(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	runID := cfg.RunID
	if runID == "" {
		runID = NewRunID()
	}

	console := zerolog.ConsoleWriter{
		Out:        writer,
		TimeFormat: time.TimeOnly,
		NoColor:    cfg.NoColor,
	}

	l := zerolog.New(console).Level(level).With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()

	return l
}

// ValidLevel reports whether name is a level zerolog understands
func ValidLevel(name string) bool {
	_, err := zerolog.ParseLevel(name)
	return err == nil
}

// NewRunID returns a fresh identifier for one invocation
func NewRunID() string {
	return uuid.NewString()
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

// ContextWith stores logger in ctx.
func ContextWith(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the base logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Base()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		b := Base()
		return &b
	}
	return l
}

// WithComponentFromContext annotates the context logger with a component name.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := FromContext(ctx)
	return l.With().Str("component", component).Logger()
}
