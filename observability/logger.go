package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"
)

// Logger is the slingshot logger interface.
// Wraps mtlog so library code logs message templates without knowing the sink.
type Logger interface {
	// Verbose logs detailed diagnostic information
	Verbose(messageTemplate string, args ...any)
	VerboseContext(ctx context.Context, messageTemplate string, args ...any)

	// Debug logs tolerated inconsistencies such as dropped dependency edges
	Debug(messageTemplate string, args ...any)
	DebugContext(ctx context.Context, messageTemplate string, args ...any)

	Info(messageTemplate string, args ...any)
	InfoContext(ctx context.Context, messageTemplate string, args ...any)

	Warn(messageTemplate string, args ...any)
	WarnContext(ctx context.Context, messageTemplate string, args ...any)

	Error(messageTemplate string, args ...any)
	ErrorContext(ctx context.Context, messageTemplate string, args ...any)

	// ForContext creates a child logger with an additional property
	ForContext(key string, value any) Logger
}

// mtlogAdapter wraps an mtlog logger to implement Logger
type mtlogAdapter struct {
	logger core.Logger
}

// NewLogger creates a logger writing rendered events to output at or above level.
func NewLogger(output io.Writer, level LogLevel) Logger {
	opts := []mtlog.Option{
		mtlog.WithSink(sinks.NewConsoleSinkWithWriter(output)),
		mtlog.WithTimestamp(),
	}

	switch level {
	case VerboseLevel:
		opts = append(opts, mtlog.Verbose())
	case DebugLevel:
		opts = append(opts, mtlog.Debug())
	case InfoLevel:
		opts = append(opts, mtlog.Information())
	case WarnLevel:
		opts = append(opts, mtlog.Warning())
	case ErrorLevel:
		opts = append(opts, mtlog.Error())
	}

	return &mtlogAdapter{
		logger: mtlog.New(opts...).ForContext("Application", "slingshot"),
	}
}

// NewDefaultLogger creates a logger on stderr at Warn level, leaving stdout to generated output.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, WarnLevel)
}

func (a *mtlogAdapter) Verbose(messageTemplate string, args ...any) {
	a.logger.Verbose(messageTemplate, args...)
}

func (a *mtlogAdapter) VerboseContext(ctx context.Context, messageTemplate string, args ...any) {
	a.logger.VerboseContext(ctx, messageTemplate, args...)
}

func (a *mtlogAdapter) Debug(messageTemplate string, args ...any) {
	a.logger.Debug(messageTemplate, args...)
}

func (a *mtlogAdapter) DebugContext(ctx context.Context, messageTemplate string, args ...any) {
	a.logger.DebugContext(ctx, messageTemplate, args...)
}

func (a *mtlogAdapter) Info(messageTemplate string, args ...any) {
	a.logger.Info(messageTemplate, args...)
}

func (a *mtlogAdapter) InfoContext(ctx context.Context, messageTemplate string, args ...any) {
	a.logger.InfoContext(ctx, messageTemplate, args...)
}

func (a *mtlogAdapter) Warn(messageTemplate string, args ...any) {
	a.logger.Warn(messageTemplate, args...)
}

func (a *mtlogAdapter) WarnContext(ctx context.Context, messageTemplate string, args ...any) {
	a.logger.WarnContext(ctx, messageTemplate, args...)
}

func (a *mtlogAdapter) Error(messageTemplate string, args ...any) {
	a.logger.Error(messageTemplate, args...)
}

func (a *mtlogAdapter) ErrorContext(ctx context.Context, messageTemplate string, args ...any) {
	a.logger.ErrorContext(ctx, messageTemplate, args...)
}

// ForContext implements Logger.ForContext
func (a *mtlogAdapter) ForContext(key string, value any) Logger {
	return &mtlogAdapter{
		logger: a.logger.ForContext(key, value),
	}
}

// LogLevel represents log verbosity level
type LogLevel int

const (
	// VerboseLevel is the most detailed logging level.
	VerboseLevel LogLevel = iota
	// DebugLevel is for debug messages.
	DebugLevel
	// InfoLevel is for informational messages.
	InfoLevel
	// WarnLevel is for warning messages.
	WarnLevel
	// ErrorLevel is for error messages.
	ErrorLevel
)

// ParseLogLevel maps a level name (verbose, debug, info, warn, error) to a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "verbose", "trace":
		return VerboseLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "information", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// nullLogger discards all output
type nullLogger struct{}

// NewNullLogger creates a logger that discards all output
func NewNullLogger() Logger {
	return &nullLogger{}
}

func (n *nullLogger) Verbose(messageTemplate string, args ...any)                             {}
func (n *nullLogger) VerboseContext(ctx context.Context, messageTemplate string, args ...any) {}
func (n *nullLogger) Debug(messageTemplate string, args ...any)                               {}
func (n *nullLogger) DebugContext(ctx context.Context, messageTemplate string, args ...any)   {}
func (n *nullLogger) Info(messageTemplate string, args ...any)                                {}
func (n *nullLogger) InfoContext(ctx context.Context, messageTemplate string, args ...any)    {}
func (n *nullLogger) Warn(messageTemplate string, args ...any)                                {}
func (n *nullLogger) WarnContext(ctx context.Context, messageTemplate string, args ...any)    {}
func (n *nullLogger) Error(messageTemplate string, args ...any)                               {}
func (n *nullLogger) ErrorContext(ctx context.Context, messageTemplate string, args ...any)   {}
func (n *nullLogger) ForContext(key string, value any) Logger                                 { return n }
