package log

import (
	"log/slog"
	"os"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// SetupLogger configures the slog default logger and the global provider from
// a level name ("debug", "info", "warn", "error"). It is used by the CLI.
func SetupLogger(loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	lv := new(slog.LevelVar)
	lv.Set(slog.Level(level))
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: level <= LevelDebug,
		Level:     lv,
	})
	logger := NewSlogLogger(handler)
	slog.SetDefault(logger.s)
	SetLoggerProvider(&slogProvider{handler: handler, level: lv})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

type slogProvider struct {
	handler slog.Handler
	level   *slog.LevelVar
}

func (p *slogProvider) GetLogger() Logger {
	return NewSlogLogger(p.handler)
}

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

func (p *slogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}
