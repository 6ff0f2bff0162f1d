package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	s *slog.Logger
}

// NewSlogLogger wraps handler with ErrFmtHandler so that error attributes carry
// their cockroachdb/errors stack trace.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	return &SlogLogger{s: slog.New(WrapByErrFmtHandler(handler))}
}

// Debug implements Logger.Debug.
func (l *SlogLogger) Debug(msg string, fields ...any) { l.s.Debug(msg, fields...) }

// Info implements Logger.Info.
func (l *SlogLogger) Info(msg string, fields ...any) { l.s.Info(msg, fields...) }

// Warn implements Logger.Warn.
func (l *SlogLogger) Warn(msg string, fields ...any) { l.s.Warn(msg, fields...) }

// Error implements Logger.Error.
func (l *SlogLogger) Error(msg string, fields ...any) {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	l.s.Error(msg, fields...)
}

// With implements Logger.With.
func (l *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{s: l.s.With(fields...)}
}

// Enabled implements Logger.Enabled.
func (l *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.s.Enabled(ctx, slog.Level(level))
}

// ErrFmtHandler is a slog handler that adds the stack trace of an error
// attribute as a separate attribute.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps the standard slog handler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				stacktrace = extractStacktrace(err)
			}
			return false
		}
		return true
	})
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
