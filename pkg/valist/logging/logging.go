package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

const redactedPlaceholder = "[redacted]"

// Logger defines the subset of slog functionality used by valist. The
// interface is small so applications can provide their own implementation
// for testing or redaction policies.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by the provided slog.Logger. Passing nil binds to
// slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// NewZerolog adapts a zerolog.Logger to Logger. Arguments follow the slog
// convention: alternating keys and values, or slog.Attr values.
func NewZerolog(logger zerolog.Logger) Logger {
	return &zeroLogger{logger: logger}
}

type zeroLogger struct {
	logger zerolog.Logger
}

func (l *zeroLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.emit(l.logger.Debug(), msg, args)
}

func (l *zeroLogger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(l.logger.Info(), msg, args)
}

func (l *zeroLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(l.logger.Warn(), msg, args)
}

func (l *zeroLogger) Error(ctx context.Context, msg string, args ...any) {
	l.emit(l.logger.Error(), msg, args)
}

func (l *zeroLogger) With(args ...any) Logger {
	ctx := l.logger.With()
	for _, a := range attrs(args) {
		ctx = ctx.Interface(a.Key, a.Value.Any())
	}
	return &zeroLogger{logger: ctx.Logger()}
}

func (l *zeroLogger) emit(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	for _, a := range attrs(args) {
		ev = ev.Interface(a.Key, a.Value.Any())
	}
	ev.Msg(msg)
}

// attrs pairs slog-style arguments the same way slog.Logger does.
func attrs(args []any) []slog.Attr {
	var out []slog.Attr
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			out = append(out, x)
			args = args[1:]
		case string:
			if len(args) == 1 {
				out = append(out, slog.Any("!BADKEY", x))
				args = nil
				continue
			}
			out = append(out, slog.Any(x, args[1]))
			args = args[2:]
		default:
			out = append(out, slog.Any("!BADKEY", x))
			args = args[1:]
		}
	}
	return out
}

// Redacted marks attributes that must not be logged verbatim.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// Placeholder returns the canonical string that represents a redacted value.
func Placeholder() string {
	return redactedPlaceholder
}
