// Package logger provides the service's structured, levelled logger built on
// log/slog.
//
// Production builds log JSON for aggregators; every other environment logs
// human-readable text. Handlers obtain a request-scoped logger (already
// tagged with request_id by the access-log middleware) through WithCtx:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("user created", "user_id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the base logger. Setup replaces it; until then it is slog's default.
var L = slog.Default()

// Setup builds the base logger for env and installs it as slog's default.
// Extra handlers (for example a MongoHandler) receive every record as well.
func Setup(env string, extra ...slog.Handler) *slog.Logger {
	return setup(os.Stdout, env, extra...)
}

func setup(w io.Writer, env string, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the access-log middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
