// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger that
// the request middleware tagged with the request ID, so every log line from
// a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the process-wide base logger. It starts as a debug text logger so
// packages can log before Setup runs (tests, CLI commands).
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Setup builds the base logger for env, fans out to any extra handlers
// (for example a MongoHandler) and installs it as L and the slog default.
func Setup(env string, extra ...slog.Handler) *slog.Logger {
	L = New(env, os.Stdout, extra...)
	slog.SetDefault(L)
	return L
}

// New returns a logger writing to w: JSON at INFO for production, text at
// DEBUG everywhere else.
func New(env string, w io.Writer, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler

	switch strings.ToLower(env) {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}) // structured JSON for log aggregators
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}) // human-readable for dev
	}

	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}

	return slog.New(handler)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request logger stored by InjectLogger, or L when the
// context carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
