// Package reqid provides request ID generation and context propagation.
//
// Every HTTP request gets an ID that is stored in the request context,
// echoed in the X-Request-ID response header and attached to every log line
// written through logger.WithCtx(ctx).
//
//	r.Use(reqid.Middleware())
//
//	id := reqid.FromCtx(r.Context())
package reqid

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ctxKey is the unexported key used to store the request ID in context.
type ctxKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// maxLen bounds client-supplied IDs so they cannot bloat log lines.
const maxLen = 128

// New generates a random request ID.
func New() string {
	return uuid.NewString()
}

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx.
// Returns an empty string if none is present.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware injects a request ID into every request context and response
// header. An upstream X-Request-ID (gateway, proxy) is reused when it is
// printable and not oversized; otherwise a new one is generated.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(Header))
			if !acceptable(id) {
				id = New()
			}

			w.Header().Set(Header, id)

			ctx := WithValue(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func acceptable(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
