// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helper methods for everything:
//
//	func (oc *OrderController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    ...
//	    c.JSON(http.StatusOK, order)
//	}
//
//	// Register with ctx.Wrap:
//	router.Get("/orders/order/{id}", "orders.show", ctx.Wrap(oc.Show))
package ctx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/bind"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/response"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair and provides a rich helper API.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/orders/order/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter. ok is false for anything that
// is not a positive integer.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Method returns the HTTP method of the request.
func (c *Context) Method() string { return c.R.Method }

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Claims returns the token claims stored by middleware.Authenticate.
func (c *Context) Claims() (*auth.Claims, bool) {
	return auth.ClaimsFromCtx(c.R.Context())
}

// Identity returns the authenticated username, or "" on unauthenticated routes.
func (c *Context) Identity() string {
	if claims, ok := c.Claims(); ok {
		return claims.Identity()
	}
	return ""
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it automatically sends a 422 response and returns false.
// On JSON decode error it sends a 400 and returns false.
// Returns true only when dest is valid and ready to use.
//
//	var input SignupInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Message sends {"message": msg} with the given status.
func (c *Context) Message(code int, msg string) {
	response.Message(c.W, code, msg)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	response.ValidationError(c.W, errs)
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized(message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusUnauthorized, msg)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

// InternalError logs err against the request and sends an opaque 500.
func (c *Context) InternalError(err error) {
	c.Log().Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	response.InternalError(c.W)
}

