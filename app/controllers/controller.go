// Package controllers adapts HTTP requests to app/services calls.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/ctx"
)

// fail maps a service error onto the response.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConflict):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAuthenticationFailed):
		c.Unauthorized("Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrNotOwner):
		// Kept at 200 for existing clients.
		c.Message(http.StatusOK, "Unauthorized Access")
	default:
		c.InternalError(err)
	}
}
