// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/validate"
)

// JSON decodes r.Body as JSON into dest and runs validation.
// The body size is capped upstream by middleware.BodyLimit; an oversized body
// surfaces here as a decode error.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, errors.New("invalid JSON: empty request body")
	}

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
