package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec, "Token has been revoked")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, float64(401), body["status"])
	assert.Equal(t, "Token has been revoked", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec, "")
	assert.Equal(t, "Unauthorized", decode(t, rec)["message"])
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email field is required."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, map[string]any{"email": "The email field is required."}, body["errors"])
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Message(rec, http.StatusOK, "Order Deleted")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"message": "Order Deleted"}, decode(t, rec))
}
