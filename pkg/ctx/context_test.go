package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	appctx "github.com/shashiranjanraj/pizza-delivery-api/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/order/{id}", appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.ParamUint("id")
		if !ok {
			c.NotFound()
			return
		}
		c.JSON(http.StatusOK, map[string]uint{"id": id})
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/order/42", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())

	for _, bad := range []string{"0", "-1", "abc"} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/order/"+bad, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, bad)
	}
}

func TestIdentityFromClaims(t *testing.T) {
	claims := &auth.Claims{Type: auth.AccessToken}
	claims.Subject = "john"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithClaims(req.Context(), claims))

	appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "john", c.Identity())
	})(httptest.NewRecorder(), req)

	appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "", c.Identity())
	})(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"username":"john","email":"john@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Username string `json:"username" validate:"required"`
			Email    string `json:"email"    validate:"required,email"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		assert.Equal(t, "john", input.Username)
		c.Message(http.StatusOK, "ok")
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBindJSONInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Username string `json:"username" validate:"required"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "The username field is required.")
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct{}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Order not found")
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Order not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.InternalError(errors.New("db is down"))
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db is down")
}
