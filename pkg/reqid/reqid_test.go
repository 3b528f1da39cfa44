package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/reqid"
)

func serve(header string) (seen string, rec *httptest.ResponseRecorder) {
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddlewareGeneratesID(t *testing.T) {
	seen, rec := serve("")

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddlewareReusesUpstreamID(t *testing.T) {
	seen, rec := serve("gateway-42")

	assert.Equal(t, "gateway-42", seen)
	assert.Equal(t, "gateway-42", rec.Header().Get(reqid.Header))
}

func TestMiddlewareReplacesUnacceptableID(t *testing.T) {
	seen, _ := serve(strings.Repeat("x", 500))
	assert.Len(t, seen, 36)

	seen, _ = serve("has space")
	assert.NotEqual(t, "has space", seen)
}
