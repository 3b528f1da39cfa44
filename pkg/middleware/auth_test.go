package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/middleware"
)

type memBlocklist struct {
	revoked map[string]bool
	err     error
}

func (m *memBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

func identityHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromCtx(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(claims.Identity())) //nolint:errcheck
}

func serve(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/orders/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute, time.Hour)
	h := middleware.Authenticate(tokens, &memBlocklist{}, auth.AccessToken)(http.HandlerFunc(identityHandler))

	access, err := tokens.IssueAccess("john")
	require.NoError(t, err)

	rec := serve(t, h, access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "john", rec.Body.String())
}

func TestAuthenticateRejections(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute, time.Hour)

	access, err := tokens.IssueAccess("john")
	require.NoError(t, err)
	refresh, err := tokens.IssueRefresh("john")
	require.NoError(t, err)
	expired, err := tokens.WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).IssueAccess("john")
	require.NoError(t, err)
	foreign, err := auth.NewTokenService("other", time.Minute, time.Hour).IssueAccess("john")
	require.NoError(t, err)

	revokedClaims, err := tokens.Validate(access, auth.AccessToken)
	require.NoError(t, err)
	blocklist := &memBlocklist{revoked: map[string]bool{revokedClaims.JTI(): true}}

	freshAccess, err := tokens.IssueAccess("john")
	require.NoError(t, err)

	h := middleware.Authenticate(tokens, blocklist, auth.AccessToken)(http.HandlerFunc(identityHandler))

	cases := map[string]string{
		"missing":    "",
		"garbage":    "not-a-jwt",
		"foreign":    foreign,
		"expired":    expired,
		"wrong type": refresh,
		"revoked":    access,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, h, token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":401`)
		})
	}

	assert.Equal(t, http.StatusOK, serve(t, h, freshAccess).Code, "a different jti is unaffected")
}

func TestAuthenticateMissingHeaderMessage(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute, time.Hour)
	h := middleware.Authenticate(tokens, &memBlocklist{}, "")(http.HandlerFunc(identityHandler))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing Authorization Header")
}

func TestAuthenticateAnyTypeAcceptsRefresh(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute, time.Hour)
	h := middleware.Authenticate(tokens, &memBlocklist{}, "")(http.HandlerFunc(identityHandler))

	refresh, err := tokens.IssueRefresh("john")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(t, h, refresh).Code)
}

func TestAuthenticateBlocklistFailure(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute, time.Hour)
	h := middleware.Authenticate(tokens, &memBlocklist{err: errors.New("redis down")}, auth.AccessToken)(http.HandlerFunc(identityHandler))

	access, err := tokens.IssueAccess("john")
	require.NoError(t, err)

	rec := serve(t, h, access)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis down")
}
