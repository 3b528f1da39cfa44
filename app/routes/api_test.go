package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/app/controllers"
	"github.com/shashiranjanraj/pizza-delivery-api/app/routes"
	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/router"
)

// denyGuard records which token type each guarded route asked for and
// rejects every request.
func denyGuard(seen map[auth.TokenType]int) routes.Guard {
	return func(expected auth.TokenType) router.Middleware {
		seen[expected]++
		return func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
		}
	}
}

func register(seen map[auth.TokenType]int) *router.Router {
	r := router.New()
	routes.RegisterAPI(r,
		controllers.NewAuthController(services.NewAuthService(nil, nil, nil)),
		controllers.NewOrderController(services.NewOrderService(nil, nil)),
		denyGuard(seen),
	)
	return r
}

func TestRegisterAPIRouteTable(t *testing.T) {
	seen := map[auth.TokenType]int{}
	r := register(seen)

	names := map[string]router.Route{}
	for _, rt := range r.Routes() {
		names[rt.Name] = rt
	}
	require.Len(t, names, 12)

	assert.Equal(t, router.Route{Method: "POST", Path: "/auth/signup", Name: "auth.signup"}, names["auth.signup"])
	assert.Equal(t, "/orders/order/{id:[0-9]+}", names["orders.destroy"].Path)
	assert.Equal(t, "PATCH", names["orders.status"].Method)
	assert.Equal(t, "/orders/user/{uid:[0-9]+}/order/{oid:[0-9]+}", names["orders.user.show"].Path)

	assert.Equal(t, 1, seen[auth.RefreshToken], "refresh endpoint")
	assert.Equal(t, 1, seen[""], "logout accepts either token")
	assert.Equal(t, 1, seen[auth.AccessToken], "orders group")
}

func TestOrderRoutesAreGuarded(t *testing.T) {
	h := register(map[auth.TokenType]int{}).Handler()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/orders/orders"},
		{http.MethodPost, "/orders/orders"},
		{http.MethodGet, "/orders/order/1"},
		{http.MethodPut, "/orders/order/1"},
		{http.MethodDelete, "/orders/order/1"},
		{http.MethodPatch, "/orders/order/status/1"},
		{http.MethodGet, "/orders/user/1/orders"},
		{http.MethodGet, "/orders/user/1/order/2"},
		{http.MethodPost, "/auth/refresh"},
		{http.MethodPost, "/auth/logout"},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestNonNumericIDDoesNotMatch(t *testing.T) {
	h := register(map[auth.TokenType]int{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/order/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
