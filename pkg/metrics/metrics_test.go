package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/orders/order/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/orders/order/{id}", "404"))

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/order/"+id, nil))
	}

	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/orders/order/{id}", "404"))
	assert.Equal(t, before+3, after)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.RequestInFlight))
}

func TestDomainCounters(t *testing.T) {
	login := metrics.AuthEvents.WithLabelValues("login", "failure")
	before := testutil.ToFloat64(login)
	metrics.AuthEvent("login", "failure")
	assert.Equal(t, before+1, testutil.ToFloat64(login))

	revoked := metrics.TokensRevoked.WithLabelValues("refresh")
	before = testutil.ToFloat64(revoked)
	metrics.TokenRevoked("refresh")
	assert.Equal(t, before+1, testutil.ToFloat64(revoked))

	created := metrics.Orders.WithLabelValues("created")
	before = testutil.ToFloat64(created)
	metrics.OrderEvent("created")
	assert.Equal(t, before+1, testutil.ToFloat64(created))

	metrics.ObserveDBQuery("select", time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.DBQueryDuration, "pizza_db_query_duration_seconds"),
		"one select series")
}

func TestHandlerServesRegistry(t *testing.T) {
	metrics.OrderEvent("deleted")

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pizza_orders_total{event="deleted"}`)
}
