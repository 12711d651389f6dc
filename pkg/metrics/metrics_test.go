package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderCounters(t *testing.T) {
	before := testutil.ToFloat64(OrdersCreated)
	OrdersCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersCreated))

	OrderStatusChanges.WithLabelValues("served").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(OrderStatusChanges.WithLabelValues("served")), 1.0)
}

func TestHandlerExposesNamespace(t *testing.T) {
	OrdersCreated.Inc()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pubqr_orders_created_total")
}
