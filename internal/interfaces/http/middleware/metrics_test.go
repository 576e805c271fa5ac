package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func metricsRouter(provider *telemetry.MeterProvider) *gin.Engine {
	router := gin.New()
	router.Use(HTTPMetrics(provider, nil))
	router.POST("/basket/:id", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return router
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	router := metricsRouter(telemetry.NewMeterProviderWithReader(reader, nil))

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/basket/"+id, strings.NewReader(`{"items":[]}`))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	byName := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m.Data
		}
	}

	total, ok := byName["http_server_request_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		role, _ := dp.Attributes.Value(attribute.Key("caller.role"))
		assert.Equal(t, "anonymous", role.AsString())
		counts[route.AsString()] += dp.Value
	}
	assert.Equal(t, int64(2), counts["/basket/:id"], "paths are grouped by route pattern")
	assert.Equal(t, int64(1), counts["unmatched"])

	duration, ok := byName["http_server_request_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.NotEmpty(t, duration.DataPoints)

	_, ok = byName["http_server_request_size_bytes"].(metricdata.Histogram[float64])
	assert.True(t, ok)
	_, ok = byName["http_server_response_size_bytes"].(metricdata.Histogram[float64])
	assert.True(t, ok)

	active, ok := byName["http_server_active_requests"].(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Equal(t, int64(0), dp.Value)
	}
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	var provider *telemetry.MeterProvider
	rec := httptest.NewRecorder()
	metricsRouter(provider).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/basket/x", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
