package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiling_Labels(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), identity.RoleShop)
	require.NoError(t, err)

	labels := map[string]string{}
	capture := func(c *gin.Context) {
		for _, key := range []string{
			telemetry.ProfilingLabelMethod,
			telemetry.ProfilingLabelRoute,
			telemetry.ProfilingLabelController,
			telemetry.ProfilingLabelCallerRole,
		} {
			if v, ok := pprof.Label(c.Request.Context(), key); ok {
				labels[key] = v
			}
		}
		c.Status(http.StatusOK)
	}

	router := gin.New()
	router.Use(Authenticate(JWTMiddlewareConfig{JWTService: svc}), Profiling(true))
	router.PUT("/api/v1/orders/:id/status", capture)
	router.GET("/health", capture)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+uuid.NewString()+"/status", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, map[string]string{
		telemetry.ProfilingLabelMethod:     http.MethodPut,
		telemetry.ProfilingLabelRoute:      "/api/v1/orders/:id/status",
		telemetry.ProfilingLabelController: "orders",
		telemetry.ProfilingLabelCallerRole: string(identity.RoleShop),
	}, labels)

	labels = map[string]string{}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, labels, "health checks are not labelled")
}

func TestProfiling_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(false))
	router.GET("/api/v1/shops", func(c *gin.Context) {
		_, ok := pprof.Label(c.Request.Context(), telemetry.ProfilingLabelRoute)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shops", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestControllerFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/orders/:id/status": "orders",
		"/api/v2/basket":            "basket",
		"/api/v1/user/contacts/:id": "user",
		"":                          "",
	}
	for route, want := range tests {
		assert.Equal(t, want, controllerFromRoute(route), route)
	}
}
