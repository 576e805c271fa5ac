package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swaggerRouter(cfg config.SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.Use(Authenticate(JWTMiddlewareConfig{JWTService: newTestJWTService()}))
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func swaggerGet(router http.Handler, remoteAddr, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSwaggerProtection(t *testing.T) {
	pair, err := newTestJWTService().GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cfg    config.SwaggerConfig
		remote string
		token  string
		want   int
	}{
		{"disabled", config.SwaggerConfig{}, "10.0.0.1:1234", "", http.StatusNotFound},
		{"open", config.SwaggerConfig{Enabled: true}, "10.0.0.1:1234", "", http.StatusOK},
		{"ip allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, "10.0.0.1:1234", "", http.StatusOK},
		{"cidr allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.2.3.4:1234", "", http.StatusOK},
		{"ip refused", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, "10.0.0.1:1234", "", http.StatusForbidden},
		{"auth missing", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "10.0.0.1:1234", "", http.StatusUnauthorized},
		{"auth present", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "10.0.0.1:1234", pair.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := swaggerGet(swaggerRouter(tt.cfg), tt.remote, tt.token)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
