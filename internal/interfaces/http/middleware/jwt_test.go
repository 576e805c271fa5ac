package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

// callerRouter echoes the resolved caller
func callerRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(Authenticate(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		caller := GetCaller(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": caller.UserID.String(),
			"role":    string(caller.Role),
			"claims":  GetJWTClaims(c) != nil,
		})
	})
	return router
}

func get(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(userID, identity.RoleShop)
	require.NoError(t, err)

	rec := get(callerRouter(JWTMiddlewareConfig{JWTService: svc}), "Bearer "+pair.AccessToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"`+userID.String()+`","role":"shop","claims":true}`, rec.Body.String())
}

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	rec := get(callerRouter(JWTMiddlewareConfig{JWTService: newTestJWTService()}), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"`+uuid.Nil.String()+`","role":"","claims":false}`, rec.Body.String())
}

func TestAuthenticate_Rejections(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)

	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "test-issuer",
	})
	old, err := expired.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"wrong scheme", "Basic abc", "Invalid token"},
		{"empty bearer", "Bearer ", "Invalid token"},
		{"garbage", "Bearer not-a-jwt", "Invalid token"},
		{"refresh token", "Bearer " + pair.RefreshToken, "Invalid token"},
		{"expired", "Bearer " + old.AccessToken, "Token has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(callerRouter(JWTMiddlewareConfig{JWTService: svc}), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"NOT_AUTHENTICATED"`)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	pair, err := svc.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	router := callerRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})
	assert.Equal(t, http.StatusOK, get(router, "Bearer "+pair.AccessToken).Code)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))
	rec := get(router, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has been revoked")
}

func TestAuthenticate_BlacklistFailureFailsOpen(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)

	rec := get(callerRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: failingBlacklist{}}), "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func guardedRouter(cfg JWTMiddlewareConfig, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(Authenticate(cfg), guard)
	router.GET("/whoami", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)
	router := guardedRouter(JWTMiddlewareConfig{JWTService: svc}, RequireAuth())

	rec := get(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_AUTHENTICATED"`)

	assert.Equal(t, http.StatusOK, get(router, "Bearer "+pair.AccessToken).Code)
}

func TestRequireShop(t *testing.T) {
	svc := newTestJWTService()
	router := guardedRouter(JWTMiddlewareConfig{JWTService: svc}, RequireShop())

	buyer, err := svc.GenerateTokenPair(uuid.New(), identity.RoleBuyer)
	require.NoError(t, err)
	shop, err := svc.GenerateTokenPair(uuid.New(), identity.RoleShop)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
		code   string
	}{
		{"anonymous", "", http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"buyer", "Bearer " + buyer.AccessToken, http.StatusForbidden, "FORBIDDEN"},
		{"shop", "Bearer " + shop.AccessToken, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.header)
			assert.Equal(t, tt.want, rec.Code)
			if tt.code != "" {
				assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
			}
		})
	}
}
