package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/logger"
	"github.com/shopfeed/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	CallerKey     = "caller"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// Authenticate resolves the bearer token into an identity.Caller. Requests
// without an Authorization header go on as anonymous; services decide
// whether that is enough. A header that is present but malformed, expired
// or revoked is rejected with 401.
func Authenticate(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.Set(CallerKey, identity.Anonymous())
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		ctx := c.Request.Context()
		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsRevoked(ctx, claims.ID)
			if err != nil {
				// fail open, the request proceeds unchecked
				logger.For(ctx, cfg.Logger).Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				handleAuthError(c, cfg, auth.ErrTokenRevoked, "Token has been revoked")
				return
			}
		}

		caller, err := claims.Caller()
		if err != nil {
			handleAuthError(c, cfg, err, "Token claims are invalid")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(CallerKey, caller)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, claims.UserID))

		c.Next()
	}
}

// RequireAuth rejects anonymous callers with 401 before the handler reads
// the request. It must run after Authenticate.
func RequireAuth() gin.HandlerFunc {
	return requireCaller(identity.Caller.RequireAuthenticated)
}

// RequireShop rejects anonymous callers with 401 and non-shop callers with 403
func RequireShop() gin.HandlerFunc {
	return requireCaller(identity.Caller.RequireShop)
}

func requireCaller(check func(identity.Caller) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := check(GetCaller(c)); err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) {
				domainErr = shared.ErrNotAuthenticated
			}
			c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code),
				dto.NewErrorResponse(domainErr.Code, domainErr.Message))
			return
		}
		c.Next()
	}
}

// handleAuthError aborts with 401 in the regular error payload
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	logger.For(c.Request.Context(), cfg.Logger).Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	errorMessage := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		errorMessage = "Token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		errorMessage = "Invalid token type"
	case errors.Is(err, auth.ErrTokenRevoked):
		errorMessage = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(shared.CodeNotAuthenticated, errorMessage))
}

// GetCaller returns the caller resolved by Authenticate, anonymous if none
func GetCaller(c *gin.Context) identity.Caller {
	if v, exists := c.Get(CallerKey); exists {
		if caller, ok := v.(identity.Caller); ok {
			return caller
		}
	}
	return identity.Anonymous()
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
