package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	errBadCredentials = shared.NewDomainError(shared.CodeNotAuthenticated, "Unable to log in with provided credentials")
	errNotConfirmed   = shared.NewDomainError(shared.CodeForbidden, "Email address has not been confirmed")
	errBadToken       = shared.NewDomainError(shared.CodeNotAuthenticated, "Invalid or expired token")
)

// AuthService registers, confirms and authenticates users
type AuthService struct {
	users         identity.UserRepository
	confirmations identity.ConfirmationRepository
	tx            shared.Transactor
	jwt           *auth.JWTService
	blacklist     auth.TokenBlacklist
	events        shared.EventPublisher
	logger        *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	confirmations identity.ConfirmationRepository,
	tx shared.Transactor,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if events == nil {
		events = shared.NopEventPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:         users,
		confirmations: confirmations,
		tx:            tx,
		jwt:           jwt,
		blacklist:     blacklist,
		events:        events,
		logger:        logger,
	}
}

// Register creates an inactive account and announces it so that a
// confirmation email goes out
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*UserResponse, error) {
	role, err := identity.ParseRole(in.Type)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	user.SetName(in.FirstName, in.LastName)
	user.SetWorkplace(in.Company, in.Position)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("type", string(role)))

	s.publish(ctx, user.GetDomainEvents()...)
	user.ClearDomainEvents()
	return ToUserResponse(user), nil
}

// Confirm activates the account owning the pending token. The token is
// consumed, so a second confirmation with it is NotFound.
func (s *AuthService) Confirm(ctx context.Context, email, token string) error {
	if email == "" || token == "" {
		return shared.NewValidationError("token", "Email and token are required")
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		confirmation, err := s.confirmations.FindByEmailAndToken(ctx, email, token)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.CodeNotFound, "Invalid token or email")
			}
			return err
		}
		user, err := s.users.FindByID(ctx, confirmation.UserID)
		if err != nil {
			return err
		}
		user.Activate()
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		return s.confirmations.Delete(ctx, confirmation.ID)
	})
}

// Login checks credentials of an active user and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, errBadCredentials
	}
	if !user.Active {
		return nil, errNotConfirmed
	}
	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new pair. The used refresh
// token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errBadToken
	}
	if revoked, err := s.blacklist.IsRevoked(ctx, claims.ID); err != nil {
		return nil, err
	} else if revoked {
		return nil, errBadToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errBadToken
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errBadToken
		}
		return nil, err
	}
	if !user.Active {
		return nil, errNotConfirmed
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Logout revokes the access token described by claims
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return shared.ErrNotAuthenticated
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Profile returns the caller's account
func (s *AuthService) Profile(ctx context.Context, caller identity.Caller) (*UserResponse, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile changes the caller's account fields
func (s *AuthService) UpdateProfile(ctx context.Context, caller identity.Caller, in ProfileInput) (*UserResponse, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil || in.LastName != nil {
		user.SetName(valueOr(in.FirstName, user.FirstName), valueOr(in.LastName, user.LastName))
	}
	if in.Company != nil || in.Position != nil {
		user.SetWorkplace(valueOr(in.Company, user.Company), valueOr(in.Position, user.Position))
	}
	if in.Email != nil {
		if err := user.SetEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Type != nil {
		role, err := identity.ParseRole(*in.Type)
		if err != nil {
			return nil, err
		}
		if err := user.SetRole(role); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if err := user.SetPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResponse, error) {
	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

func (s *AuthService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Error(err))
	}
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
