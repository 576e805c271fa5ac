package identity

import (
	"context"
	"testing"
	"time"

	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	db        *testutil.TestDB
	service   *AuthService
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	events    *testutil.RecordingPublisher
}

func newAuthFixture(t *testing.T) *authFixture {
	db := testutil.NewTestDB(t)
	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "shopfeed-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	events := testutil.NewRecordingPublisher()
	service := NewAuthService(db.Repos.Users, db.Repos.Confirmations, db, jwt, blacklist, events, zap.NewNop())
	return &authFixture{db: db, service: service, jwt: jwt, blacklist: blacklist, events: events}
}

func (f *authFixture) register(t *testing.T, email string) *UserResponse {
	t.Helper()
	user, err := f.service.Register(context.Background(), RegisterInput{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     email,
		Password:  "password123",
		Company:   "Euroset",
		Position:  "Manager",
		Type:      "shop",
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := f.register(t, "Ivan@Example.com")
	assert.Equal(t, "ivan@example.com", user.Email)
	assert.Equal(t, "shop", user.Type)
	assert.False(t, user.Active)

	registered := f.events.OfType(identity.EventTypeUserRegistered)
	require.Len(t, registered, 1)
	assert.False(t, registered[0].(*identity.UserRegisteredEvent).Active)

	_, err := f.service.Register(ctx, RegisterInput{Email: "ivan@example.com", Password: "password123"})
	assert.ErrorIs(t, err, shared.ErrDuplicateEntity)

	_, err = f.service.Register(ctx, RegisterInput{Email: "x@example.com", Password: "password123", Type: "admin"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAuthService_ConfirmOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "buyer@example.com")

	confirmation, err := f.db.Repos.Confirmations.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "buyer@example.com", "password123")
	assert.ErrorIs(t, err, shared.ErrForbidden, "inactive users cannot log in")

	require.NoError(t, f.service.Confirm(ctx, "buyer@example.com", confirmation.Token))

	stored, err := f.db.Repos.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)

	err = f.service.Confirm(ctx, "buyer@example.com", confirmation.Token)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = f.service.Confirm(ctx, "", "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.db.CreateUser(t, "shop@example.com", identity.RoleShop)

	tokens, err := f.service.Login(ctx, "SHOP@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokens.User.ID)

	claims, err := f.jwt.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleShop, claims.Role)

	_, err = f.service.Login(ctx, "shop@example.com", "wrong-password")
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

	_, err = f.service.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)

	tokens, err := f.service.Login(ctx, "buyer@example.com", "password123")
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.AccessToken, refreshed.AccessToken)

	_, err = f.service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated, "a refresh token is single use")

	_, err = f.service.Refresh(ctx, refreshed.AccessToken)
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

	claims, err := f.jwt.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.service.Logout(ctx, claims))

	revoked, err := f.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, f.service.Logout(ctx, nil), shared.ErrNotAuthenticated)
}

func TestAuthService_Profile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.db.CreateUser(t, "buyer@example.com", identity.RoleBuyer)
	caller := testutil.CallerOf(user)

	_, err := f.service.Profile(ctx, identity.Anonymous())
	assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

	name := "Anna"
	company := "Svyaznoy"
	shopType := "shop"
	password := "new-password-1"
	updated, err := f.service.UpdateProfile(ctx, caller, ProfileInput{
		FirstName: &name,
		Company:   &company,
		Type:      &shopType,
		Password:  &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Svyaznoy", updated.Company)
	assert.Equal(t, "shop", updated.Type)

	profile, err := f.service.Profile(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.FirstName)

	_, err = f.service.Login(ctx, "buyer@example.com", "new-password-1")
	assert.NoError(t, err)

	other := f.db.CreateUser(t, "taken@example.com", identity.RoleBuyer)
	taken := other.Email
	_, err = f.service.UpdateProfile(ctx, caller, ProfileInput{Email: &taken})
	assert.ErrorIs(t, err, shared.ErrDuplicateEntity)
}
