package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates inactive user with normalized email", func(t *testing.T) {
		user, err := NewUser("  Buyer@Example.COM ", "secret123", RoleBuyer)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "buyer@example.com", user.Email)
		assert.False(t, user.Active)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("raises registered event", func(t *testing.T) {
		user, err := NewUser("shop@example.com", "secret123", RoleShop)
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, user.ID, evt.UserID)
		assert.False(t, evt.Active)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		tests := []struct {
			name     string
			email    string
			password string
			role     Role
		}{
			{"bad email", "not-an-email", "secret123", RoleBuyer},
			{"short password", "a@example.com", "short", RoleBuyer},
			{"unknown role", "a@example.com", "secret123", Role("admin")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewUser(tt.email, tt.password, tt.role)
				assert.True(t, errors.Is(err, shared.ErrValidation))
			})
		}
	})
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleBuyer, role)

	role, err = ParseRole("Shop")
	require.NoError(t, err)
	assert.Equal(t, RoleShop, role)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

func TestUser_Activate(t *testing.T) {
	user, err := NewUser("a@example.com", "secret123", RoleBuyer)
	require.NoError(t, err)

	user.Activate()
	assert.True(t, user.Active)
}

func TestCaller(t *testing.T) {
	assert.ErrorIs(t, Anonymous().RequireAuthenticated(), shared.ErrNotAuthenticated)
	assert.ErrorIs(t, Anonymous().RequireShop(), shared.ErrNotAuthenticated)

	buyer := NewCaller(uuid.New(), RoleBuyer)
	assert.NoError(t, buyer.RequireAuthenticated())
	assert.ErrorIs(t, buyer.RequireShop(), shared.ErrForbidden)

	shop := NewCaller(uuid.New(), RoleShop)
	assert.NoError(t, shop.RequireShop())
}

func TestNewEmailConfirmation(t *testing.T) {
	userID := uuid.New()
	first, err := NewEmailConfirmation(userID)
	require.NoError(t, err)
	second, err := NewEmailConfirmation(userID)
	require.NoError(t, err)

	assert.Len(t, first.Token, 2*confirmationTokenBytes)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, userID, first.UserID)
}
