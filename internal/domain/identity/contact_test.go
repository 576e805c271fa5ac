package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	userID := uuid.New()

	t.Run("requires city street and phone", func(t *testing.T) {
		_, err := NewContact(userID, ContactFields{House: "12"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
		assert.Contains(t, domainErr.Details, "city")
		assert.Contains(t, domainErr.Details, "street")
		assert.Contains(t, domainErr.Details, "phone")
	})

	t.Run("trims fields", func(t *testing.T) {
		c, err := NewContact(userID, ContactFields{City: " Moscow ", Street: "Lenina", Phone: "+7000"})

		require.NoError(t, err)
		assert.Equal(t, "Moscow", c.City)
		assert.Equal(t, userID, c.UserID)
	})
}

func TestContact_Update(t *testing.T) {
	c, err := NewContact(uuid.New(), ContactFields{City: "Kazan", Street: "Baumana", Phone: "+7111"})
	require.NoError(t, err)

	require.NoError(t, c.Update(ContactFields{Apartment: "5"}))
	assert.Equal(t, "Kazan", c.City)
	assert.Equal(t, "5", c.Apartment)
}

func TestContact_SameAs(t *testing.T) {
	userID := uuid.New()
	fields := ContactFields{City: "Kazan", Street: "Baumana", House: "1", Phone: "+7111"}
	a, err := NewContact(userID, fields)
	require.NoError(t, err)
	b, err := NewContact(userID, fields)
	require.NoError(t, err)
	fields.House = "2"
	c, err := NewContact(userID, fields)
	require.NoError(t, err)

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
}
