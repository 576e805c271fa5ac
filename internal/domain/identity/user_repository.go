package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create stores a new user; a taken email yields DuplicateEntity
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by (normalized) email
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// ConfirmationRepository stores pending email confirmations
type ConfirmationRepository interface {
	// GetOrCreate returns the user's pending confirmation, creating one if absent
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*EmailConfirmation, error)

	// FindByEmailAndToken finds a pending confirmation by user email and token
	FindByEmailAndToken(ctx context.Context, email, token string) (*EmailConfirmation, error)

	// Delete removes a confirmation
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository stores user contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Contact, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)
}
