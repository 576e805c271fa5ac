package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

const confirmationTokenBytes = 24

// EmailConfirmation is a pending, single-use email confirmation for a user
type EmailConfirmation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
}

// NewEmailConfirmation creates a confirmation with a fresh random token
func NewEmailConfirmation(userID uuid.UUID) (*EmailConfirmation, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &EmailConfirmation{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}, nil
}

func generateToken() (string, error) {
	buf := make([]byte, confirmationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
