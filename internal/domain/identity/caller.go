package identity

import (
	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// Caller is the identity behind a request. The zero value is anonymous.
type Caller struct {
	UserID uuid.UUID
	Role   Role
}

// Anonymous returns an unauthenticated caller
func Anonymous() Caller {
	return Caller{}
}

// NewCaller creates an authenticated caller
func NewCaller(userID uuid.UUID, role Role) Caller {
	return Caller{UserID: userID, Role: role}
}

// Authenticated reports whether the caller resolved to a user
func (c Caller) Authenticated() bool {
	return c.UserID != uuid.Nil
}

// IsShop reports whether the caller acts for a shop
func (c Caller) IsShop() bool {
	return c.Authenticated() && c.Role == RoleShop
}

// RequireAuthenticated fails with NotAuthenticated for anonymous callers
func (c Caller) RequireAuthenticated() error {
	if !c.Authenticated() {
		return shared.ErrNotAuthenticated
	}
	return nil
}

// RequireShop fails unless the caller is an authenticated shop owner
func (c Caller) RequireShop() error {
	if err := c.RequireAuthenticated(); err != nil {
		return err
	}
	if !c.IsShop() {
		return shared.NewDomainError(shared.CodeForbidden, "Only shops can perform this action")
	}
	return nil
}
