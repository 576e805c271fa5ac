package identity

import (
	"regexp"
	"strings"

	"github.com/shopfeed/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role tags what a user does on the platform
type Role string

const (
	RoleShop  Role = "shop"
	RoleBuyer Role = "buyer"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleShop || r == RoleBuyer
}

// ParseRole parses a role tag, defaulting to buyer when empty
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleBuyer, nil
	}
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewValidationError("type", "Role must be shop or buyer")
	}
	return r, nil
}

var (
	bcryptCost = bcrypt.DefaultCost
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User represents a registered buyer or shop owner
type User struct {
	shared.BaseAggregateRoot
	Email        string
	FirstName    string
	LastName     string
	Company      string
	Position     string
	Role         Role
	Active       bool
	PasswordHash string
}

// NewUser creates an inactive user. The user becomes active once the email
// address is confirmed.
func NewUser(email, password string, role Role) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("type", "Role must be shop or buyer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Role:              role,
		PasswordHash:      string(hash),
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// SetName sets first and last name
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
}

// SetWorkplace sets company and position
func (u *User) SetWorkplace(company, position string) {
	u.Company = strings.TrimSpace(company)
	u.Position = strings.TrimSpace(position)
	u.Touch()
}

// SetEmail changes the login email
func (u *User) SetEmail(email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetRole changes the role tag
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("type", "Role must be shop or buyer")
	}
	u.Role = role
	u.Touch()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// Activate marks the user as confirmed
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

// VerifyPassword checks a plain text password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsShop reports whether the user owns a shop
func (u *User) IsShop() bool {
	return u.Role == RoleShop
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("email", "Email is required")
	}
	if len(email) > 200 {
		return shared.NewValidationError("email", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("password", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("password", "Password cannot exceed 72 characters")
	}
	return nil
}
