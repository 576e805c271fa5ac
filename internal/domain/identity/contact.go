package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// Contact is a delivery address and phone number owned by a user
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// ContactFields carries the editable fields of a contact
type ContactFields struct {
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// NewContact creates a contact for the user. City, street and phone are required.
func NewContact(userID uuid.UUID, f ContactFields) (*Contact, error) {
	c := &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
	c.apply(f)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the non-empty fields of f
func (c *Contact) Update(f ContactFields) error {
	merged := c.Fields()
	if f.City != "" {
		merged.City = f.City
	}
	if f.Street != "" {
		merged.Street = f.Street
	}
	if f.House != "" {
		merged.House = f.House
	}
	if f.Structure != "" {
		merged.Structure = f.Structure
	}
	if f.Building != "" {
		merged.Building = f.Building
	}
	if f.Apartment != "" {
		merged.Apartment = f.Apartment
	}
	if f.Phone != "" {
		merged.Phone = f.Phone
	}
	c.apply(merged)
	c.Touch()
	return c.Validate()
}

// Validate checks required fields and lengths
func (c *Contact) Validate() error {
	err := shared.NewDomainError(shared.CodeValidation, "Contact is invalid")
	failed := false
	for field, value := range map[string]string{"city": c.City, "street": c.Street, "phone": c.Phone} {
		if value == "" {
			err = err.WithDetail(field, "This field is required")
			failed = true
		}
	}
	if len(c.Phone) > 20 {
		err = err.WithDetail("phone", "Phone cannot exceed 20 characters")
		failed = true
	}
	if failed {
		return err
	}
	return nil
}

// Fields returns the editable fields
func (c *Contact) Fields() ContactFields {
	return ContactFields{
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
}

// SameAs reports whether both contacts hold identical field values
func (c *Contact) SameAs(other *Contact) bool {
	return c.Fields() == other.Fields()
}

func (c *Contact) apply(f ContactFields) {
	c.City = strings.TrimSpace(f.City)
	c.Street = strings.TrimSpace(f.Street)
	c.House = strings.TrimSpace(f.House)
	c.Structure = strings.TrimSpace(f.Structure)
	c.Building = strings.TrimSpace(f.Building)
	c.Apartment = strings.TrimSpace(f.Apartment)
	c.Phone = strings.TrimSpace(f.Phone)
}
