package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// ContactService manages the caller's delivery contacts
type ContactService struct {
	contacts identity.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contacts identity.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// List returns the caller's contacts
func (s *ContactService) List(ctx context.Context, caller identity.Caller) ([]ContactResponse, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	contacts, err := s.contacts.FindByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = ToContactResponse(&contacts[i])
	}
	return out, nil
}

// Create adds a contact unless the caller already has an identical one
func (s *ContactService) Create(ctx context.Context, caller identity.Caller, fields identity.ContactFields) (*ContactResponse, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	contact, err := identity.NewContact(caller.UserID, fields)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// Update changes the non-empty fields of one of the caller's contacts
func (s *ContactService) Update(ctx context.Context, caller identity.Caller, id uuid.UUID, fields identity.ContactFields) (*ContactResponse, error) {
	if err := caller.RequireAuthenticated(); err != nil {
		return nil, err
	}
	contact, err := s.contacts.FindByIDForUser(ctx, caller.UserID, id)
	if err != nil {
		return nil, err
	}
	if err := contact.Update(fields); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// Delete removes one of the caller's contacts
func (s *ContactService) Delete(ctx context.Context, caller identity.Caller, id uuid.UUID) error {
	if err := caller.RequireAuthenticated(); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, caller.UserID, id)
}

func (s *ContactService) ensureUnique(ctx context.Context, contact *identity.Contact) error {
	existing, err := s.contacts.FindByUser(ctx, contact.UserID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].ID != contact.ID && existing[i].SameAs(contact) {
			return shared.NewDomainError(shared.CodeDuplicateEntity, "An identical contact already exists")
		}
	}
	return nil
}
