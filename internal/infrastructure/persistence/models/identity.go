package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	BaseModel
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	FirstName    string        `gorm:"type:varchar(100)"`
	LastName     string        `gorm:"type:varchar(100)"`
	Company      string        `gorm:"type:varchar(100)"`
	Position     string        `gorm:"type:varchar(100)"`
	Role         identity.Role `gorm:"type:varchar(10);not null;default:'buyer'"`
	Active       bool          `gorm:"not null;default:false"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Email:             m.Email,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Company:           m.Company,
		Position:          m.Position,
		Role:              m.Role,
		Active:            m.Active,
		PasswordHash:      m.PasswordHash,
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Company:      u.Company,
		Position:     u.Position,
		Role:         u.Role,
		Active:       u.Active,
		PasswordHash: u.PasswordHash,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// EmailConfirmationModel is the persistence model for pending confirmations
type EmailConfirmationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_email_confirmations_user"`
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_email_confirmations_token"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmailConfirmationModel) TableName() string {
	return "email_confirmations"
}

// ToDomain converts the persistence model to a domain EmailConfirmation
func (m *EmailConfirmationModel) ToDomain() *identity.EmailConfirmation {
	return &identity.EmailConfirmation{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		CreatedAt: m.CreatedAt,
	}
}

// EmailConfirmationModelFromDomain creates a persistence model from a domain EmailConfirmation
func EmailConfirmationModelFromDomain(c *identity.EmailConfirmation) *EmailConfirmationModel {
	return &EmailConfirmationModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Token:     c.Token,
		CreatedAt: c.CreatedAt,
	}
}

// ContactModel is the persistence model for user contacts
type ContactModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Structure string    `gorm:"type:varchar(15)"`
	Building  string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *identity.Contact {
	return &identity.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		City:       m.City,
		Street:     m.Street,
		House:      m.House,
		Structure:  m.Structure,
		Building:   m.Building,
		Apartment:  m.Apartment,
		Phone:      m.Phone,
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact
func ContactModelFromDomain(c *identity.Contact) *ContactModel {
	m := &ContactModel{
		UserID:    c.UserID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
