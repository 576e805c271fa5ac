package handler

import (
	identityapp "github.com/shopfeed/backend/internal/application/identity"
	"github.com/shopfeed/backend/internal/domain/identity"
)

// RegisterRequest is the body of POST /user/register
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Company   string `json:"company" binding:"max=50"`
	Position  string `json:"position" binding:"max=50"`
	Type      string `json:"type"`
}

func (r RegisterRequest) input() identityapp.RegisterInput {
	return identityapp.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Company:   r.Company,
		Position:  r.Position,
		Type:      r.Type,
	}
}

// LoginRequest is the body of POST /user/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the body of POST /user/token/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ProfileRequest is the body of PUT /user/profile. Absent fields are kept.
type ProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Company   *string `json:"company" binding:"omitempty,max=50"`
	Position  *string `json:"position" binding:"omitempty,max=50"`
	Type      *string `json:"type"`
	Password  *string `json:"password"`
}

func (r ProfileRequest) input() identityapp.ProfileInput {
	return identityapp.ProfileInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Company:   r.Company,
		Position:  r.Position,
		Type:      r.Type,
		Password:  r.Password,
	}
}

// ContactRequest is the body of POST and PUT /user/contacts
type ContactRequest struct {
	City      string `json:"city" binding:"max=50"`
	Street    string `json:"street" binding:"max=100"`
	House     string `json:"house" binding:"max=15"`
	Structure string `json:"structure" binding:"max=15"`
	Building  string `json:"building" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"max=20"`
}

func (r ContactRequest) fields() identity.ContactFields {
	return identity.ContactFields{
		City:      r.City,
		Street:    r.Street,
		House:     r.House,
		Structure: r.Structure,
		Building:  r.Building,
		Apartment: r.Apartment,
		Phone:     r.Phone,
	}
}
