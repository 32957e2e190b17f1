package models

import "strings"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"` // Reference only, uploads are handled elsewhere
	Password    string  `json:"password" validate:"required,min=8"`
}

// Normalize trims input and drops blank optional fields.
func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = NormalizeEmail(r.Email)
	r.PhoneNumber = trimOptional(r.PhoneNumber)
	r.Address = trimOptional(r.Address)
	r.Image = trimOptional(r.Image)
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
