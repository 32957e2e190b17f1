package models

import "taskly-be/internal/entities"

// PublicUser is the client-safe projection of a user
type PublicUser struct {
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       string  `json:"email"`
	Address     *string `json:"address"`
	Image       *string `json:"image"`
}

// NewPublicUser builds the client-safe view of a user.
func NewPublicUser(u *entities.User) PublicUser {
	return PublicUser{
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Address:     u.Address,
		Image:       u.Image,
	}
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Success bool           `json:"success"`
	User    *entities.User `json:"user"`
	Token   string         `json:"token"` // JWT token
	Message string         `json:"message"`
}

// LoginResponse represents the response after a successful login
type LoginResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}

// UserResponse represents the response for the current user endpoint
type UserResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
}
