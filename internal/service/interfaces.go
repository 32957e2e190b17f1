package service

import "context"

// TokenService issues and checks bearer tokens. *jwt.JWTService implements it.
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ResolveToken(ctx context.Context, token string) (string, error)
	InvalidateToken(ctx context.Context, token string) error
}

// PasswordHasher hashes and verifies passwords. *auth.BcryptHasher implements it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}
