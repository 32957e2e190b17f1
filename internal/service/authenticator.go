package service

import (
	"context"
	"errors"

	"taskly-be/internal/apperror"
	"taskly-be/internal/entities"
	"taskly-be/internal/repository"
)

// Authenticator turns a bearer token into the user it was issued for.
type Authenticator struct {
	tokens TokenService
	users  repository.UserRepository
}

func NewAuthenticator(tokens TokenService, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate resolves token and loads its user. Every failure except a
// storage fault is reported as unauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, apperror.New(apperror.KindUnauthenticated, "No token provided")
	}

	userID, err := a.tokens.ResolveToken(ctx, token)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthenticated, "Invalid or expired token", err)
	}

	user, err := a.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.KindUnauthenticated, "User not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	return user, nil
}
