package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"taskly-be/internal/apperror"
	"taskly-be/internal/auth"
	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/repository"
	"taskly-be/internal/validation"
)

const (
	msgInvalidCredentials = "email or password invalid"
	msgEmailTaken         = "The email has already been taken."
	msgPasswordTooLong    = "The password may not be greater than 72 characters."
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string)
	Me(ctx context.Context, token string) (*models.PublicUser, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	hasher   PasswordHasher
	authn    *Authenticator

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens TokenService, hasher PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		authn:    NewAuthenticator(tokens, userRepo),
	}
}

// Register creates a new user account and logs it in. Nothing is persisted
// unless the token was issued.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, validation.Field("password", msgPasswordTooLong)
	}

	// Check if user already exists
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if exists {
		return nil, validation.Field("email", msgEmailTaken)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Image:        req.Image,
		PasswordHash: hashedPassword,
	}

	// Generate JWT token for automatic login after registration
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, validation.Field("email", msgEmailTaken)
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	return &models.RegisterResponse{
		Success: true,
		User:    user,
		Token:   token,
		Message: "User registered",
	}, nil
}

// Login authenticates a user and returns user info with JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// Spend the same bcrypt time as a real comparison.
		s.hasher.Verify(s.dummyPasswordHash(), req.Password)
		return nil, apperror.New(apperror.KindUnauthorized, msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperror.Internal("failed to find user", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, apperror.New(apperror.KindUnauthorized, msgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}

	return &models.LoginResponse{
		Success: true,
		User:    models.NewPublicUser(user),
		Token:   token,
	}, nil
}

// Logout invalidates token. It always succeeds from the caller's view.
func (s *authService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.tokens.InvalidateToken(ctx, token); err != nil {
		slog.WarnContext(ctx, "failed to invalidate token on logout", "error", err)
	}
}

// Me returns the public view of the token's owner.
func (s *authService) Me(ctx context.Context, token string) (*models.PublicUser, error) {
	user, err := s.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	view := models.NewPublicUser(user)
	return &view, nil
}

func (s *authService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			slog.Error("failed to prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
