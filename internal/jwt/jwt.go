package jwt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskly-be/internal/cache"
)

var (
	// ErrInvalidToken is returned when a token is missing, malformed, badly signed or revoked.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired. It matches ErrInvalidToken.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)
	// ErrRevokedToken is returned for tokens invalidated by logout. It matches ErrInvalidToken.
	ErrRevokedToken = fmt.Errorf("%w: token has been revoked", ErrInvalidToken)
	// ErrRevocationUnavailable is returned by InvalidateToken when no denylist is configured.
	ErrRevocationUnavailable = errors.New("token revocation store unavailable")
)

const revokedKeyPrefix = "token:revoked:"

// JWTService issues, resolves and invalidates HS256 bearer tokens.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	revoked   cache.Cache // optional denylist of invalidated token ids
	now       func() time.Time
}

// NewJWTService creates a token service. revoked may be nil, in which case
// logout cannot revoke tokens and they stay valid until they expire.
func NewJWTService(secretKey string, ttl time.Duration, issuer string, revoked cache.Cache) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
		revoked:   revoked,
		now:       time.Now,
	}
}

// GenerateToken signs a token whose subject is userID.
func (s *JWTService) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue token without a subject")
	}

	now := s.now()
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ResolveToken verifies the token and returns the user id it was issued for.
func (s *JWTService) ResolveToken(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims, err := s.parse(tokenString,
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuer(s.issuer),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.Exists(ctx, revokedKeyPrefix+claims.ID)
		if err != nil {
			// Denylist outage degrades to signature+expiry checks only.
			slog.WarnContext(ctx, "token denylist lookup failed", "error", err)
		} else if revoked {
			return "", ErrRevokedToken
		}
	}

	return claims.Subject, nil
}

// InvalidateToken puts the token id on the denylist until the token would
// have expired anyway. Tokens that are unparsable or already expired are
// ignored.
func (s *JWTService) InvalidateToken(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}

	claims, err := s.parse(tokenString, gojwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}

	if s.revoked == nil {
		return ErrRevocationUnavailable
	}
	if err := s.revoked.Set(ctx, revokedKeyPrefix+claims.ID, "1", remaining); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *JWTService) parse(tokenString string, opts ...gojwt.ParserOption) (*gojwt.RegisteredClaims, error) {
	opts = append(opts, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))

	claims := &gojwt.RegisteredClaims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(token *gojwt.Token) (any, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
