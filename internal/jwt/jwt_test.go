package jwt

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taskly-be/internal/mocks"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(revoked *mocks.MockCache) *JWTService {
	if revoked == nil {
		return NewJWTService(testSecret, time.Hour, "taskly-test", nil)
	}
	return NewJWTService(testSecret, time.Hour, "taskly-test", revoked)
}

func TestGenerateAndResolve(t *testing.T) {
	svc := newTestService(nil)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	userID, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestGenerateTokenUniquePerCall(t *testing.T) {
	svc := newTestService(nil)

	a, err := svc.GenerateToken("user-1")
	require.NoError(t, err)
	b, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateTokenRequiresSubject(t *testing.T) {
	_, err := newTestService(nil).GenerateToken("")
	assert.Error(t, err)
}

func TestResolveTokenRejects(t *testing.T) {
	svc := newTestService(nil)
	valid, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	otherKey := NewJWTService("ffffffffffffffffffffffffffffffff", time.Hour, "taskly-test", nil)
	foreign, err := otherKey.GenerateToken("user-1")
	require.NoError(t, err)

	otherIssuer := NewJWTService(testSecret, time.Hour, "someone-else", nil)
	wrongIssuer, err := otherIssuer.GenerateToken("user-1")
	require.NoError(t, err)

	noneToken, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "taskly-test",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", tamper(valid)},
		{"wrong key", foreign},
		{"wrong issuer", wrongIssuer},
		{"alg none", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func tamper(token string) string {
	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	return strings.Join(parts, ".")
}

func TestResolveExpiredToken(t *testing.T) {
	svc := newTestService(nil)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInvalidateThenResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoked := mocks.NewMockCache(ctrl)
	svc := newTestService(revoked)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	var storedKey string
	revoked.EXPECT().
		Set(gomock.Any(), gomock.Any(), "1", gomock.Any()).
		DoAndReturn(func(_ context.Context, key, _ string, ttl time.Duration) error {
			storedKey = key
			assert.True(t, strings.HasPrefix(key, revokedKeyPrefix))
			assert.Greater(t, ttl, time.Duration(0))
			assert.LessOrEqual(t, ttl, time.Hour)
			return nil
		})
	require.NoError(t, svc.InvalidateToken(context.Background(), token))

	revoked.EXPECT().
		Exists(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) (bool, error) {
			return key == storedKey, nil
		})
	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrRevokedToken)
}

func TestInvalidateIgnoresUnusableTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoked := mocks.NewMockCache(ctrl)
	svc := newTestService(revoked)

	// No Set calls expected.
	assert.NoError(t, svc.InvalidateToken(context.Background(), ""))
	assert.NoError(t, svc.InvalidateToken(context.Background(), "garbage"))

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.GenerateToken("user-1")
	require.NoError(t, err)
	svc.now = time.Now
	assert.NoError(t, svc.InvalidateToken(context.Background(), expired))
}

func TestInvalidateWithoutDenylist(t *testing.T) {
	svc := newTestService(nil)
	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	err = svc.InvalidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrRevocationUnavailable)

	// Token stays usable until it expires.
	userID, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestInvalidatePropagatesStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoked := mocks.NewMockCache(ctrl)
	svc := newTestService(revoked)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	revoked.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	assert.Error(t, svc.InvalidateToken(context.Background(), token))
}

func TestResolveFailsOpenWhenDenylistDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoked := mocks.NewMockCache(ctrl)
	svc := newTestService(revoked)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)

	revoked.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

	userID, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
