package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

func newTestTokens(t *testing.T) *auth.JWTService {
	t.Helper()
	tokens, err := auth.NewJWTService("unit-test-secret", 1, "test")
	require.NoError(t, err)
	return tokens
}

func TestAuthService_Login_PlainPassword(t *testing.T) {
	s := NewAuthService("admin", "s3cret", newTestTokens(t), nil)

	token, err := s.Login(context.Background(), "admin", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	s := NewAuthService("admin", string(hash), newTestTokens(t), nil)

	_, err = s.Login(context.Background(), "admin", "hunter2")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "admin", string(hash))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "хеш не принимается как пароль")
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	s := NewAuthService("admin", "s3cret", newTestTokens(t), nil)

	_, err := s.Login(context.Background(), "admin", "nope")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Incorrect username or password")

	_, err = s.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Authenticate(t *testing.T) {
	tokens := newTestTokens(t)
	s := NewAuthService("admin", "s3cret", tokens, nil)
	ctx := context.Background()

	t.Run("валидный токен администратора", func(t *testing.T) {
		token, err := s.Login(ctx, "admin", "s3cret")
		require.NoError(t, err)

		claims, err := s.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("токен другого пользователя", func(t *testing.T) {
		token, err := tokens.GenerateAdminToken("someone-else")
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	cache := new(MockCacheRepo)
	tokens := newTestTokens(t)
	s := NewAuthService("admin", "s3cret", tokens, cache)
	ctx := context.Background()

	token, err := s.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	cache.On("GetJSON", ctx, mock.AnythingOfType("string"), mock.Anything).Return(apperrors.ErrNotFound).Once()
	claims, err := s.Authenticate(ctx, token)
	require.NoError(t, err)

	cache.On("SetJSON", ctx, revokedTokenKeyPrefix+claims.ID, true, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)
	require.NoError(t, s.Logout(ctx, claims))

	cache.On("GetJSON", ctx, revokedTokenKeyPrefix+claims.ID, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*bool) = true
	}).Return(nil)
	_, err = s.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Logout_WithoutCache(t *testing.T) {
	s := NewAuthService("admin", "s3cret", newTestTokens(t), nil)
	claims := &auth.AdminClaims{RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}

	assert.NoError(t, s.Logout(context.Background(), claims))
}
