package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

const revokedTokenKeyPrefix = "auth:revoked:"

// TokenService выпускает и проверяет токены администратора
type TokenService interface {
	GenerateAdminToken(username string) (string, error)
	ParseToken(tokenString string) (*auth.AdminClaims, error)
}

// AuthService проверяет единственную учетную запись администратора.
// Пароль в конфигурации может быть bcrypt-хешем или открытым текстом.
type AuthService struct {
	username  string
	password  string
	tokens    TokenService
	cacheRepo repository.CacheRepository
}

// NewAuthService создает сервис аутентификации администратора. cacheRepo может быть nil,
// тогда выход из системы не отзывает токен.
func NewAuthService(username, password string, tokens TokenService, cacheRepo repository.CacheRepository) *AuthService {
	return &AuthService{
		username:  username,
		password:  password,
		tokens:    tokens,
		cacheRepo: cacheRepo,
	}
}

// Login проверяет учетные данные и выпускает bearer-токен
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.checkCredentials(username, password) {
		log.Printf("[AuthService] Неудачная попытка входа для %q", username)
		return "", fmt.Errorf("%w: Incorrect username or password", apperrors.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateAdminToken(s.username)
	if err != nil {
		log.Printf("[AuthService] Ошибка выпуска токена: %v", err)
		return "", err
	}
	log.Printf("[AuthService] Администратор %s вошел в систему", s.username)
	return token, nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	return userOK && s.checkPassword(password)
}

func (s *AuthService) checkPassword(password string) bool {
	if isBcryptHash(s.password) {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
}

func isBcryptHash(value string) bool {
	return len(value) == 60 && (strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$"))
}

// Authenticate проверяет bearer-токен и права администратора
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*auth.AdminClaims, error) {
	claims, err := s.tokens.ParseToken(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	if s.isRevoked(ctx, claims.ID) {
		return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
	}

	if claims.Subject != s.username || claims.Role != auth.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", apperrors.ErrForbidden)
	}
	return claims, nil
}

// Logout отзывает токен до истечения его срока, если подключен кеш
func (s *AuthService) Logout(ctx context.Context, claims *auth.AdminClaims) error {
	if s.cacheRepo == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.cacheRepo.SetJSON(ctx, revokedTokenKeyPrefix+claims.ID, true, ttl); err != nil {
		log.Printf("[AuthService] Ошибка отзыва токена %s: %v", claims.ID, err)
		return err
	}
	return nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) bool {
	if s.cacheRepo == nil || jti == "" {
		return false
	}
	var revoked bool
	err := s.cacheRepo.GetJSON(ctx, revokedTokenKeyPrefix+jti, &revoked)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			// кеш недоступен: пропускаем, как и ограничитель частоты
			log.Printf("[AuthService] Ошибка проверки отзыва токена: %v", err)
		}
		return false
	}
	return revoked
}
