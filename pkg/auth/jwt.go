package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// RoleAdmin - роль единственного администратора
const RoleAdmin = "admin"

var (
	// ErrTokenExpired - срок действия токена истек
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid - токен поврежден, подписан другим ключом или другим алгоритмом
	ErrTokenInvalid = errors.New("token is invalid")
)

// AdminClaims содержит поля токена администратора. Subject - имя администратора.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет токены HS256
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService создает сервис JWT
func NewJWTService(secret string, expirationHrs int, issuer string) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// Expiration возвращает срок жизни выпускаемых токенов
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateAdminToken выпускает токен с sub = username
func (s *JWTService) GenerateAdminToken(username string) (string, error) {
	now := s.now()
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия и возвращает claims
func (s *JWTService) ParseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		log.Printf("[JWT] Ошибка проверки токена: %v", err)
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
