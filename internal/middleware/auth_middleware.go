package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

// AdminClaimsKey - ключ контекста Gin, под которым лежат claims администратора
const AdminClaimsKey = "adminClaims"

// Authenticator проверяет bearer-токен администратора
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.AdminClaims, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware создает новый middleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAdmin пропускает только запросы с действующим токеном администратора.
// 401 - токена нет или он недействителен, 403 - токен не администратора.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := m.authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrForbidden):
				log.Printf("[AuthMiddleware] Доступ запрещен для %s: %v", c.ClientIP(), err)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			case errors.Is(err, apperrors.ErrExpiredToken):
				c.Header("WWW-Authenticate", "Bearer")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			default:
				c.Header("WWW-Authenticate", "Bearer")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			}
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaimsFromContext возвращает claims, сохраненные RequireAdmin
func AdminClaimsFromContext(c *gin.Context) (*auth.AdminClaims, bool) {
	value, ok := c.Get(AdminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.AdminClaims)
	return claims, ok
}
