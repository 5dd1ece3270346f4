package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/handler/dto"
	"github.com/yourusername/quiz-game-api/internal/middleware"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

// AdminAuth - операции входа и выхода администратора
type AdminAuth interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, claims *auth.AdminClaims) error
}

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService AdminAuth
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService AdminAuth) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login выдает bearer-токен администратору
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("[AuthHandler] Неудачная попытка входа пользователя %q с IP %s", req.Username, c.ClientIP())
		c.Header("WWW-Authenticate", "Bearer")
		handleServiceError(c, "AuthHandler", err, "Not found")
		return
	}

	log.Printf("[AuthHandler] Администратор %q вошел в систему", req.Username)
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout отзывает текущий токен
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.AdminClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		// Токен все равно истечет сам, клиенту достаточно его забыть
		log.Printf("[AuthHandler] Logout: не удалось отозвать токен %s: %v", claims.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// GetMe возвращает имя текущего администратора
func (h *AuthHandler) GetMe(c *gin.Context) {
	claims, ok := middleware.AdminClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": claims.Subject})
}
