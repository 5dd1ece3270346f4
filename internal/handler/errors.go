package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/internal/service"
)

// handleServiceError переводит ошибку сервиса в HTTP ответ {"error": "..."}.
// notFound - текст ответа для apperrors.ErrNotFound.
func handleServiceError(c *gin.Context, component string, err error, notFound string) {
	var notEnough *service.NotEnoughQuestionsError

	switch {
	case errors.As(err, &notEnough):
		c.JSON(http.StatusBadRequest, gin.H{"error": notEnough.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorDetail(err, apperrors.ErrInvalidState, "Invalid state")})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorDetail(err, apperrors.ErrValidation, "Validation failed")})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errorDetail(err, apperrors.ErrConflict, "Resource already exists")})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errorDetail(err, apperrors.ErrUnauthorized, "Not authenticated")})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// errorDetail вырезает текст после "<sentinel>: ", который сервисы добавляют через fmt.Errorf("%w: ...")
func errorDetail(err, sentinel error, fallback string) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		if detail := msg[i+len(prefix):]; detail != "" {
			return detail
		}
	}
	return fallback
}

// bindError отвечает 400 на ошибку разбора тела запроса
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
