package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/handler/dto"
	"github.com/yourusername/quiz-game-api/internal/service"
)

// SettingsManager - чтение и изменение глобальных настроек игры
type SettingsManager interface {
	Get(ctx context.Context) (*entity.GameSettings, error)
	Update(ctx context.Context, update service.SettingsUpdate) (*entity.GameSettings, error)
}

// SettingsHandler обрабатывает запросы к настройкам игры
type SettingsHandler struct {
	settingsService SettingsManager
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settingsService SettingsManager) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings возвращает текущие настройки
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings частично обновляет настройки. Уже начатые игры не затрагиваются.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req.ToUpdate())
	if err != nil {
		h.handleError(c, err)
		return
	}

	log.Printf("[SettingsHandler] Настройки обновлены: %d вопросов, таймер %d с", settings.QuestionsPerGame, settings.TimerSeconds)
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) handleError(c *gin.Context, err error) {
	handleServiceError(c, "SettingsHandler", err, "Game settings not found")
}
