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

// GamePlay - регистрация игрока и жизненный цикл игровой сессии
type GamePlay interface {
	RegisterPlayer(ctx context.Context, input service.PlayerInput) (*entity.Player, error)
	StartGame(ctx context.Context, playerID uint) (*service.StartedGame, error)
	SubmitGame(ctx context.Context, sessionID uint, submissions []service.AnswerSubmission) (*service.SubmitOutcome, error)
}

// GameHandler обрабатывает публичные игровые запросы
type GameHandler struct {
	gameService GamePlay
}

// NewGameHandler создает новый игровой обработчик
func NewGameHandler(gameService GamePlay) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// RegisterPlayer регистрирует игрока. Каждый вызов создает новую запись.
func (h *GameHandler) RegisterPlayer(c *gin.Context) {
	var req dto.RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	player, err := h.gameService.RegisterPlayer(c.Request.Context(), service.PlayerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		handleServiceError(c, "GameHandler", err, "Player not found")
		return
	}
	c.JSON(http.StatusCreated, player)
}

// StartGame создает сессию и возвращает вопросы без правильных ответов
func (h *GameHandler) StartGame(c *gin.Context) {
	var req dto.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	game, err := h.gameService.StartGame(c.Request.Context(), req.PlayerID)
	if err != nil {
		handleServiceError(c, "GameHandler", err, "Player not found")
		return
	}

	log.Printf("[GameHandler] Игрок #%d начал игру #%d (%d вопросов)", req.PlayerID, game.SessionID, len(game.Questions))
	c.JSON(http.StatusOK, dto.NewStartGameResponse(game))
}

// SubmitGame принимает все ответы, считает очки и возвращает место и разбор
func (h *GameHandler) SubmitGame(c *gin.Context) {
	sessionID, ok := pathID(c, sessionIDKey)
	if !ok {
		return
	}

	var req dto.SubmitGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	outcome, err := h.gameService.SubmitGame(c.Request.Context(), sessionID, req.Submissions())
	if err != nil {
		handleServiceError(c, "GameHandler", err, "Game session not found")
		return
	}
	c.JSON(http.StatusOK, dto.NewSubmitGameResponse(outcome))
}
