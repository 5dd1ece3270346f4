package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/handler/dto"
	"github.com/yourusername/quiz-game-api/internal/service"
)

const defaultQuestionPageSize = 100

// QuestionManager - операции над банком вопросов
type QuestionManager interface {
	List(ctx context.Context, includeInactive bool, skip, limit int) ([]entity.Question, error)
	Get(ctx context.Context, id uint) (*entity.Question, error)
	Create(ctx context.Context, question *entity.Question) (*entity.Question, error)
	Update(ctx context.Context, id uint, update service.QuestionUpdate) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (*service.QuestionCount, error)
}

// QuestionHandler обрабатывает запросы к банку вопросов
type QuestionHandler struct {
	questionService QuestionManager
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService QuestionManager) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions возвращает страницу вопросов, упорядоченных по id
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	skip, limit, ok := pagination(c, defaultQuestionPageSize)
	if !ok {
		return
	}
	includeInactive, ok := queryBool(c, "include_inactive")
	if !ok {
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), includeInactive, skip, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if questions == nil {
		questions = []entity.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion возвращает вопрос вместе с правильным ответом
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := pathID(c, questionIDKey)
	if !ok {
		return
	}
	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion добавляет вопрос в банк
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion частично обновляет вопрос
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, ok := pathID(c, questionIDKey)
	if !ok {
		return
	}
	question, err := h.questionService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion удаляет вопрос
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := pathID(c, questionIDKey)
	if !ok {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CountQuestions возвращает {total, active}
func (h *QuestionHandler) CountQuestions(c *gin.Context) {
	count, err := h.questionService.Count(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *QuestionHandler) handleError(c *gin.Context, err error) {
	handleServiceError(c, "QuestionHandler", err, "Question not found")
}
