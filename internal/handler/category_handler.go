package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/handler/dto"
	"github.com/yourusername/quiz-game-api/internal/service"
)

// CategoryManager - операции над категориями
type CategoryManager interface {
	List(ctx context.Context, includeInactive bool) ([]entity.CategoryWithCount, error)
	Get(ctx context.Context, id uint) (*entity.CategoryWithCount, error)
	Create(ctx context.Context, input service.CategoryInput) (*entity.CategoryWithCount, error)
	Update(ctx context.Context, id uint, update service.CategoryUpdate) (*entity.CategoryWithCount, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryHandler обрабатывает запросы к категориям вопросов
type CategoryHandler struct {
	categoryService CategoryManager
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService CategoryManager) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories возвращает категории с количеством активных вопросов
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	includeInactive, ok := queryBool(c, "include_inactive")
	if !ok {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if categories == nil {
		categories = []entity.CategoryWithCount{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory возвращает одну категорию
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, categoryIDKey)
	if !ok {
		return
	}
	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory создает категорию
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory частично обновляет категорию
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, ok := pathID(c, categoryIDKey)
	if !ok {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory удаляет категорию, вопросы остаются без категории
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, categoryIDKey)
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	handleServiceError(c, "CategoryHandler", err, "Category not found")
}
