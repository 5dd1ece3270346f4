package repository

import (
	"context"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// ListWithCounts возвращает категории с количеством активных вопросов, отсортированные по имени
	ListWithCounts(ctx context.Context, includeInactive bool) ([]entity.CategoryWithCount, error)
	CountActiveQuestions(ctx context.Context, categoryID uint) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete удаляет категорию и отвязывает от нее вопросы (category_id = NULL)
	Delete(ctx context.Context, id uint) error
}
