package repository

import (
	"context"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	CreateBatch(ctx context.Context, questions []entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error)
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]entity.Question, error)
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uint) error

	// CountAll возвращает общее количество вопросов и количество активных
	CountAll(ctx context.Context) (total int64, active int64, err error)
	// RandomActiveIDs возвращает limit случайных активных вопросов без повторов
	RandomActiveIDs(ctx context.Context, limit int) ([]uint, error)
}
