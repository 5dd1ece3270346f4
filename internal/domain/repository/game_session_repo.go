package repository

import (
	"context"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// GameSessionRepository определяет методы для работы с игровыми сессиями и их ответами
type GameSessionRepository interface {
	// Transaction выполняет fn внутри одной транзакции БД.
	// Репозиторий, переданный в fn, работает в рамках этой транзакции.
	Transaction(ctx context.Context, fn func(tx GameSessionRepository) error) error

	// CreateWithPlaceholders создает сессию и пустые ответы для каждого вопроса (question_order с 1)
	CreateWithPlaceholders(ctx context.Context, session *entity.GameSession, questionIDs []uint) error
	GetByID(ctx context.Context, id uint) (*entity.GameSession, error)
	// GetByIDForUpdate блокирует строку сессии до конца транзакции (SELECT ... FOR UPDATE)
	GetByIDForUpdate(ctx context.Context, id uint) (*entity.GameSession, error)
	// GetAnswers возвращает ответы сессии вместе с вопросами, в порядке question_order
	GetAnswers(ctx context.Context, sessionID uint) ([]entity.GameAnswer, error)
	UpdateAnswers(ctx context.Context, answers []entity.GameAnswer) error
	Update(ctx context.Context, session *entity.GameSession) error
	UpdateScore(ctx context.Context, id uint, totalScore int) error
	Delete(ctx context.Context, id uint) error

	// CountCompleted возвращает количество завершенных сессий
	CountCompleted(ctx context.Context) (int64, error)
	// CountCompletedAbove возвращает количество завершенных сессий со счетом строго выше score
	CountCompletedAbove(ctx context.Context, score int) (int64, error)
	// TopCompleted возвращает лучшие завершенные сессии (total_score DESC, completed_at ASC) с игроками
	TopCompleted(ctx context.Context, limit int) ([]entity.GameSession, error)
	// ListCompleted возвращает завершенные сессии (completed_at DESC) с игроками и ответами
	ListCompleted(ctx context.Context, limit, offset int) ([]entity.GameSession, error)
	// GetWithDetails возвращает сессию с игроком и ответами
	GetWithDetails(ctx context.Context, id uint) (*entity.GameSession, error)
}
