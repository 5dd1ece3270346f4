package repository

import (
	"context"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// PlayerRepository определяет методы для работы с игроками
type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id uint) (*entity.Player, error)
}
