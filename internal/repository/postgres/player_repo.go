package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// PlayerRepo реализует repository.PlayerRepository
type PlayerRepo struct {
	db *gorm.DB
}

// NewPlayerRepo создает новый репозиторий игроков
func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Create сохраняет нового игрока
func (r *PlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	return mapError(r.db.WithContext(ctx).Create(player).Error)
}

// GetByID возвращает игрока по ID
func (r *PlayerRepo) GetByID(ctx context.Context, id uint) (*entity.Player, error) {
	var player entity.Player
	if err := r.db.WithContext(ctx).First(&player, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &player, nil
}
