package repository

import (
	"context"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// SettingsRepository определяет методы для работы с глобальными настройками игры
type SettingsRepository interface {
	// Get возвращает строку настроек или apperrors.ErrNotFound
	Get(ctx context.Context) (*entity.GameSettings, error)
	Save(ctx context.Context, settings *entity.GameSettings) error
	// CreateIfMissing создает строку настроек, если ее еще нет, и возвращает актуальное значение
	CreateIfMissing(ctx context.Context, defaults *entity.GameSettings) (*entity.GameSettings, error)
}
