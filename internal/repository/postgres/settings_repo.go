package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// SettingsRepo реализует repository.SettingsRepository
type SettingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo создает новый репозиторий настроек
func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get возвращает строку настроек
func (r *SettingsRepo) Get(ctx context.Context) (*entity.GameSettings, error) {
	var settings entity.GameSettings
	if err := r.db.WithContext(ctx).First(&settings, entity.SettingsSingletonID).Error; err != nil {
		return nil, mapError(err)
	}
	return &settings, nil
}

// Save сохраняет настройки
func (r *SettingsRepo) Save(ctx context.Context, settings *entity.GameSettings) error {
	settings.ID = entity.SettingsSingletonID
	return r.db.WithContext(ctx).Save(settings).Error
}

// CreateIfMissing вставляет строку по умолчанию, если ее нет (ON CONFLICT DO NOTHING),
// и возвращает то, что лежит в БД
func (r *SettingsRepo) CreateIfMissing(ctx context.Context, defaults *entity.GameSettings) (*entity.GameSettings, error) {
	defaults.ID = entity.SettingsSingletonID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(defaults).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
