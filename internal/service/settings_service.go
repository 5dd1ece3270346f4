package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// SettingsUpdate - частичное обновление настроек, nil означает "не менять"
type SettingsUpdate struct {
	QuestionsPerGame     *int
	TimerSeconds         *int
	PointsCorrect        *int
	PointsWrong          *int
	TimeBonusMax         *int
	CategoryDistribution *entity.CategoryDistribution
}

// SettingsService управляет глобальными настройками игры
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     entity.GameSettings
}

// NewSettingsService создает сервис настроек с значениями для первого запуска
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults entity.GameSettings) *SettingsService {
	defaults.ID = entity.SettingsSingletonID
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// EnsureDefaults создает строку настроек при первом запуске
func (s *SettingsService) EnsureDefaults(ctx context.Context) (*entity.GameSettings, error) {
	defaults := s.defaults
	settings, err := s.settingsRepo.CreateIfMissing(ctx, &defaults)
	if err != nil {
		log.Printf("[SettingsService] Ошибка создания настроек по умолчанию: %v", err)
		return nil, err
	}
	return settings, nil
}

// Get возвращает текущие настройки, создавая их при отсутствии
func (s *SettingsService) Get(ctx context.Context) (*entity.GameSettings, error) {
	return s.EnsureDefaults(ctx)
}

// Update применяет частичное обновление. Идущие игры не затрагиваются: у них свой снимок.
func (s *SettingsService) Update(ctx context.Context, update SettingsUpdate) (*entity.GameSettings, error) {
	if err := validateSettingsUpdate(update); err != nil {
		return nil, err
	}

	settings, err := s.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}

	if update.QuestionsPerGame != nil {
		settings.QuestionsPerGame = *update.QuestionsPerGame
	}
	if update.TimerSeconds != nil {
		settings.TimerSeconds = *update.TimerSeconds
	}
	if update.PointsCorrect != nil {
		settings.PointsCorrect = *update.PointsCorrect
	}
	if update.PointsWrong != nil {
		settings.PointsWrong = *update.PointsWrong
	}
	if update.TimeBonusMax != nil {
		settings.TimeBonusMax = *update.TimeBonusMax
	}
	if update.CategoryDistribution != nil {
		settings.CategoryDistribution = *update.CategoryDistribution
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		log.Printf("[SettingsService] Ошибка сохранения настроек: %v", err)
		return nil, err
	}

	log.Printf("[SettingsService] Настройки обновлены: %d вопросов, таймер %d с", settings.QuestionsPerGame, settings.TimerSeconds)
	return settings, nil
}

func validateSettingsUpdate(u SettingsUpdate) error {
	if u.QuestionsPerGame != nil && (*u.QuestionsPerGame < 1 || *u.QuestionsPerGame > 50) {
		return fmt.Errorf("%w: questions_per_game must be between 1 and 50", apperrors.ErrValidation)
	}
	if u.TimerSeconds != nil && (*u.TimerSeconds < 5 || *u.TimerSeconds > 120) {
		return fmt.Errorf("%w: timer_seconds must be between 5 and 120", apperrors.ErrValidation)
	}
	if u.PointsCorrect != nil && *u.PointsCorrect < 0 {
		return fmt.Errorf("%w: points_correct must be >= 0", apperrors.ErrValidation)
	}
	if u.PointsWrong != nil && *u.PointsWrong < 0 {
		return fmt.Errorf("%w: points_wrong must be >= 0", apperrors.ErrValidation)
	}
	if u.TimeBonusMax != nil && *u.TimeBonusMax < 0 {
		return fmt.Errorf("%w: time_bonus_max must be >= 0", apperrors.ErrValidation)
	}
	if u.CategoryDistribution != nil {
		for categoryID, count := range *u.CategoryDistribution {
			if count < 0 {
				return fmt.Errorf("%w: category_distribution[%s] must be >= 0", apperrors.ErrValidation, categoryID)
			}
		}
	}
	return nil
}
