package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
)

// GameSessionRepo реализует repository.GameSessionRepository
type GameSessionRepo struct {
	db *gorm.DB
}

// NewGameSessionRepo создает новый репозиторий игровых сессий
func NewGameSessionRepo(db *gorm.DB) *GameSessionRepo {
	return &GameSessionRepo{db: db}
}

// Transaction выполняет fn в транзакции. Любая ошибка из fn откатывает все изменения.
func (r *GameSessionRepo) Transaction(ctx context.Context, fn func(tx repository.GameSessionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GameSessionRepo{db: tx})
	})
}

// CreateWithPlaceholders создает сессию и пустые ответы в одной транзакции
func (r *GameSessionRepo) CreateWithPlaceholders(ctx context.Context, session *entity.GameSession, questionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return err
		}

		placeholders := make([]entity.GameAnswer, 0, len(questionIDs))
		for i, questionID := range questionIDs {
			placeholders = append(placeholders, entity.GameAnswer{
				SessionID:     session.ID,
				QuestionID:    questionID,
				QuestionOrder: i + 1,
			})
		}
		if len(placeholders) == 0 {
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(&placeholders).Error; err != nil {
			return err
		}
		session.Answers = placeholders
		return nil
	})
}

// GetByID возвращает сессию по ID
func (r *GameSessionRepo) GetByID(ctx context.Context, id uint) (*entity.GameSession, error) {
	var session entity.GameSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}

// GetByIDForUpdate блокирует строку сессии до конца текущей транзакции.
// Параллельная повторная отправка дождется коммита и увидит статус completed.
func (r *GameSessionRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.GameSession, error) {
	var session entity.GameSession
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}

// GetAnswers возвращает ответы сессии с вопросами в порядке question_order
func (r *GameSessionRepo) GetAnswers(ctx context.Context, sessionID uint) ([]entity.GameAnswer, error) {
	var answers []entity.GameAnswer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("session_id = ?", sessionID).
		Order("question_order ASC").
		Find(&answers).Error
	return answers, err
}

// UpdateAnswers сохраняет итоговые значения ответов
func (r *GameSessionRepo) UpdateAnswers(ctx context.Context, answers []entity.GameAnswer) error {
	db := r.db.WithContext(ctx)
	for i := range answers {
		a := &answers[i]
		err := db.Model(&entity.GameAnswer{}).
			Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"player_answer": a.PlayerAnswer,
				"is_correct":    a.IsCorrect,
				"time_taken":    a.TimeTaken,
				"points_earned": a.PointsEarned,
				"answered_at":   a.AnsweredAt,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Update сохраняет статус и итоги сессии
func (r *GameSessionRepo) Update(ctx context.Context, session *entity.GameSession) error {
	return r.db.WithContext(ctx).Model(&entity.GameSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"status":          session.Status,
			"total_score":     session.TotalScore,
			"correct_answers": session.CorrectAnswers,
			"wrong_answers":   session.WrongAnswers,
			"unanswered":      session.Unanswered,
			"completed_at":    session.CompletedAt,
		}).Error
}

// UpdateScore вручную меняет итоговый счет (админ-корректировка)
func (r *GameSessionRepo) UpdateScore(ctx context.Context, id uint, totalScore int) error {
	result := r.db.WithContext(ctx).Model(&entity.GameSession{}).
		Where("id = ?", id).
		Update("total_score", totalScore)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete удаляет сессию вместе с ответами
func (r *GameSessionRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&entity.GameAnswer{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.GameSession{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return mapError(err)
}

// CountCompleted возвращает количество завершенных сессий
func (r *GameSessionRepo) CountCompleted(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.GameSession{}).
		Where("status = ?", entity.SessionStatusCompleted).
		Count(&count).Error
	return count, err
}

// CountCompletedAbove возвращает количество завершенных сессий со счетом строго выше score
func (r *GameSessionRepo) CountCompletedAbove(ctx context.Context, score int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.GameSession{}).
		Where("status = ? AND total_score > ?", entity.SessionStatusCompleted, score).
		Count(&count).Error
	return count, err
}

// TopCompleted возвращает лучшие завершенные сессии; при равенстве выше тот, кто закончил раньше
func (r *GameSessionRepo) TopCompleted(ctx context.Context, limit int) ([]entity.GameSession, error) {
	var sessions []entity.GameSession
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("status = ?", entity.SessionStatusCompleted).
		Order("total_score DESC, completed_at ASC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// ListCompleted возвращает завершенные сессии, новые первыми
func (r *GameSessionRepo) ListCompleted(ctx context.Context, limit, offset int) ([]entity.GameSession, error) {
	var sessions []entity.GameSession
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_order ASC") }).
		Where("status = ?", entity.SessionStatusCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}

// GetWithDetails возвращает сессию с игроком и ответами
func (r *GameSessionRepo) GetWithDetails(ctx context.Context, id uint) (*entity.GameSession, error) {
	var session entity.GameSession
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_order ASC") }).
		First(&session, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}
