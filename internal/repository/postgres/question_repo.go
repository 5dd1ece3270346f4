package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return mapError(r.db.WithContext(ctx).Create(question).Error)
}

// CreateBatch создает пакет вопросов
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Французские тексты содержат не-ASCII символы
		if err := tx.Exec("SET CLIENT_ENCODING TO 'UTF8'").Error; err != nil {
			return err
		}
		return tx.Create(&questions).Error
	})
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &question, nil
}

// GetByIDs возвращает вопросы по списку ID (порядок не гарантируется)
func (r *QuestionRepo) GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error) {
	var questions []entity.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// List возвращает вопросы с пагинацией, отсортированные по ID
func (r *QuestionRepo) List(ctx context.Context, includeInactive bool, limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&questions).Error
	return questions, err
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	return mapError(r.db.WithContext(ctx).Save(question).Error)
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

// CountAll возвращает общее количество вопросов и количество активных
func (r *QuestionRepo) CountAll(ctx context.Context) (int64, int64, error) {
	var counts struct {
		Total  int64
		Active int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Question{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_active) AS active").
		Scan(&counts).Error
	if err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Active, nil
}

// RandomActiveIDs возвращает limit случайных активных вопросов.
// ORDER BY RANDOM(): равномерная выборка без повторов
func (r *QuestionRepo) RandomActiveIDs(ctx context.Context, limit int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Question{}).
		Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}
