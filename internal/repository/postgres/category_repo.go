package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create создает новую категорию
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return mapError(r.db.WithContext(ctx).Create(category).Error)
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

// GetByName возвращает категорию по имени
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

// ListWithCounts возвращает категории с количеством активных вопросов одним запросом
func (r *CategoryRepo) ListWithCounts(ctx context.Context, includeInactive bool) ([]entity.CategoryWithCount, error) {
	var categories []entity.CategoryWithCount

	query := r.db.WithContext(ctx).
		Table("categories c").
		Select("c.*, COUNT(q.id) AS question_count").
		Joins("LEFT JOIN questions q ON q.category_id = c.id AND q.is_active = ?", true).
		Group("c.id").
		Order("c.name ASC")
	if !includeInactive {
		query = query.Where("c.is_active = ?", true)
	}

	if err := query.Scan(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountActiveQuestions возвращает количество активных вопросов в категории
func (r *CategoryRepo) CountActiveQuestions(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Question{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}

// Update сохраняет изменения категории
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	return mapError(r.db.WithContext(ctx).Save(category).Error)
}

// Delete отвязывает вопросы от категории и удаляет ее в одной транзакции
func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Question{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Category{}, id)
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
