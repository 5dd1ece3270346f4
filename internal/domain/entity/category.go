package entity

import (
	"regexp"
	"time"
)

// DefaultCategoryColor используется, если цвет категории не задан
const DefaultCategoryColor = "#FC5607"

var categoryColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category группирует вопросы по темам
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:7;not null;default:'#FC5607'" json:"color"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryWithCount - категория вместе с количеством активных вопросов
type CategoryWithCount struct {
	Category
	QuestionCount int64 `json:"question_count"`
}

// IsValidCategoryColor проверяет формат цвета #RRGGBB
func IsValidCategoryColor(color string) bool {
	return categoryColorPattern.MatchString(color)
}
