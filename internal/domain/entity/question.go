package entity

import (
	"time"
)

// Варианты ответа на вопрос
const (
	AnswerGreen = "green"
	AnswerRed   = "red"
)

// Значения по умолчанию для подписей кнопок
const (
	DefaultGreenLabelEN = "Green"
	DefaultGreenLabelFR = "Vert"
	DefaultRedLabelEN   = "Red"
	DefaultRedLabelFR   = "Rouge"
	DefaultQuestionType = "text"
)

// Question представляет двуязычный вопрос с ответом "зеленый/красный"
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuestionEN    string    `gorm:"column:question_text_en;type:text;not null" json:"question_text_en"`
	QuestionFR    string    `gorm:"column:question_text_fr;type:text;not null" json:"question_text_fr"`
	QuestionType  string    `gorm:"size:20;not null;default:'text'" json:"question_type"`
	MediaURL      *string   `gorm:"size:500" json:"media_url"`
	CorrectAnswer string    `gorm:"size:10;not null" json:"correct_answer"`
	GreenLabelEN  string    `gorm:"size:50;not null;default:'Green'" json:"green_label_en"`
	GreenLabelFR  string    `gorm:"size:50;not null;default:'Vert'" json:"green_label_fr"`
	RedLabelEN    string    `gorm:"size:50;not null;default:'Red'" json:"red_label_en"`
	RedLabelFR    string    `gorm:"size:50;not null;default:'Rouge'" json:"red_label_fr"`
	ExplanationEN *string   `gorm:"type:text" json:"explanation_en"`
	ExplanationFR *string   `gorm:"type:text" json:"explanation_fr"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	Difficulty    int       `gorm:"not null;default:1" json:"difficulty"`
	CategoryID    *uint     `gorm:"index" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, совпадает ли ответ игрока с правильным
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// ApplyLabelDefaults заполняет пустые подписи и тип вопроса значениями по умолчанию
func (q *Question) ApplyLabelDefaults() {
	if q.GreenLabelEN == "" {
		q.GreenLabelEN = DefaultGreenLabelEN
	}
	if q.GreenLabelFR == "" {
		q.GreenLabelFR = DefaultGreenLabelFR
	}
	if q.RedLabelEN == "" {
		q.RedLabelEN = DefaultRedLabelEN
	}
	if q.RedLabelFR == "" {
		q.RedLabelFR = DefaultRedLabelFR
	}
	if q.QuestionType == "" {
		q.QuestionType = DefaultQuestionType
	}
	if q.Difficulty == 0 {
		q.Difficulty = 1
	}
}

// IsValidAnswer проверяет, является ли значение допустимым вариантом ответа
func IsValidAnswer(answer string) bool {
	return answer == AnswerGreen || answer == AnswerRed
}
