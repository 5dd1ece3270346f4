package dto

import (
	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/service"
)

// LoginRequest - вход администратора
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse - выданный токен администратора
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateCategoryRequest - создание категории
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r CreateCategoryRequest) ToInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		IsActive:    r.IsActive,
	}
}

// UpdateCategoryRequest - частичное обновление категории
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

// ToUpdate преобразует запрос во входные данные сервиса
func (r UpdateCategoryRequest) ToUpdate() service.CategoryUpdate {
	return service.CategoryUpdate{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		IsActive:    r.IsActive,
	}
}

// CreateQuestionRequest - создание вопроса. Пустые подписи получают значения по умолчанию.
type CreateQuestionRequest struct {
	QuestionEN    string  `json:"question_text_en" binding:"required"`
	QuestionFR    string  `json:"question_text_fr" binding:"required"`
	QuestionType  string  `json:"question_type"`
	MediaURL      *string `json:"media_url" binding:"omitempty,max=500"`
	CorrectAnswer string  `json:"correct_answer" binding:"required,oneof=green red"`
	GreenLabelEN  string  `json:"green_label_en"`
	GreenLabelFR  string  `json:"green_label_fr"`
	RedLabelEN    string  `json:"red_label_en"`
	RedLabelFR    string  `json:"red_label_fr"`
	ExplanationEN *string `json:"explanation_en"`
	ExplanationFR *string `json:"explanation_fr"`
	IsActive      *bool   `json:"is_active"`
	Difficulty    int     `json:"difficulty" binding:"omitempty,min=1,max=5"`
	CategoryID    *uint   `json:"category_id"`
}

// ToEntity преобразует запрос в сущность вопроса
func (r CreateQuestionRequest) ToEntity() *entity.Question {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &entity.Question{
		QuestionEN:    r.QuestionEN,
		QuestionFR:    r.QuestionFR,
		QuestionType:  r.QuestionType,
		MediaURL:      r.MediaURL,
		CorrectAnswer: r.CorrectAnswer,
		GreenLabelEN:  r.GreenLabelEN,
		GreenLabelFR:  r.GreenLabelFR,
		RedLabelEN:    r.RedLabelEN,
		RedLabelFR:    r.RedLabelFR,
		ExplanationEN: r.ExplanationEN,
		ExplanationFR: r.ExplanationFR,
		IsActive:      isActive,
		Difficulty:    r.Difficulty,
		CategoryID:    r.CategoryID,
	}
}

// UpdateQuestionRequest - частичное обновление вопроса
type UpdateQuestionRequest struct {
	QuestionEN    *string `json:"question_text_en"`
	QuestionFR    *string `json:"question_text_fr"`
	QuestionType  *string `json:"question_type"`
	MediaURL      *string `json:"media_url" binding:"omitempty,max=500"`
	CorrectAnswer *string `json:"correct_answer" binding:"omitempty,oneof=green red"`
	GreenLabelEN  *string `json:"green_label_en"`
	GreenLabelFR  *string `json:"green_label_fr"`
	RedLabelEN    *string `json:"red_label_en"`
	RedLabelFR    *string `json:"red_label_fr"`
	ExplanationEN *string `json:"explanation_en"`
	ExplanationFR *string `json:"explanation_fr"`
	IsActive      *bool   `json:"is_active"`
	Difficulty    *int    `json:"difficulty" binding:"omitempty,min=1,max=5"`
	CategoryID    *uint   `json:"category_id"`
}

// ToUpdate преобразует запрос во входные данные сервиса
func (r UpdateQuestionRequest) ToUpdate() service.QuestionUpdate {
	return service.QuestionUpdate{
		QuestionEN:    r.QuestionEN,
		QuestionFR:    r.QuestionFR,
		QuestionType:  r.QuestionType,
		MediaURL:      r.MediaURL,
		CorrectAnswer: r.CorrectAnswer,
		GreenLabelEN:  r.GreenLabelEN,
		GreenLabelFR:  r.GreenLabelFR,
		RedLabelEN:    r.RedLabelEN,
		RedLabelFR:    r.RedLabelFR,
		ExplanationEN: r.ExplanationEN,
		ExplanationFR: r.ExplanationFR,
		IsActive:      r.IsActive,
		Difficulty:    r.Difficulty,
		CategoryID:    r.CategoryID,
	}
}

// UpdateSettingsRequest - частичное обновление настроек игры. Границы проверяет сервис.
type UpdateSettingsRequest struct {
	QuestionsPerGame     *int                         `json:"questions_per_game"`
	TimerSeconds         *int                         `json:"timer_seconds"`
	PointsCorrect        *int                         `json:"points_correct"`
	PointsWrong          *int                         `json:"points_wrong"`
	TimeBonusMax         *int                         `json:"time_bonus_max"`
	CategoryDistribution *entity.CategoryDistribution `json:"category_distribution"`
}

// ToUpdate преобразует запрос во входные данные сервиса
func (r UpdateSettingsRequest) ToUpdate() service.SettingsUpdate {
	return service.SettingsUpdate{
		QuestionsPerGame:     r.QuestionsPerGame,
		TimerSeconds:         r.TimerSeconds,
		PointsCorrect:        r.PointsCorrect,
		PointsWrong:          r.PointsWrong,
		TimeBonusMax:         r.TimeBonusMax,
		CategoryDistribution: r.CategoryDistribution,
	}
}

// UpdateScoreRequest - ручная правка итогового счета. Указатель отличает 0 от отсутствия поля.
type UpdateScoreRequest struct {
	TotalScore *int `json:"total_score"`
}
