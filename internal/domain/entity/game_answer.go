package entity

import (
	"time"
)

// GameAnswer - ответ на один вопрос сессии.
// Создается пустым при старте игры и заполняется один раз при отправке результатов.
type GameAnswer struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SessionID     uint       `gorm:"not null;uniqueIndex:idx_answer_session_question;uniqueIndex:idx_answer_session_order" json:"session_id"`
	QuestionID    uint       `gorm:"not null;uniqueIndex:idx_answer_session_question" json:"question_id"`
	Question      *Question  `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	PlayerAnswer  *string    `gorm:"size:10" json:"player_answer"`
	IsCorrect     *bool      `json:"is_correct"`
	TimeTaken     *float64   `json:"time_taken"`
	PointsEarned  int        `gorm:"not null;default:0" json:"points_earned"`
	QuestionOrder int        `gorm:"not null;uniqueIndex:idx_answer_session_order" json:"question_order"`
	AnsweredAt    *time.Time `json:"answered_at"`
}

// TableName определяет имя таблицы для GORM
func (GameAnswer) TableName() string {
	return "game_answers"
}
