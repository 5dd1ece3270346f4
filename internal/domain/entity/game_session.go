package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы статусов игровой сессии
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	// SessionStatusAbandoned зарезервирован: ни один сценарий пока не переводит сессию в этот статус.
	SessionStatusAbandoned = "abandoned"
)

// GameConfig - снимок настроек, зафиксированный при старте игры.
// Подсчет очков использует только его, а не текущие глобальные настройки.
type GameConfig struct {
	QuestionsPerGame int `json:"questions_per_game"`
	TimerSeconds     int `json:"timer_seconds"`
	PointsCorrect    int `json:"points_correct"`
	PointsWrong      int `json:"points_wrong"`
	TimeBonusMax     int `json:"time_bonus_max"`
}

// Scan реализует интерфейс sql.Scanner для GameConfig (JSONB)
func (c *GameConfig) Scan(value interface{}) error {
	if value == nil {
		*c = GameConfig{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*c = GameConfig{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// Value реализует интерфейс driver.Valuer для GameConfig
func (c GameConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// GameSession - одно прохождение игры одним игроком
type GameSession struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	PlayerID       uint         `gorm:"not null;index" json:"player_id"`
	Player         *Player      `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Status         string       `gorm:"size:20;not null;default:'in_progress';index" json:"status"`
	TotalScore     int          `gorm:"not null;default:0" json:"total_score"`
	CorrectAnswers int          `gorm:"not null;default:0" json:"correct_answers"`
	WrongAnswers   int          `gorm:"not null;default:0" json:"wrong_answers"`
	Unanswered     int          `gorm:"not null;default:0" json:"unanswered"`
	StartedAt      time.Time    `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time   `json:"completed_at"`
	Config         GameConfig   `gorm:"type:jsonb;not null" json:"config_snapshot"`
	Answers        []GameAnswer `gorm:"foreignKey:SessionID" json:"answers,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (GameSession) TableName() string {
	return "game_sessions"
}

// IsInProgress проверяет, идет ли игра
func (s *GameSession) IsInProgress() bool {
	return s.Status == SessionStatusInProgress
}

// IsCompleted проверяет, завершена ли игра
func (s *GameSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}
