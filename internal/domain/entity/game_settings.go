package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SettingsSingletonID - идентификатор единственной строки настроек
const SettingsSingletonID = 1

// CategoryDistribution - желаемое количество вопросов по категориям (category_id -> count).
// Хранится в JSONB.
type CategoryDistribution map[string]int

// Scan реализует интерфейс sql.Scanner для CategoryDistribution
func (d *CategoryDistribution) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*d = nil
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// Value реализует интерфейс driver.Valuer для CategoryDistribution
func (d CategoryDistribution) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// GameSettings - глобальные настройки игры (одна строка с id = 1)
type GameSettings struct {
	ID                   uint                 `gorm:"primaryKey" json:"id"`
	QuestionsPerGame     int                  `gorm:"not null;default:15" json:"questions_per_game"`
	TimerSeconds         int                  `gorm:"not null;default:20" json:"timer_seconds"`
	PointsCorrect        int                  `gorm:"not null;default:100" json:"points_correct"`
	PointsWrong          int                  `gorm:"not null;default:0" json:"points_wrong"`
	TimeBonusMax         int                  `gorm:"not null;default:50" json:"time_bonus_max"`
	CategoryDistribution CategoryDistribution `gorm:"type:jsonb" json:"category_distribution"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameSettings) TableName() string {
	return "game_settings"
}

// Snapshot фиксирует текущие настройки в неизменяемом значении для новой сессии
func (s *GameSettings) Snapshot() GameConfig {
	return GameConfig{
		QuestionsPerGame: s.QuestionsPerGame,
		TimerSeconds:     s.TimerSeconds,
		PointsCorrect:    s.PointsCorrect,
		PointsWrong:      s.PointsWrong,
		TimeBonusMax:     s.TimeBonusMax,
	}
}
