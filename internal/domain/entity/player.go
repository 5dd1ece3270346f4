package entity

import (
	"time"
)

// Player представляет зарегистрированного участника игры.
// Каждая регистрация создает новую запись, повторные email допускаются.
type Player struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	LastName    string    `gorm:"size:100;not null" json:"last_name"`
	Email       string    `gorm:"size:255;not null;index" json:"email"`
	PhoneNumber *string   `gorm:"size:20" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Player) TableName() string {
	return "players"
}

// FullName возвращает имя в формате "Имя Фамилия"
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}
