package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// Ошибки сервисов, которые не сводятся к общим ошибкам приложения
var (
	// ErrSettingsMissing - строка настроек отсутствует (ошибка хранилища, а не клиента)
	ErrSettingsMissing = errors.New("game settings not configured")
)

// NotEnoughQuestionsError возвращается, когда активных вопросов меньше, чем нужно для игры.
// errors.Is(err, apperrors.ErrValidation) для нее истинно.
type NotEnoughQuestionsError struct {
	Need  int
	Found int64
}

func (e *NotEnoughQuestionsError) Error() string {
	return fmt.Sprintf("Not enough questions available. Need %d, found %d", e.Need, e.Found)
}

func (e *NotEnoughQuestionsError) Unwrap() error {
	return apperrors.ErrValidation
}
