package service

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// AnswerSubmission - ответ игрока на один вопрос.
// PlayerAnswer == nil означает, что игрок не ответил.
type AnswerSubmission struct {
	QuestionID   uint
	PlayerAnswer *string
	TimeTaken    float64
}

// ScoredSession - результат подсчета очков по всей сессии
type ScoredSession struct {
	Answers        []entity.GameAnswer
	TotalScore     int
	CorrectAnswers int
	WrongAnswers   int
	Unanswered     int
}

// TimeBonus возвращает бонус за скорость: линейно убывает от time_bonus_max до 0 к концу таймера
func TimeBonus(cfg entity.GameConfig, timeTaken float64) int {
	if cfg.TimerSeconds <= 0 || cfg.TimeBonusMax <= 0 {
		return 0
	}
	timer := float64(cfg.TimerSeconds)
	if timeTaken < 0 || timeTaken >= timer {
		return 0
	}
	return int(math.Floor(float64(cfg.TimeBonusMax) * (1 - timeTaken/timer)))
}

// ValidateSubmissions проверяет ответы до любых изменений в БД
func ValidateSubmissions(submissions []AnswerSubmission) error {
	for _, sub := range submissions {
		if sub.TimeTaken < 0 || math.IsNaN(sub.TimeTaken) || math.IsInf(sub.TimeTaken, 0) {
			return fmt.Errorf("%w: time_taken must be a non-negative number (question %d)", apperrors.ErrValidation, sub.QuestionID)
		}
		if sub.PlayerAnswer != nil && !entity.IsValidAnswer(*sub.PlayerAnswer) {
			return fmt.Errorf("%w: player_answer must be 'green', 'red' or null (question %d)", apperrors.ErrValidation, sub.QuestionID)
		}
	}
	return nil
}

// ScoreSession применяет ответы к пустым записям сессии и считает итог.
// Функция чистая: входной срез placeholders не изменяется.
// Ответы на вопросы вне сессии игнорируются, при повторе побеждает последний ответ.
func ScoreSession(cfg entity.GameConfig, placeholders []entity.GameAnswer, submissions []AnswerSubmission, now time.Time) ScoredSession {
	latest := make(map[uint]AnswerSubmission, len(submissions))
	for _, sub := range submissions {
		latest[sub.QuestionID] = sub
	}

	result := ScoredSession{Answers: make([]entity.GameAnswer, len(placeholders))}
	for i, placeholder := range placeholders {
		answer := placeholder
		sub, ok := latest[answer.QuestionID]
		if ok {
			scoreAnswer(cfg, &answer, sub, now)
		}

		switch {
		case answer.IsCorrect == nil:
			result.Unanswered++
		case *answer.IsCorrect:
			result.CorrectAnswers++
		default:
			result.WrongAnswers++
		}
		result.TotalScore += answer.PointsEarned
		result.Answers[i] = answer
	}
	return result
}

func scoreAnswer(cfg entity.GameConfig, answer *entity.GameAnswer, sub AnswerSubmission, now time.Time) {
	timeTaken := sub.TimeTaken
	answeredAt := now
	answer.TimeTaken = &timeTaken
	answer.AnsweredAt = &answeredAt

	if sub.PlayerAnswer == nil {
		answer.PlayerAnswer = nil
		answer.IsCorrect = nil
		answer.PointsEarned = 0
		return
	}

	playerAnswer := *sub.PlayerAnswer
	answer.PlayerAnswer = &playerAnswer

	correct := answer.Question != nil && answer.Question.IsCorrect(playerAnswer)
	answer.IsCorrect = &correct
	if correct {
		answer.PointsEarned = cfg.PointsCorrect + TimeBonus(cfg, timeTaken)
	} else {
		answer.PointsEarned = cfg.PointsWrong
	}
}
