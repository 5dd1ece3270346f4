package service

import (
	"context"
	"fmt"

	"github.com/yourusername/quiz-game-api/internal/domain/repository"
)

// Ranker вычисляет место результата среди завершенных игр
type Ranker struct {
	sessionRepo repository.GameSessionRepository
}

// NewRanker создает Ranker
func NewRanker(sessionRepo repository.GameSessionRepository) *Ranker {
	return &Ranker{sessionRepo: sessionRepo}
}

// RankOf возвращает место (1 + количество завершенных сессий со счетом строго выше)
// и общее количество завершенных сессий. Одинаковый счет дает одинаковое место.
func (r *Ranker) RankOf(ctx context.Context, totalScore int) (int64, int64, error) {
	above, err := r.sessionRepo.CountCompletedAbove(ctx, totalScore)
	if err != nil {
		return 0, 0, fmt.Errorf("count sessions above %d: %w", totalScore, err)
	}
	total, err := r.sessionRepo.CountCompleted(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count completed sessions: %w", err)
	}
	return above + 1, total, nil
}
