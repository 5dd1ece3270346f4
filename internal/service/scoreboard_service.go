package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

const (
	scoreboardCacheKey = "scoreboard:top"
	maxScoreboardLimit = 100
)

// Notifier - источник сигналов для зрителей табло (scoreboard.Broker)
type Notifier interface {
	Notify()
}

// ScoreboardEntry - строка табло
type ScoreboardEntry struct {
	Rank           int        `json:"rank"`
	PlayerName     string     `json:"player_name"`
	Email          string     `json:"email"`
	PhoneNumber    *string    `json:"phone_number"`
	Score          int        `json:"score"`
	CorrectAnswers int        `json:"correct_answers"`
	WrongAnswers   int        `json:"wrong_answers"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// ScoreboardService строит табло лучших результатов.
// Таблица лимита по умолчанию кешируется в Redis, если кеш подключен.
type ScoreboardService struct {
	sessionRepo  repository.GameSessionRepository
	cacheRepo    repository.CacheRepository
	notifier     Notifier
	defaultLimit int
	cacheTTL     time.Duration
}

// NewScoreboardService создает сервис табло. cacheRepo может быть nil.
func NewScoreboardService(
	sessionRepo repository.GameSessionRepository,
	cacheRepo repository.CacheRepository,
	notifier Notifier,
	defaultLimit int,
	cacheTTL time.Duration,
) *ScoreboardService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &ScoreboardService{
		sessionRepo:  sessionRepo,
		cacheRepo:    cacheRepo,
		notifier:     notifier,
		defaultLimit: defaultLimit,
		cacheTTL:     cacheTTL,
	}
}

// DefaultLimit возвращает размер табло по умолчанию
func (s *ScoreboardService) DefaultLimit() int {
	return s.defaultLimit
}

// Top возвращает лучшие завершенные игры: total_score DESC, затем completed_at ASC.
// Таблица лимита по умолчанию может быть отдана из кеша.
func (s *ScoreboardService) Top(ctx context.Context, limit int) ([]ScoreboardEntry, error) {
	limit = s.normalizeLimit(limit)

	cacheable := s.cacheRepo != nil && s.cacheTTL > 0 && limit == s.defaultLimit
	if cacheable {
		var cached []ScoreboardEntry
		err := s.cacheRepo.GetJSON(ctx, scoreboardCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ScoreboardService] Ошибка чтения кеша табло: %v", err)
		}
	}

	entries, err := s.TopFresh(ctx, limit)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cacheRepo.SetJSON(ctx, scoreboardCacheKey, entries, s.cacheTTL); err != nil {
			log.Printf("[ScoreboardService] Ошибка записи кеша табло: %v", err)
		}
	}
	return entries, nil
}

// TopFresh всегда читает таблицу из БД, минуя кеш.
// Используется живыми зрителями: после сигнала они должны увидеть зафиксированный результат.
func (s *ScoreboardService) TopFresh(ctx context.Context, limit int) ([]ScoreboardEntry, error) {
	sessions, err := s.sessionRepo.TopCompleted(ctx, s.normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return buildScoreboard(sessions), nil
}

func (s *ScoreboardService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > maxScoreboardLimit {
		return maxScoreboardLimit
	}
	return limit
}

// StandingsChanged сбрасывает кеш и будит всех зрителей табло
func (s *ScoreboardService) StandingsChanged(ctx context.Context) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(ctx, scoreboardCacheKey); err != nil {
			log.Printf("[ScoreboardService] Ошибка сброса кеша табло: %v", err)
		}
	}
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

func buildScoreboard(sessions []entity.GameSession) []ScoreboardEntry {
	entries := make([]ScoreboardEntry, 0, len(sessions))
	for i, session := range sessions {
		entry := ScoreboardEntry{
			Rank:           i + 1,
			Score:          session.TotalScore,
			CorrectAnswers: session.CorrectAnswers,
			WrongAnswers:   session.WrongAnswers,
			CompletedAt:    session.CompletedAt,
		}
		if session.Player != nil {
			entry.PlayerName = session.Player.FullName()
			entry.Email = session.Player.Email
			entry.PhoneNumber = session.Player.PhoneNumber
		}
		entries = append(entries, entry)
	}
	return entries
}
