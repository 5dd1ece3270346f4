package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// ExportRow - строка выгрузки результатов
type ExportRow struct {
	Rank           int
	PlayerName     string
	Email          string
	PhoneNumber    string
	Score          int
	CorrectAnswers int
	WrongAnswers   int
	Unanswered     int
	CompletedAt    *time.Time
}

// ResultService предоставляет администратору методы для работы с результатами игр
type ResultService struct {
	sessionRepo repository.GameSessionRepository
	standings   StandingsNotifier
}

// NewResultService создает новый сервис результатов
func NewResultService(sessionRepo repository.GameSessionRepository, standings StandingsNotifier) *ResultService {
	return &ResultService{
		sessionRepo: sessionRepo,
		standings:   standings,
	}
}

// List возвращает завершенные игры, новые первыми
func (s *ResultService) List(ctx context.Context, skip, limit int) ([]entity.GameSession, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	sessions, err := s.sessionRepo.ListCompleted(ctx, limit, skip)
	if err != nil {
		log.Printf("[ResultService] Ошибка при получении результатов (skip %d, limit %d): %v", skip, limit, err)
		return nil, err
	}
	return sessions, nil
}

// Get возвращает сессию с игроком и ответами
func (s *ResultService) Get(ctx context.Context, id uint) (*entity.GameSession, error) {
	return s.sessionRepo.GetWithDetails(ctx, id)
}

// Delete удаляет сессию вместе с ответами
func (s *ResultService) Delete(ctx context.Context, id uint) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[ResultService] Игра #%d удалена администратором", id)
	s.notify(ctx)
	return nil
}

// UpdateScore вручную меняет итоговый счет и оповещает табло
func (s *ResultService) UpdateScore(ctx context.Context, id uint, totalScore int) (*entity.GameSession, error) {
	if totalScore < 0 {
		return nil, fmt.Errorf("%w: Invalid total_score", apperrors.ErrValidation)
	}

	if err := s.sessionRepo.UpdateScore(ctx, id, totalScore); err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("[ResultService] Счет игры #%d изменен на %d", id, totalScore)
	// незавершенные игры в табло не попадают
	if session.IsCompleted() {
		s.notify(ctx)
	}
	return session, nil
}

// ExportRows возвращает все завершенные игры в порядке табло с местами
func (s *ResultService) ExportRows(ctx context.Context) ([]ExportRow, error) {
	sessions, err := s.sessionRepo.TopCompleted(ctx, -1)
	if err != nil {
		return nil, err
	}
	return buildExportRows(sessions), nil
}

// buildExportRows присваивает места: одинаковый счет дает одинаковое место (1, 1, 3)
func buildExportRows(sessions []entity.GameSession) []ExportRow {
	rows := make([]ExportRow, 0, len(sessions))
	rank := 0
	for i, session := range sessions {
		if i == 0 || session.TotalScore != sessions[i-1].TotalScore {
			rank = i + 1
		}
		row := ExportRow{
			Rank:           rank,
			Score:          session.TotalScore,
			CorrectAnswers: session.CorrectAnswers,
			WrongAnswers:   session.WrongAnswers,
			Unanswered:     session.Unanswered,
			CompletedAt:    session.CompletedAt,
		}
		if p := session.Player; p != nil {
			row.PlayerName = p.FullName()
			row.Email = p.Email
			if p.PhoneNumber != nil {
				row.PhoneNumber = *p.PhoneNumber
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *ResultService) notify(ctx context.Context) {
	if s.standings != nil {
		s.standings.StandingsChanged(context.WithoutCancel(ctx))
	}
}
