package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// QuestionUpdate - частичное обновление вопроса, nil означает "не менять"
type QuestionUpdate struct {
	QuestionEN    *string
	QuestionFR    *string
	QuestionType  *string
	MediaURL      *string
	CorrectAnswer *string
	GreenLabelEN  *string
	GreenLabelFR  *string
	RedLabelEN    *string
	RedLabelFR    *string
	ExplanationEN *string
	ExplanationFR *string
	IsActive      *bool
	Difficulty    *int
	CategoryID    *uint
}

// QuestionCount - общее количество вопросов и количество активных
type QuestionCount struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// QuestionService управляет банком вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
}

// NewQuestionService создает сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, categoryRepo repository.CategoryRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

// List возвращает вопросы по возрастанию id
func (s *QuestionService) List(ctx context.Context, includeInactive bool, skip, limit int) ([]entity.Question, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.questionRepo.List(ctx, includeInactive, limit, skip)
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create проверяет и сохраняет новый вопрос
func (s *QuestionService) Create(ctx context.Context, question *entity.Question) (*entity.Question, error) {
	question.ID = 0
	question.QuestionEN = strings.TrimSpace(question.QuestionEN)
	question.QuestionFR = strings.TrimSpace(question.QuestionFR)
	question.ApplyLabelDefaults()

	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		log.Printf("[QuestionService] Ошибка создания вопроса: %v", err)
		return nil, err
	}
	log.Printf("[QuestionService] Создан вопрос #%d", question.ID)
	return question, nil
}

// Update частично обновляет вопрос
func (s *QuestionService) Update(ctx context.Context, id uint, update QuestionUpdate) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&question.QuestionEN, update.QuestionEN)
	setString(&question.QuestionFR, update.QuestionFR)
	setString(&question.QuestionType, update.QuestionType)
	setString(&question.CorrectAnswer, update.CorrectAnswer)
	setString(&question.GreenLabelEN, update.GreenLabelEN)
	setString(&question.GreenLabelFR, update.GreenLabelFR)
	setString(&question.RedLabelEN, update.RedLabelEN)
	setString(&question.RedLabelFR, update.RedLabelFR)
	if update.MediaURL != nil {
		question.MediaURL = update.MediaURL
	}
	if update.ExplanationEN != nil {
		question.ExplanationEN = update.ExplanationEN
	}
	if update.ExplanationFR != nil {
		question.ExplanationFR = update.ExplanationFR
	}
	if update.IsActive != nil {
		question.IsActive = *update.IsActive
	}
	if update.Difficulty != nil {
		question.Difficulty = *update.Difficulty
	}
	if update.CategoryID != nil {
		question.CategoryID = update.CategoryID
	}
	question.ApplyLabelDefaults()

	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: Question is used in game sessions, deactivate it instead", apperrors.ErrConflict)
		}
		return err
	}
	log.Printf("[QuestionService] Вопрос #%d удален", id)
	return nil
}

// Count возвращает общее количество вопросов и количество активных
func (s *QuestionService) Count(ctx context.Context) (*QuestionCount, error) {
	total, active, err := s.questionRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionCount{Total: total, Active: active}, nil
}

// SeedDefaults заполняет пустой банк вопросов встроенным набором.
// Возвращает количество добавленных вопросов.
func (s *QuestionService) SeedDefaults(ctx context.Context) (int, error) {
	total, _, err := s.questionRepo.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	questions := DefaultQuestions()
	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		return 0, fmt.Errorf("seed default questions: %w", err)
	}
	log.Printf("[QuestionService] Добавлено %d вопросов по умолчанию", len(questions))
	return len(questions), nil
}

func (s *QuestionService) validate(ctx context.Context, q *entity.Question) error {
	if q.QuestionEN == "" || q.QuestionFR == "" {
		return fmt.Errorf("%w: question_text_en and question_text_fr are required", apperrors.ErrValidation)
	}
	if !entity.IsValidAnswer(q.CorrectAnswer) {
		return fmt.Errorf("%w: correct_answer must be 'green' or 'red'", apperrors.ErrValidation)
	}
	if q.Difficulty < 1 || q.Difficulty > 5 {
		return fmt.Errorf("%w: difficulty must be between 1 and 5", apperrors.ErrValidation)
	}
	if q.CategoryID != nil && s.categoryRepo != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *q.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, *q.CategoryID)
			}
			return err
		}
	}
	return nil
}
