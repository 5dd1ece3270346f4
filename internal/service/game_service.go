package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// StandingsNotifier сообщает зрителям табло, что результаты изменились
type StandingsNotifier interface {
	StandingsChanged(ctx context.Context)
}

// PlayerInput - данные для регистрации игрока
type PlayerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
}

// StartedGame - новая сессия и ее вопросы в порядке показа
type StartedGame struct {
	SessionID    uint
	Questions    []entity.Question
	TimerSeconds int
}

// ReviewItem - разбор одного ответа после завершения игры
type ReviewItem struct {
	QuestionID    uint     `json:"question_id"`
	QuestionEN    string   `json:"question_text_en"`
	QuestionFR    string   `json:"question_text_fr"`
	CorrectAnswer string   `json:"correct_answer"`
	PlayerAnswer  *string  `json:"player_answer"`
	IsCorrect     *bool    `json:"is_correct"`
	ExplanationEN *string  `json:"explanation_en"`
	ExplanationFR *string  `json:"explanation_fr"`
	TimeTaken     *float64 `json:"time_taken"`
	PointsEarned  int      `json:"points_earned"`
	GreenLabelEN  string   `json:"green_label_en"`
	GreenLabelFR  string   `json:"green_label_fr"`
	RedLabelEN    string   `json:"red_label_en"`
	RedLabelFR    string   `json:"red_label_fr"`
	CategoryID    *uint    `json:"category_id"`
}

// SubmitOutcome - итог отправки ответов
type SubmitOutcome struct {
	Session      *entity.GameSession
	Rank         int64
	TotalPlayers int64
	Review       []ReviewItem
}

// GameService управляет регистрацией игроков и жизненным циклом игровой сессии
type GameService struct {
	playerRepo   repository.PlayerRepository
	questionRepo repository.QuestionRepository
	settingsRepo repository.SettingsRepository
	sessionRepo  repository.GameSessionRepository
	ranker       *Ranker
	standings    StandingsNotifier
	mailer       ResultMailer
	now          func() time.Time
}

// NewGameService создает новый игровой сервис. mailer может быть nil.
func NewGameService(
	playerRepo repository.PlayerRepository,
	questionRepo repository.QuestionRepository,
	settingsRepo repository.SettingsRepository,
	sessionRepo repository.GameSessionRepository,
	standings StandingsNotifier,
	mailer ResultMailer,
) *GameService {
	return &GameService{
		playerRepo:   playerRepo,
		questionRepo: questionRepo,
		settingsRepo: settingsRepo,
		sessionRepo:  sessionRepo,
		ranker:       NewRanker(sessionRepo),
		standings:    standings,
		mailer:       mailer,
		now:          time.Now,
	}
}

// RegisterPlayer создает нового игрока. Повторная регистрация всегда создает новую запись.
func (s *GameService) RegisterPlayer(ctx context.Context, input PlayerInput) (*entity.Player, error) {
	firstName, err := normalizePersonName("first_name", input.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := normalizePersonName("last_name", input.LastName)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}

	var phone *string
	if input.PhoneNumber != nil {
		trimmed := strings.TrimSpace(*input.PhoneNumber)
		if utf8.RuneCountInString(trimmed) > 20 {
			return nil, fmt.Errorf("%w: phone_number must be at most 20 characters", apperrors.ErrValidation)
		}
		if trimmed != "" {
			phone = &trimmed
		}
	}

	player := &entity.Player{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phone,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		log.Printf("[GameService] Ошибка регистрации игрока %s: %v", email, err)
		return nil, err
	}

	log.Printf("[GameService] Зарегистрирован игрок #%d", player.ID)
	return player, nil
}

func normalizePersonName(field, value string) (string, error) {
	name := strings.TrimSpace(value)
	length := utf8.RuneCountInString(name)
	if length < 1 || length > 100 {
		return "", fmt.Errorf("%w: %s must be 1-100 characters", apperrors.ErrValidation, field)
	}
	if strings.Contains(name, "@") {
		return "", fmt.Errorf("%w: %s must not contain '@'", apperrors.ErrValidation, field)
	}
	return name, nil
}

// StartGame создает сессию со случайным набором активных вопросов и снимком настроек
func (s *GameService) StartGame(ctx context.Context, playerID uint) (*StartedGame, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}
	cfg := settings.Snapshot()

	_, active, err := s.questionRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if active < int64(cfg.QuestionsPerGame) {
		return nil, &NotEnoughQuestionsError{Need: cfg.QuestionsPerGame, Found: active}
	}

	ids, err := s.questionRepo.RandomActiveIDs(ctx, cfg.QuestionsPerGame)
	if err != nil {
		return nil, err
	}
	if len(ids) < cfg.QuestionsPerGame {
		// вопросы деактивировали между подсчетом и выборкой
		return nil, &NotEnoughQuestionsError{Need: cfg.QuestionsPerGame, Found: int64(len(ids))}
	}

	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	ordered, err := orderQuestions(ids, questions)
	if err != nil {
		return nil, err
	}

	session := &entity.GameSession{
		PlayerID:  playerID,
		Status:    entity.SessionStatusInProgress,
		StartedAt: s.now(),
		Config:    cfg,
	}
	if err := s.sessionRepo.CreateWithPlaceholders(ctx, session, ids); err != nil {
		log.Printf("[GameService] Ошибка создания сессии для игрока #%d: %v", playerID, err)
		return nil, err
	}

	log.Printf("[GameService] Игрок #%d начал игру #%d (%d вопросов)", playerID, session.ID, len(ids))
	return &StartedGame{
		SessionID:    session.ID,
		Questions:    ordered,
		TimerSeconds: cfg.TimerSeconds,
	}, nil
}

// orderQuestions раскладывает вопросы в порядке ids
func orderQuestions(ids []uint, questions []entity.Question) ([]entity.Question, error) {
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("question %d disappeared while starting game", id)
		}
		ordered = append(ordered, q)
	}
	return ordered, nil
}

// SubmitGame атомарно подсчитывает очки и завершает сессию,
// затем вычисляет место и оповещает зрителей табло
func (s *GameService) SubmitGame(ctx context.Context, sessionID uint, submissions []AnswerSubmission) (*SubmitOutcome, error) {
	if err := ValidateSubmissions(submissions); err != nil {
		return nil, err
	}

	var (
		completed *entity.GameSession
		answers   []entity.GameAnswer
	)
	err := s.sessionRepo.Transaction(ctx, func(tx repository.GameSessionRepository) error {
		session, err := tx.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsInProgress() {
			return fmt.Errorf("%w: Game already completed", apperrors.ErrInvalidState)
		}

		placeholders, err := tx.GetAnswers(ctx, sessionID)
		if err != nil {
			return err
		}

		now := s.now()
		scored := ScoreSession(session.Config, placeholders, submissions, now)
		if err := tx.UpdateAnswers(ctx, scored.Answers); err != nil {
			return err
		}

		session.Status = entity.SessionStatusCompleted
		session.TotalScore = scored.TotalScore
		session.CorrectAnswers = scored.CorrectAnswers
		session.WrongAnswers = scored.WrongAnswers
		session.Unanswered = scored.Unanswered
		session.CompletedAt = &now
		if err := tx.Update(ctx, session); err != nil {
			return err
		}

		completed = session
		answers = scored.Answers
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			log.Printf("[GameService] Ошибка завершения игры #%d: %v", sessionID, err)
		}
		return nil, err
	}

	// Сессия уже зафиксирована: зрители узнают об этом даже при отключении клиента
	if s.standings != nil {
		s.standings.StandingsChanged(context.WithoutCancel(ctx))
	}

	rank, totalPlayers, err := s.ranker.RankOf(ctx, completed.TotalScore)
	if err != nil {
		log.Printf("[GameService] Ошибка вычисления места для игры #%d: %v", sessionID, err)
		return nil, err
	}

	s.sendSummaryAsync(completed, rank, totalPlayers)

	log.Printf("[GameService] Игра #%d завершена: %d очков, место %d из %d",
		sessionID, completed.TotalScore, rank, totalPlayers)

	return &SubmitOutcome{
		Session:      completed,
		Rank:         rank,
		TotalPlayers: totalPlayers,
		Review:       buildReview(answers),
	}, nil
}

func buildReview(answers []entity.GameAnswer) []ReviewItem {
	review := make([]ReviewItem, 0, len(answers))
	for _, a := range answers {
		if a.Question == nil {
			continue
		}
		q := a.Question
		review = append(review, ReviewItem{
			QuestionID:    q.ID,
			QuestionEN:    q.QuestionEN,
			QuestionFR:    q.QuestionFR,
			CorrectAnswer: q.CorrectAnswer,
			PlayerAnswer:  a.PlayerAnswer,
			IsCorrect:     a.IsCorrect,
			ExplanationEN: q.ExplanationEN,
			ExplanationFR: q.ExplanationFR,
			TimeTaken:     a.TimeTaken,
			PointsEarned:  a.PointsEarned,
			GreenLabelEN:  q.GreenLabelEN,
			GreenLabelFR:  q.GreenLabelFR,
			RedLabelEN:    q.RedLabelEN,
			RedLabelFR:    q.RedLabelFR,
			CategoryID:    q.CategoryID,
		})
	}
	return review
}

// sendSummaryAsync отправляет игроку письмо с итогом в фоне; ошибки только логируются
func (s *GameService) sendSummaryAsync(session *entity.GameSession, rank, totalPlayers int64) {
	if s.mailer == nil {
		return
	}
	summary := ResultSummary{
		SessionID:      session.ID,
		TotalScore:     session.TotalScore,
		CorrectAnswers: session.CorrectAnswers,
		WrongAnswers:   session.WrongAnswers,
		Unanswered:     session.Unanswered,
		Rank:           rank,
		TotalPlayers:   totalPlayers,
	}
	playerID := session.PlayerID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		player, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			log.Printf("[GameService] Не удалось загрузить игрока #%d для письма: %v", playerID, err)
			return
		}
		if err := s.mailer.SendResultSummary(ctx, player, summary); err != nil {
			log.Printf("[GameService] Ошибка отправки итогов игры #%d: %v", summary.SessionID, err)
		}
	}()
}
