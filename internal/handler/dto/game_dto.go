package dto

import (
	"time"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/service"
)

// RegisterPlayerRequest - регистрация игрока перед игрой
type RegisterPlayerRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
}

// StartGameRequest - запрос на старт игры
type StartGameRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// AnswerRequest - ответ на один вопрос. player_answer = null означает "не ответил".
type AnswerRequest struct {
	QuestionID   uint    `json:"question_id" binding:"required"`
	PlayerAnswer *string `json:"player_answer"`
	TimeTaken    float64 `json:"time_taken"`
}

// SubmitGameRequest - все ответы игры одним запросом
type SubmitGameRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"dive"`
}

// Submissions преобразует запрос во входные данные сервиса
func (r SubmitGameRequest) Submissions() []service.AnswerSubmission {
	subs := make([]service.AnswerSubmission, len(r.Answers))
	for i, a := range r.Answers {
		subs[i] = service.AnswerSubmission{
			QuestionID:   a.QuestionID,
			PlayerAnswer: a.PlayerAnswer,
			TimeTaken:    a.TimeTaken,
		}
	}
	return subs
}

// GameQuestionResponse - вопрос для игрока, без правильного ответа и пояснений
type GameQuestionResponse struct {
	ID           uint    `json:"id"`
	QuestionEN   string  `json:"question_text_en"`
	QuestionFR   string  `json:"question_text_fr"`
	QuestionType string  `json:"question_type"`
	MediaURL     *string `json:"media_url"`
	GreenLabelEN string  `json:"green_label_en"`
	GreenLabelFR string  `json:"green_label_fr"`
	RedLabelEN   string  `json:"red_label_en"`
	RedLabelFR   string  `json:"red_label_fr"`
	CategoryID   *uint   `json:"category_id"`
}

// StartGameResponse - созданная сессия и вопросы в порядке показа
type StartGameResponse struct {
	GameSessionID uint                   `json:"game_session_id"`
	Questions     []GameQuestionResponse `json:"questions"`
	TimerSeconds  int                    `json:"timer_seconds"`
}

// NewStartGameResponse создает DTO для начатой игры
func NewStartGameResponse(game *service.StartedGame) *StartGameResponse {
	questions := make([]GameQuestionResponse, len(game.Questions))
	for i, q := range game.Questions {
		questions[i] = GameQuestionResponse{
			ID:           q.ID,
			QuestionEN:   q.QuestionEN,
			QuestionFR:   q.QuestionFR,
			QuestionType: q.QuestionType,
			MediaURL:     q.MediaURL,
			GreenLabelEN: q.GreenLabelEN,
			GreenLabelFR: q.GreenLabelFR,
			RedLabelEN:   q.RedLabelEN,
			RedLabelFR:   q.RedLabelFR,
			CategoryID:   q.CategoryID,
		}
	}
	return &StartGameResponse{
		GameSessionID: game.SessionID,
		Questions:     questions,
		TimerSeconds:  game.TimerSeconds,
	}
}

// GameSessionResponse - итоговые показатели сессии
type GameSessionResponse struct {
	ID             uint       `json:"id"`
	PlayerID       uint       `json:"player_id"`
	Status         string     `json:"status"`
	TotalScore     int        `json:"total_score"`
	CorrectAnswers int        `json:"correct_answers"`
	WrongAnswers   int        `json:"wrong_answers"`
	Unanswered     int        `json:"unanswered"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// NewGameSessionResponse создает DTO сессии без ответов и снимка настроек
func NewGameSessionResponse(s *entity.GameSession) *GameSessionResponse {
	return &GameSessionResponse{
		ID:             s.ID,
		PlayerID:       s.PlayerID,
		Status:         s.Status,
		TotalScore:     s.TotalScore,
		CorrectAnswers: s.CorrectAnswers,
		WrongAnswers:   s.WrongAnswers,
		Unanswered:     s.Unanswered,
		StartedAt:      s.StartedAt,
		CompletedAt:    s.CompletedAt,
	}
}

// SubmitGameResponse - результат игры с местом и разбором ответов
type SubmitGameResponse struct {
	GameSession  *GameSessionResponse `json:"game_session"`
	Rank         int64                `json:"rank"`
	TotalPlayers int64                `json:"total_players"`
	Review       []service.ReviewItem `json:"review"`
}

// NewSubmitGameResponse создает DTO результата игры
func NewSubmitGameResponse(outcome *service.SubmitOutcome) *SubmitGameResponse {
	review := outcome.Review
	if review == nil {
		review = []service.ReviewItem{}
	}
	return &SubmitGameResponse{
		GameSession:  NewGameSessionResponse(outcome.Session),
		Rank:         outcome.Rank,
		TotalPlayers: outcome.TotalPlayers,
		Review:       review,
	}
}
