package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/internal/service"
)

type MockGamePlay struct {
	mock.Mock
}

func (m *MockGamePlay) RegisterPlayer(ctx context.Context, input service.PlayerInput) (*entity.Player, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (m *MockGamePlay) StartGame(ctx context.Context, playerID uint) (*service.StartedGame, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StartedGame), args.Error(1)
}

func (m *MockGamePlay) SubmitGame(ctx context.Context, sessionID uint, submissions []service.AnswerSubmission) (*service.SubmitOutcome, error) {
	args := m.Called(ctx, sessionID, submissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitOutcome), args.Error(1)
}

func newGameRouter(games GamePlay) *gin.Engine {
	h := NewGameHandler(games)
	r := gin.New()
	r.POST("/api/games/players", h.RegisterPlayer)
	r.POST("/api/games/start", h.StartGame)
	r.POST("/api/games/:id/submit", middleware.ExtractUintParam("id", sessionIDKey), h.SubmitGame)
	return r
}

func TestGameHandler_RegisterPlayer(t *testing.T) {
	games := new(MockGamePlay)
	router := newGameRouter(games)

	input := service.PlayerInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	games.On("RegisterPlayer", mock.Anything, input).
		Return(&entity.Player{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil)

	w := performRequest(router, http.MethodPost, "/api/games/players", map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, float64(7), body["id"])
	games.AssertExpectations(t)
}

func TestGameHandler_RegisterPlayer_BindingErrors(t *testing.T) {
	games := new(MockGamePlay)
	router := newGameRouter(games)

	tests := []struct {
		name string
		body interface{}
	}{
		{"invalid email", map[string]string{"first_name": "A", "last_name": "B", "email": "not-an-email"}},
		{"missing last name", map[string]string{"first_name": "A", "email": "a@b.co"}},
		{"malformed json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/games/players", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	games.AssertNotCalled(t, "RegisterPlayer", mock.Anything, mock.Anything)
}

func TestGameHandler_StartGame_HidesAnswers(t *testing.T) {
	games := new(MockGamePlay)
	router := newGameRouter(games)

	explanation := "because"
	games.On("StartGame", mock.Anything, uint(7)).Return(&service.StartedGame{
		SessionID:    11,
		TimerSeconds: 20,
		Questions: []entity.Question{
			{ID: 1, QuestionEN: "Q1", QuestionFR: "Q1 fr", CorrectAnswer: entity.AnswerRed, ExplanationEN: &explanation, GreenLabelEN: "Green"},
		},
	}, nil)

	w := performRequest(router, http.MethodPost, "/api/games/start", map[string]uint{"player_id": 7}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_answer")
	assert.NotContains(t, w.Body.String(), "explanation")

	var body struct {
		GameSessionID uint `json:"game_session_id"`
		TimerSeconds  int  `json:"timer_seconds"`
		Questions     []struct {
			ID           uint   `json:"id"`
			QuestionEN   string `json:"question_text_en"`
			GreenLabelEN string `json:"green_label_en"`
		} `json:"questions"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, uint(11), body.GameSessionID)
	assert.Equal(t, 20, body.TimerSeconds)
	require.Len(t, body.Questions, 1)
	assert.Equal(t, "Q1", body.Questions[0].QuestionEN)
	assert.Equal(t, "Green", body.Questions[0].GreenLabelEN)
}

func TestGameHandler_StartGame_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown player", apperrors.ErrNotFound, http.StatusNotFound, "Player not found"},
		{"not enough questions", &service.NotEnoughQuestionsError{Need: 15, Found: 2}, http.StatusBadRequest, "Not enough questions available. Need 15, found 2"},
		{"settings missing", service.ErrSettingsMissing, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := new(MockGamePlay)
			games.On("StartGame", mock.Anything, uint(3)).Return(nil, tt.err)

			w := performRequest(newGameRouter(games), http.MethodPost, "/api/games/start", map[string]uint{"player_id": 3}, nil)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			decodeBody(t, w, &body)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestGameHandler_SubmitGame(t *testing.T) {
	games := new(MockGamePlay)
	router := newGameRouter(games)

	green := entity.AnswerGreen
	completedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	expected := []service.AnswerSubmission{
		{QuestionID: 1, PlayerAnswer: &green, TimeTaken: 10},
		{QuestionID: 2, PlayerAnswer: nil, TimeTaken: 20},
	}
	games.On("SubmitGame", mock.Anything, uint(11), expected).Return(&service.SubmitOutcome{
		Session: &entity.GameSession{
			ID: 11, PlayerID: 7, Status: entity.SessionStatusCompleted,
			TotalScore: 125, CorrectAnswers: 1, Unanswered: 1, CompletedAt: &completedAt,
		},
		Rank:         1,
		TotalPlayers: 4,
		Review:       []service.ReviewItem{{QuestionID: 1, CorrectAnswer: entity.AnswerGreen, PlayerAnswer: &green, PointsEarned: 125}},
	}, nil)

	w := performRequest(router, http.MethodPost, "/api/games/11/submit", map[string]interface{}{
		"answers": []map[string]interface{}{
			{"question_id": 1, "player_answer": "green", "time_taken": 10},
			{"question_id": 2, "player_answer": nil, "time_taken": 20},
		},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		GameSession struct {
			ID         uint   `json:"id"`
			Status     string `json:"status"`
			TotalScore int    `json:"total_score"`
		} `json:"game_session"`
		Rank         int64                `json:"rank"`
		TotalPlayers int64                `json:"total_players"`
		Review       []service.ReviewItem `json:"review"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 125, body.GameSession.TotalScore)
	assert.Equal(t, entity.SessionStatusCompleted, body.GameSession.Status)
	assert.Equal(t, int64(1), body.Rank)
	assert.Equal(t, int64(4), body.TotalPlayers)
	require.Len(t, body.Review, 1)
	assert.Equal(t, 125, body.Review[0].PointsEarned)
	games.AssertExpectations(t)
}

func TestGameHandler_SubmitGame_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"already completed", fmt.Errorf("%w: Game already completed", apperrors.ErrInvalidState), http.StatusBadRequest, "Game already completed"},
		{"unknown session", apperrors.ErrNotFound, http.StatusNotFound, "Game session not found"},
		{"bad answer", fmt.Errorf("%w: player_answer must be 'green', 'red' or null (question 1)", apperrors.ErrValidation), http.StatusBadRequest, "player_answer must be 'green', 'red' or null (question 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := new(MockGamePlay)
			games.On("SubmitGame", mock.Anything, uint(5), mock.Anything).Return(nil, tt.err)

			w := performRequest(newGameRouter(games), http.MethodPost, "/api/games/5/submit", map[string]interface{}{"answers": []interface{}{}}, nil)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			decodeBody(t, w, &body)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestGameHandler_SubmitGame_InvalidSessionID(t *testing.T) {
	games := new(MockGamePlay)
	w := performRequest(newGameRouter(games), http.MethodPost, "/api/games/abc/submit", map[string]interface{}{"answers": []interface{}{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	games.AssertNotCalled(t, "SubmitGame", mock.Anything, mock.Anything, mock.Anything)
}
