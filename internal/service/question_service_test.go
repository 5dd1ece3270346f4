package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

func TestQuestionService_Create_AppliesLabelDefaults(t *testing.T) {
	questions := new(MockQuestionRepo)
	ctx := context.Background()

	questions.On("Create", ctx, mock.MatchedBy(func(q *entity.Question) bool {
		return q.GreenLabelEN == "Green" && q.RedLabelFR == "Rouge" && q.Difficulty == 1 && q.QuestionType == "text"
	})).Return(nil)

	s := NewQuestionService(questions, new(MockCategoryRepo))
	_, err := s.Create(ctx, &entity.Question{QuestionEN: "Is Go compiled?", QuestionFR: "Go est-il compilé ?", CorrectAnswer: "green", IsActive: true})

	require.NoError(t, err)
	questions.AssertExpectations(t)
}

func TestQuestionService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		question entity.Question
	}{
		{"нет текста", entity.Question{QuestionFR: "x", CorrectAnswer: "green"}},
		{"неверный ответ", entity.Question{QuestionEN: "x", QuestionFR: "x", CorrectAnswer: "yellow"}},
		{"сложность 6", entity.Question{QuestionEN: "x", QuestionFR: "x", CorrectAnswer: "red", Difficulty: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := new(MockQuestionRepo)
			q := tt.question
			_, err := NewQuestionService(questions, new(MockCategoryRepo)).Create(context.Background(), &q)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestQuestionService_Create_UnknownCategory(t *testing.T) {
	questions := new(MockQuestionRepo)
	categories := new(MockCategoryRepo)
	ctx := context.Background()
	categoryID := uint(8)
	categories.On("GetByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound)

	_, err := NewQuestionService(questions, categories).Create(ctx, &entity.Question{
		QuestionEN: "x", QuestionFR: "x", CorrectAnswer: "green", CategoryID: &categoryID,
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestQuestionService_Update_Partial(t *testing.T) {
	questions := new(MockQuestionRepo)
	ctx := context.Background()
	existing := &entity.Question{ID: 3, QuestionEN: "Old", QuestionFR: "Ancien", CorrectAnswer: "green", Difficulty: 2}
	existing.ApplyLabelDefaults()

	questions.On("GetByID", ctx, uint(3)).Return(existing, nil)
	questions.On("Update", ctx, mock.MatchedBy(func(q *entity.Question) bool {
		return q.QuestionEN == "New" && q.QuestionFR == "Ancien" && q.CorrectAnswer == "red" && q.Difficulty == 2
	})).Return(nil)

	got, err := NewQuestionService(questions, new(MockCategoryRepo)).Update(ctx, 3, QuestionUpdate{
		QuestionEN:    strPtr("New"),
		CorrectAnswer: strPtr("red"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New", got.QuestionEN)
	questions.AssertExpectations(t)
}

func TestQuestionService_Delete_UsedByGames(t *testing.T) {
	questions := new(MockQuestionRepo)
	ctx := context.Background()
	questions.On("Delete", ctx, uint(4)).Return(apperrors.ErrConflict)

	err := NewQuestionService(questions, new(MockCategoryRepo)).Delete(ctx, 4)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "deactivate it instead")
}

func TestQuestionService_Count(t *testing.T) {
	questions := new(MockQuestionRepo)
	ctx := context.Background()
	questions.On("CountAll", ctx).Return(int64(20), int64(18), nil)

	got, err := NewQuestionService(questions, nil).Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, &QuestionCount{Total: 20, Active: 18}, got)
}

func TestQuestionService_SeedDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("пустой банк заполняется", func(t *testing.T) {
		questions := new(MockQuestionRepo)
		questions.On("CountAll", ctx).Return(int64(0), int64(0), nil)
		questions.On("CreateBatch", ctx, mock.MatchedBy(func(qs []entity.Question) bool {
			return len(qs) == len(DefaultQuestions())
		})).Return(nil)

		n, err := NewQuestionService(questions, nil).SeedDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(DefaultQuestions()), n)
	})

	t.Run("непустой банк не трогается", func(t *testing.T) {
		questions := new(MockQuestionRepo)
		questions.On("CountAll", ctx).Return(int64(3), int64(3), nil)

		n, err := NewQuestionService(questions, nil).SeedDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		questions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}

func TestDefaultQuestions_AreValidAndBilingual(t *testing.T) {
	questions := DefaultQuestions()
	require.GreaterOrEqual(t, len(questions), 15, "набора должно хватать на игру с настройками по умолчанию")

	seenRed := false
	for _, q := range questions {
		assert.NotEmpty(t, q.QuestionEN)
		assert.NotEmpty(t, q.QuestionFR)
		assert.True(t, entity.IsValidAnswer(q.CorrectAnswer))
		assert.True(t, q.IsActive)
		require.NotNil(t, q.ExplanationEN)
		require.NotNil(t, q.ExplanationFR)
		if q.CorrectAnswer == entity.AnswerRed {
			seenRed = true
		}
	}
	assert.True(t, seenRed, "правильный ответ не всегда зеленый")
}
