package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockPlayerRepo реализует repository.PlayerRepository
type MockPlayerRepo struct {
	mock.Mock
}

func (m *MockPlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepo) GetByID(ctx context.Context, id uint) (*entity.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) List(ctx context.Context, includeInactive bool, limit, offset int) ([]entity.Question, error) {
	args := m.Called(ctx, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepo) CountAll(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepo) RandomActiveIDs(ctx context.Context, limit int) ([]uint, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockCategoryRepo реализует repository.CategoryRepository
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepo) ListWithCounts(ctx context.Context, includeInactive bool) ([]entity.CategoryWithCount, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CategoryWithCount), args.Error(1)
}

func (m *MockCategoryRepo) CountActiveQuestions(ctx context.Context, categoryID uint) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepo реализует repository.SettingsRepository
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*entity.GameSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSettings), args.Error(1)
}

func (m *MockSettingsRepo) Save(ctx context.Context, settings *entity.GameSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepo) CreateIfMissing(ctx context.Context, defaults *entity.GameSettings) (*entity.GameSettings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSettings), args.Error(1)
}

// MockSessionRepo реализует repository.GameSessionRepository.
// Transaction вызывает fn с самим моком; ошибка fn возвращается как ошибка транзакции.
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Transaction(ctx context.Context, fn func(tx repository.GameSessionRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockSessionRepo) CreateWithPlaceholders(ctx context.Context, session *entity.GameSession, questionIDs []uint) error {
	args := m.Called(ctx, session, questionIDs)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id uint) (*entity.GameSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSession), args.Error(1)
}

func (m *MockSessionRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.GameSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSession), args.Error(1)
}

func (m *MockSessionRepo) GetAnswers(ctx context.Context, sessionID uint) ([]entity.GameAnswer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameAnswer), args.Error(1)
}

func (m *MockSessionRepo) UpdateAnswers(ctx context.Context, answers []entity.GameAnswer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *entity.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) UpdateScore(ctx context.Context, id uint, totalScore int) error {
	args := m.Called(ctx, id, totalScore)
	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepo) CountCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepo) CountCompletedAbove(ctx context.Context, score int) (int64, error) {
	args := m.Called(ctx, score)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepo) TopCompleted(ctx context.Context, limit int) ([]entity.GameSession, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameSession), args.Error(1)
}

func (m *MockSessionRepo) ListCompleted(ctx context.Context, limit, offset int) ([]entity.GameSession, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameSession), args.Error(1)
}

func (m *MockSessionRepo) GetWithDetails(ctx context.Context, id uint) (*entity.GameSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSession), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ============================================================================
// Прочие тестовые двойники
// ============================================================================

// countingNotifier считает вызовы Notify и StandingsChanged
type countingNotifier struct {
	mu     sync.Mutex
	calls  int
	ctxErr error
}

func (n *countingNotifier) Notify() {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *countingNotifier) StandingsChanged(ctx context.Context) {
	n.mu.Lock()
	n.ctxErr = ctx.Err()
	n.mu.Unlock()
	n.Notify()
}

// CtxErr возвращает ctx.Err() последнего вызова StandingsChanged
func (n *countingNotifier) CtxErr() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ctxErr
}

func (n *countingNotifier) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// MockResultMailer реализует ResultMailer
type MockResultMailer struct {
	mock.Mock
}

func (m *MockResultMailer) SendResultSummary(ctx context.Context, player *entity.Player, summary ResultSummary) error {
	args := m.Called(ctx, player, summary)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
