package reaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// MockPredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) UpsertPrediction(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPredictionRepository) ClearPrediction(ctx context.Context, userID int64, matchID uuid.UUID) error {
	args := m.Called(ctx, userID, matchID)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetPrediction(ctx context.Context, userID int64, matchID uuid.UUID) (*domain.Prediction, error) {
	args := m.Called(ctx, userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListPredictionsByUserAndPeriod(ctx context.Context, userID int64, period int) ([]domain.Prediction, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

// MockMatchService
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) Schedule(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time, period, winnerPoints, scorelinePoints int) (*domain.Match, error) {
	args := m.Called(ctx, team1, team2, format, date, period, winnerPoints, scorelinePoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockMatchService) Get(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockMatchService) Find(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error) {
	args := m.Called(ctx, team1, team2, format, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockMatchService) List(ctx context.Context) ([]domain.Match, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockMatchService) Delete(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) error {
	args := m.Called(ctx, team1, team2, format, date)
	return args.Error(0)
}

func (m *MockMatchService) Settle(ctx context.Context, matchID uuid.UUID, optionIndex int) (map[int64]int, error) {
	args := m.Called(ctx, matchID, optionIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockMatchService) ClearResults(ctx context.Context, period int) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockMatchService) ResetStage(ctx context.Context, period int) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// MockBonusService
type MockBonusService struct {
	mock.Mock
}

func (m *MockBonusService) CreateQuestion(ctx context.Context, q *domain.BonusQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockBonusService) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.BonusQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BonusQuestion), args.Error(1)
}

func (m *MockBonusService) ListQuestions(ctx context.Context) ([]domain.BonusQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BonusQuestion), args.Error(1)
}

func (m *MockBonusService) AddAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error {
	args := m.Called(ctx, userID, questionID, optionIndex)
	return args.Error(0)
}

func (m *MockBonusService) RemoveAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error {
	args := m.Called(ctx, userID, questionID, optionIndex)
	return args.Error(0)
}

func (m *MockBonusService) MarkCorrect(ctx context.Context, questionID uuid.UUID, optionIndex int) error {
	args := m.Called(ctx, questionID, optionIndex)
	return args.Error(0)
}

func (m *MockBonusService) Finalize(ctx context.Context, questionID uuid.UUID) (map[int64]int, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

// MockStandingsService
type MockStandingsService struct {
	mock.Mock
}

func (m *MockStandingsService) Standings(ctx context.Context) ([]domain.Standing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Standing), args.Error(1)
}

func (m *MockStandingsService) EnsureBackfill(ctx context.Context, userID int64, period int) error {
	args := m.Called(ctx, userID, period)
	return args.Error(0)
}

func (m *MockStandingsService) Recalculate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStandingsService) PublishStandings(ctx context.Context) {
	m.Called(ctx)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) EnsureUser(ctx context.Context, id int64, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
