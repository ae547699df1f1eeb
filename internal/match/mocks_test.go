package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateMatch(ctx context.Context, match *domain.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockRepository) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockRepository) FindMatch(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error) {
	args := m.Called(ctx, team1, team2, format, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MockRepository) ListMatches(ctx context.Context) ([]domain.Match, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockRepository) ListSettledMatchesByPeriod(ctx context.Context, period int) ([]domain.Match, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *MockRepository) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockStandingsRepository
type MockStandingsRepository struct {
	mock.Mock
}

func (m *MockStandingsRepository) AddStandingPoints(ctx context.Context, userID int64, period, delta int) error {
	args := m.Called(ctx, userID, period, delta)
	return args.Error(0)
}

func (m *MockStandingsRepository) SetStandingPoints(ctx context.Context, userID int64, period, points int) error {
	args := m.Called(ctx, userID, period, points)
	return args.Error(0)
}

func (m *MockStandingsRepository) DeleteStandingsByPeriod(ctx context.Context, period int) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockStandingsRepository) ListStandings(ctx context.Context) ([]domain.StandingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandingEntry), args.Error(1)
}

func (m *MockStandingsRepository) MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (int, bool, error) {
	args := m.Called(ctx, period, excludeUsername)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockStandingsRepository) LatestInteractionPeriod(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStandingsRepository) RecordBackfill(ctx context.Context, userID int64, period, points int) error {
	args := m.Called(ctx, userID, period, points)
	return args.Error(0)
}

func (m *MockStandingsRepository) ListBackfills(ctx context.Context) ([]domain.StandingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandingEntry), args.Error(1)
}

func (m *MockStandingsRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) RecordResult(ctx context.Context, matchID uuid.UUID, winner, scoreline string) (int64, error) {
	args := m.Called(ctx, matchID, winner, scoreline)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *MockTx) AddPredictionPoints(ctx context.Context, userID int64, matchID uuid.UUID, delta int) error {
	args := m.Called(ctx, userID, matchID, delta)
	return args.Error(0)
}

func (m *MockTx) ListAwardedPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *MockTx) ZeroPredictionPoints(ctx context.Context, matchID uuid.UUID) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MockTx) ClearMatchResults(ctx context.Context, period int) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockTx) SetAnswerPoints(ctx context.Context, userID int64, questionID uuid.UUID, points int) error {
	args := m.Called(ctx, userID, questionID, points)
	return args.Error(0)
}

func (m *MockTx) MarkQuestionFinalized(ctx context.Context, questionID uuid.UUID) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

func (m *MockTx) AddStandingPoints(ctx context.Context, userID int64, period, delta int) error {
	args := m.Called(ctx, userID, period, delta)
	return args.Error(0)
}

func (m *MockTx) SetStandingPoints(ctx context.Context, userID int64, period, points int) error {
	args := m.Called(ctx, userID, period, points)
	return args.Error(0)
}

func (m *MockTx) DeleteAllStandings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetBackfill(ctx context.Context, userID int64, period int) (int, bool, error) {
	args := m.Called(ctx, userID, period)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockTx) RecordBackfill(ctx context.Context, userID int64, period, points int) error {
	args := m.Called(ctx, userID, period, points)
	return args.Error(0)
}

func (m *MockTx) MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (int, bool, error) {
	args := m.Called(ctx, period, excludeUsername)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockTx) SumPredictionPoints(ctx context.Context) ([]domain.StandingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandingEntry), args.Error(1)
}

func (m *MockTx) SumBonusPoints(ctx context.Context) ([]domain.StandingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandingEntry), args.Error(1)
}

func (m *MockTx) ListBackfills(ctx context.Context) ([]domain.StandingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandingEntry), args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
