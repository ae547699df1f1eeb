package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockMatchService mocks the match.Service interface
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

// MockReactionService mocks the reaction.Service interface
type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) HandleReaction(ctx context.Context, ev domain.ReactionEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockReactionService) RecordPrediction(ctx context.Context, userID int64, username string, matchID uuid.UUID, optionIndex int) error {
	args := m.Called(ctx, userID, username, matchID, optionIndex)
	return args.Error(0)
}

func (m *MockReactionService) PredictionsForUser(ctx context.Context, username string, period int) ([]domain.Prediction, error) {
	args := m.Called(ctx, username, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}
