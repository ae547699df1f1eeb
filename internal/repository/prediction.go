package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Prediction defines the data access for stored predictions
type Prediction interface {
	// UpsertPrediction replaces any existing prediction for
	// (user, match) atomically, preserving accumulated points
	UpsertPrediction(ctx context.Context, p *domain.Prediction) error

	// ClearPrediction removes a prediction on reaction retraction
	ClearPrediction(ctx context.Context, userID int64, matchID uuid.UUID) error

	GetPrediction(ctx context.Context, userID int64, matchID uuid.UUID) (*domain.Prediction, error)
	ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error)
	ListPredictionsByUserAndPeriod(ctx context.Context, userID int64, period int) ([]domain.Prediction, error)
}
