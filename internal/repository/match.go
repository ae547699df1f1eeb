package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Match defines the data access required by the match service
type Match interface {
	CreateMatch(ctx context.Context, match *domain.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	FindMatch(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error)
	ListMatches(ctx context.Context) ([]domain.Match, error)
	ListSettledMatchesByPeriod(ctx context.Context, period int) ([]domain.Match, error)

	// DeleteMatch cascades to the match's predictions
	DeleteMatch(ctx context.Context, id uuid.UUID) error

	// Transaction support
	BeginTx(ctx context.Context) (Tx, error)
}
