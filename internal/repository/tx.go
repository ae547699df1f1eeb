package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Tx groups the mutations that must apply as a unit: settlement and
// its standings contribution, result clearing and its reversal, bonus
// finalization, and full recomputation. A crash mid-transaction leaves
// either the old or the new state, never a mix.
type Tx interface {
	// Settlement
	// RecordResult sets the match result only while no result is
	// present; the returned count is 0 when the match was already
	// settled
	RecordResult(ctx context.Context, matchID uuid.UUID, winner, scoreline string) (int64, error)
	ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error)
	AddPredictionPoints(ctx context.Context, userID int64, matchID uuid.UUID, delta int) error

	// Result clearing
	ListAwardedPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error)
	ZeroPredictionPoints(ctx context.Context, matchID uuid.UUID) error
	ClearMatchResults(ctx context.Context, period int) error

	// Bonus finalization
	SetAnswerPoints(ctx context.Context, userID int64, questionID uuid.UUID, points int) error
	MarkQuestionFinalized(ctx context.Context, questionID uuid.UUID) error

	// Standings
	AddStandingPoints(ctx context.Context, userID int64, period, delta int) error
	SetStandingPoints(ctx context.Context, userID int64, period, points int) error
	DeleteAllStandings(ctx context.Context) error

	// Backfill: the synthesized entry and its standings row must land
	// together, and a re-run reuses the recorded value instead of a
	// fresh minimum
	GetBackfill(ctx context.Context, userID int64, period int) (points int, ok bool, err error)
	RecordBackfill(ctx context.Context, userID int64, period, points int) error
	MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (points int, ok bool, err error)

	// Recomputation inputs, read inside the same transaction that
	// rewrites the standings table
	SumPredictionPoints(ctx context.Context) ([]domain.StandingEntry, error)
	SumBonusPoints(ctx context.Context) ([]domain.StandingEntry, error)
	ListBackfills(ctx context.Context) ([]domain.StandingEntry, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
