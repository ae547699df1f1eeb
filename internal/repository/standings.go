package repository

import (
	"context"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Standings defines the data access for the materialized leaderboard
// and the backfill bookkeeping around it
type Standings interface {
	AddStandingPoints(ctx context.Context, userID int64, period, delta int) error
	SetStandingPoints(ctx context.Context, userID int64, period, points int) error
	DeleteStandingsByPeriod(ctx context.Context, period int) error
	ListStandings(ctx context.Context) ([]domain.StandingEntry, error)

	// MinPointsForPeriod returns the lowest standing in a period
	// across participants, excluding the named system account.
	// ok is false when the period has no eligible entries.
	MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (points int, ok bool, err error)

	// LatestInteractionPeriod returns the highest period in which the
	// user has a stored prediction or bonus answer, 0 when none
	LatestInteractionPeriod(ctx context.Context, userID int64) (int, error)

	// RecordBackfill stores a synthesized entry so recomputation can
	// reproduce it; the matching standings row is written separately
	RecordBackfill(ctx context.Context, userID int64, period, points int) error
	ListBackfills(ctx context.Context) ([]domain.StandingEntry, error)

	// Transaction support
	BeginTx(ctx context.Context) (Tx, error)
}
