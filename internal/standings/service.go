package standings

import (
	"context"
	"fmt"
	"sort"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/metrics"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

// Service defines the interface for leaderboard operations
type Service interface {
	// Standings returns the ranked leaderboard with usernames resolved
	Standings(ctx context.Context) ([]domain.Standing, error)

	// EnsureBackfill synthesizes catch-up entries for every period the
	// user skipped between their last interaction and the given one.
	// Must run before the new interaction is recorded.
	EnsureBackfill(ctx context.Context, userID int64, period int) error

	// Recalculate rebuilds the standings table from prediction and
	// bonus point sums plus recorded backfills
	Recalculate(ctx context.Context) error

	// PublishStandings emits the current ranking on the event bus
	PublishStandings(ctx context.Context)
}

type service struct {
	repo           repository.Standings
	userRepo       repository.User
	publisher      *event.ResilientPublisher
	botAccountName string
}

// NewService creates a new standings service. botAccountName is the
// system account excluded from backfill minimums.
func NewService(repo repository.Standings, userRepo repository.User, publisher *event.ResilientPublisher, botAccountName string) Service {
	return &service{
		repo:           repo,
		userRepo:       userRepo,
		publisher:      publisher,
		botAccountName: botAccountName,
	}
}

func (s *service) Standings(ctx context.Context) ([]domain.Standing, error) {
	entries, err := s.repo.ListStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListStandings, err)
	}

	ranking := Rank(entries)

	ids := make([]int64, len(ranking))
	for i, st := range ranking {
		ids[i] = st.UserID
	}
	names, err := s.userRepo.UsernamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToResolveUsernames, err)
	}
	for i := range ranking {
		ranking[i].Username = names[ranking[i].UserID]
	}

	return ranking, nil
}

// Rank orders standing entries into a leaderboard. The sort key is the
// grand total, then per-period points from the most recent period
// backwards, then user ID. Comparing materialized period vectors keeps
// the ordering transitive no matter how histories interleave.
func Rank(entries []domain.StandingEntry) []domain.Standing {
	byUser := make(map[int64]map[int]int)
	periodSet := make(map[int]struct{})
	for _, e := range entries {
		if byUser[e.UserID] == nil {
			byUser[e.UserID] = make(map[int]int)
		}
		byUser[e.UserID][e.Period] += e.Points
		periodSet[e.Period] = struct{}{}
	}

	periods := make([]int, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(periods)))

	ranking := make([]domain.Standing, 0, len(byUser))
	for userID, perPeriod := range byUser {
		total := 0
		for _, pts := range perPeriod {
			total += pts
		}
		ranking = append(ranking, domain.Standing{
			UserID:  userID,
			Periods: perPeriod,
			Total:   total,
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		for _, p := range periods {
			if a.Periods[p] != b.Periods[p] {
				return a.Periods[p] > b.Periods[p]
			}
		}
		return a.UserID < b.UserID
	})

	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

func (s *service) EnsureBackfill(ctx context.Context, userID int64, period int) error {
	log := logger.FromContext(ctx)

	last, err := s.repo.LatestInteractionPeriod(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetLastPeriod, err)
	}

	if period < last {
		log.Warn("Backfill skipped: interaction period precedes last known period",
			"user_id", userID, "period", period, "last_period", last)
		return fmt.Errorf("%w: period %d precedes %d", domain.ErrPeriodOrdering, period, last)
	}

	if last+1 >= period {
		return nil
	}

	// Each period's backfill entry and standings row must land
	// together; re-runs reuse recorded values so a minimum that moved
	// in the meantime never rewrites an already-granted backfill
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	for p := last + 1; p < period; p++ {
		points, recorded, err := tx.GetBackfill(ctx, userID, p)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToGetBackfill, err)
		}
		if !recorded {
			var ok bool
			points, ok, err = tx.MinPointsForPeriod(ctx, p, s.botAccountName)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrContextFailedToGetMinimum, err)
			}
			if !ok {
				points = 0
			}
		}
		if err := tx.RecordBackfill(ctx, userID, p, points); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToRecordBackfill, err)
		}
		if err := tx.SetStandingPoints(ctx, userID, p, points); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToWriteStanding, err)
		}
		metrics.BackfillsApplied.Inc()
		log.Info("Backfilled skipped period",
			"user_id", userID, "period", p, "points", points)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

func (s *service) Recalculate(ctx context.Context) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	predSums, err := tx.SumPredictionPoints(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSumPredictions, err)
	}
	bonusSums, err := tx.SumBonusPoints(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSumBonuses, err)
	}
	backfills, err := tx.ListBackfills(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListBackfills, err)
	}

	type key struct {
		userID int64
		period int
	}
	totals := make(map[key]int)
	for _, group := range [][]domain.StandingEntry{predSums, bonusSums, backfills} {
		for _, e := range group {
			totals[key{e.UserID, e.Period}] += e.Points
		}
	}

	if err := tx.DeleteAllStandings(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToResetStandings, err)
	}
	for k, points := range totals {
		if err := tx.SetStandingPoints(ctx, k.userID, k.period, points); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToWriteStanding, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	logger.FromContext(ctx).Info("Standings recalculated",
		"rows", len(totals))

	s.PublishStandings(ctx)
	return nil
}

func (s *service) PublishStandings(ctx context.Context) {
	ranking, err := s.Standings(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to compute standings for publication", "error", err)
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewStandingsUpdatedEvent(ranking))
}
