package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/poll"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

// Service defines the interface for match lifecycle and settlement
type Service interface {
	Schedule(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time, period, winnerPoints, scorelinePoints int) (*domain.Match, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	Find(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error)
	List(ctx context.Context) ([]domain.Match, error)
	Delete(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) error

	// Settle records the result selected by optionIndex and scores
	// every stored prediction for the match in one transaction.
	// Returns the per-user awards.
	Settle(ctx context.Context, matchID uuid.UUID, optionIndex int) (map[int64]int, error)

	// ClearResults undoes every settled result in the period: zeroes
	// prediction points, reverses standings awards, clears results
	ClearResults(ctx context.Context, period int) error

	// ResetStage drops the standings rows of a period
	ResetStage(ctx context.Context, period int) error
}

type service struct {
	repo          repository.Match
	standingsRepo repository.Standings
	publisher     *event.ResilientPublisher
}

// NewService creates a new match service
func NewService(repo repository.Match, standingsRepo repository.Standings, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:          repo,
		standingsRepo: standingsRepo,
		publisher:     publisher,
	}
}

func (s *service) Schedule(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time, period, winnerPoints, scorelinePoints int) (*domain.Match, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
	if team1 == "" || team2 == "" || team1 == team2 {
		return nil, fmt.Errorf("%w: teams %q vs %q", domain.ErrInvalidInput, team1, team2)
	}

	m := &domain.Match{
		ID:              uuid.New(),
		Team1:           team1,
		Team2:           team2,
		Format:          format,
		MatchDate:       date,
		Period:          period,
		WinnerPoints:    winnerPoints,
		ScorelinePoints: scorelinePoints,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateMatch, err)
	}

	logger.FromContext(ctx).Info("Match scheduled",
		"match_id", m.ID, "team1", team1, "team2", team2,
		"format", format, "period", period)
	return m, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	return s.repo.GetMatch(ctx, id)
}

func (s *service) Find(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error) {
	return s.repo.FindMatch(ctx, team1, team2, format, date)
}

func (s *service) List(ctx context.Context) ([]domain.Match, error) {
	return s.repo.ListMatches(ctx)
}

func (s *service) Delete(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) error {
	m, err := s.repo.FindMatch(ctx, team1, team2, format, date)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMatch(ctx, m.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDeleteMatch, err)
	}
	logger.FromContext(ctx).Info("Match deleted", "match_id", m.ID)
	return nil
}

func (s *service) Settle(ctx context.Context, matchID uuid.UUID, optionIndex int) (map[int64]int, error) {
	log := logger.FromContext(ctx)

	m, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	options, err := poll.EncodeOptions(m.Team1, m.Team2, m.Format)
	if err != nil {
		return nil, err
	}
	option, err := poll.Select(options, optionIndex)
	if err != nil {
		return nil, err
	}
	winner, scoreline, err := poll.Decode(option)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	affected, err := tx.RecordResult(ctx, m.ID, winner, scoreline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRecordResult, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: match %s", domain.ErrAlreadySettled, m.ID)
	}

	predictions, err := tx.ListPredictionsByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListPredictions, err)
	}

	awarded := make(map[int64]int)
	for _, p := range predictions {
		points := scorePrediction(m, p, winner, scoreline)
		if points == 0 {
			continue
		}
		if err := tx.AddPredictionPoints(ctx, p.UserID, m.ID, points); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToAwardPoints, err)
		}
		if err := tx.AddStandingPoints(ctx, p.UserID, m.Period, points); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToAwardPoints, err)
		}
		awarded[p.UserID] = points
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info("Match settled",
		"match_id", m.ID, "winner", winner, "scoreline", scoreline,
		"predictions", len(predictions), "awarded", len(awarded))

	s.publisher.PublishWithRetry(ctx, event.NewResultSettledEvent(m.ID, winner, scoreline, awarded))
	return awarded, nil
}

// scorePrediction applies the settlement formula: the winner award for
// a correct winner, plus the scoreline bonus when the full scoreline
// also matches
func scorePrediction(m *domain.Match, p domain.Prediction, winner, scoreline string) int {
	if p.Winner != winner {
		return 0
	}
	points := m.WinnerAward()
	if p.Scoreline == scoreline {
		points += m.ScorelineAward()
	}
	return points
}

func (s *service) ClearResults(ctx context.Context, period int) error {
	log := logger.FromContext(ctx)

	settled, err := s.repo.ListSettledMatchesByPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListMatches, err)
	}
	if len(settled) == 0 {
		log.Info("No settled matches to clear", "period", period)
		return nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	for _, m := range settled {
		awarded, err := tx.ListAwardedPredictionsByMatch(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToListPredictions, err)
		}
		for _, p := range awarded {
			if err := tx.AddStandingPoints(ctx, p.UserID, m.Period, -p.Points); err != nil {
				return fmt.Errorf("%s: %w", ErrContextFailedToReverseAwards, err)
			}
		}
		if err := tx.ZeroPredictionPoints(ctx, m.ID); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToReverseAwards, err)
		}
	}

	if err := tx.ClearMatchResults(ctx, period); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToClearResults, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info("Results cleared", "period", period, "matches", len(settled))
	s.publisher.PublishWithRetry(ctx, event.NewResultClearedEvent(period))
	return nil
}

func (s *service) ResetStage(ctx context.Context, period int) error {
	if err := s.standingsRepo.DeleteStandingsByPeriod(ctx, period); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToResetStage, err)
	}
	logger.FromContext(ctx).Info("Stage standings reset", "period", period)
	return nil
}
