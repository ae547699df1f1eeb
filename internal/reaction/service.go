package reaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/bonus"
	"github.com/kepran/PickemBot_Go/internal/concurrency"
	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/match"
	"github.com/kepran/PickemBot_Go/internal/poll"
	"github.com/kepran/PickemBot_Go/internal/repository"
	"github.com/kepran/PickemBot_Go/internal/standings"
	"github.com/kepran/PickemBot_Go/internal/user"
)

// Service routes resolved reaction events into the prediction,
// settlement and bonus flows
type Service interface {
	// HandleReaction dispatches one reaction add or retraction. Events
	// for the same poll are serialized; unrelated polls proceed
	// concurrently.
	HandleReaction(ctx context.Context, ev domain.ReactionEvent) error

	// RecordPrediction stores a prediction directly, bypassing the
	// poll transport. Used for moderator manual entry.
	RecordPrediction(ctx context.Context, userID int64, username string, matchID uuid.UUID, optionIndex int) error

	// PredictionsForUser returns a user's stored predictions in a period
	PredictionsForUser(ctx context.Context, username string, period int) ([]domain.Prediction, error)
}

type service struct {
	locks        *concurrency.LockManager
	predRepo     repository.Prediction
	matchSvc     match.Service
	bonusSvc     bonus.Service
	standingsSvc standings.Service
	userSvc      user.Service
	publisher    *event.ResilientPublisher
}

// NewService creates a new reaction router
func NewService(predRepo repository.Prediction, matchSvc match.Service, bonusSvc bonus.Service, standingsSvc standings.Service, userSvc user.Service, publisher *event.ResilientPublisher) Service {
	return &service{
		locks:        concurrency.NewLockManager(),
		predRepo:     predRepo,
		matchSvc:     matchSvc,
		bonusSvc:     bonusSvc,
		standingsSvc: standingsSvc,
		userSvc:      userSvc,
		publisher:    publisher,
	}
}

func (s *service) HandleReaction(ctx context.Context, ev domain.ReactionEvent) error {
	return s.locks.WithLock(ev.Poll.Key(), func() error {
		switch ev.Poll.Kind {
		case domain.PollKindMatch:
			return s.handleMatchReaction(ctx, ev)
		case domain.PollKindBonus:
			return s.handleBonusReaction(ctx, ev)
		}
		return fmt.Errorf("%w: unknown poll kind %q", domain.ErrInvalidInput, ev.Poll.Kind)
	})
}

func (s *service) handleMatchReaction(ctx context.Context, ev domain.ReactionEvent) error {
	switch ev.Poll.Phase {
	case domain.PhasePrediction:
		if ev.Removed {
			return s.clearPrediction(ctx, ev.UserID, ev.Poll.ID)
		}
		return s.recordPrediction(ctx, ev.UserID, ev.Username, ev.Poll.ID, ev.OptionIndex)

	case domain.PhaseResult:
		// retracting a result reaction does not unsettle; moderators
		// use the explicit clear operation for that
		if ev.Removed {
			return nil
		}
		_, err := s.matchSvc.Settle(ctx, ev.Poll.ID, ev.OptionIndex)
		return err
	}
	return fmt.Errorf("%w: unknown poll phase %q", domain.ErrInvalidInput, ev.Poll.Phase)
}

func (s *service) handleBonusReaction(ctx context.Context, ev domain.ReactionEvent) error {
	switch ev.Poll.Phase {
	case domain.PhasePrediction:
		q, err := s.bonusSvc.GetQuestion(ctx, ev.Poll.ID)
		if err != nil {
			return err
		}
		if ev.Removed {
			return s.bonusSvc.RemoveAnswerOption(ctx, ev.UserID, ev.Poll.ID, ev.OptionIndex)
		}
		if err := s.userSvc.EnsureUser(ctx, ev.UserID, ev.Username); err != nil {
			return err
		}
		if err := s.ensureBackfill(ctx, ev.UserID, q.Period); err != nil {
			return err
		}
		return s.bonusSvc.AddAnswerOption(ctx, ev.UserID, ev.Poll.ID, ev.OptionIndex)

	case domain.PhaseResult:
		if ev.Removed {
			return nil
		}
		if ev.Confirm {
			_, err := s.bonusSvc.Finalize(ctx, ev.Poll.ID)
			return err
		}
		return s.bonusSvc.MarkCorrect(ctx, ev.Poll.ID, ev.OptionIndex)
	}
	return fmt.Errorf("%w: unknown poll phase %q", domain.ErrInvalidInput, ev.Poll.Phase)
}

func (s *service) RecordPrediction(ctx context.Context, userID int64, username string, matchID uuid.UUID, optionIndex int) error {
	ref := domain.PollRef{Kind: domain.PollKindMatch, ID: matchID, Phase: domain.PhasePrediction}
	return s.locks.WithLock(ref.Key(), func() error {
		return s.recordPrediction(ctx, userID, username, matchID, optionIndex)
	})
}

func (s *service) PredictionsForUser(ctx context.Context, username string, period int) ([]domain.Prediction, error) {
	u, err := s.userSvc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.predRepo.ListPredictionsByUserAndPeriod(ctx, u.ID, period)
}

func (s *service) recordPrediction(ctx context.Context, userID int64, username string, matchID uuid.UUID, optionIndex int) error {
	m, err := s.matchSvc.Get(ctx, matchID)
	if err != nil {
		return err
	}

	options, err := poll.EncodeOptions(m.Team1, m.Team2, m.Format)
	if err != nil {
		return err
	}
	option, err := poll.Select(options, optionIndex)
	if err != nil {
		return err
	}
	winner, scoreline, err := poll.Decode(option)
	if err != nil {
		return err
	}

	// the user row must exist before backfill touches FK-constrained
	// tables, and catch-up entries must exist before this interaction
	// becomes the user's latest period
	if err := s.userSvc.EnsureUser(ctx, userID, username); err != nil {
		return err
	}
	if err := s.ensureBackfill(ctx, userID, m.Period); err != nil {
		return err
	}

	prediction := &domain.Prediction{
		UserID:    userID,
		MatchID:   m.ID,
		Period:    m.Period,
		Winner:    winner,
		Scoreline: scoreline,
	}
	if err := s.predRepo.UpsertPrediction(ctx, prediction); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}

	logger.FromContext(ctx).Info("Prediction recorded",
		"user_id", userID, "match_id", m.ID,
		"winner", winner, "scoreline", scoreline)

	s.publisher.PublishWithRetry(ctx, event.NewPredictionRecordedEvent(prediction))
	return nil
}

// ensureBackfill seeds catch-up entries for the user. A reaction on a
// still-open poll from a period the user has already moved past needs
// no backfill: it is logged and the interaction proceeds.
func (s *service) ensureBackfill(ctx context.Context, userID int64, period int) error {
	err := s.standingsSvc.EnsureBackfill(ctx, userID, period)
	if errors.Is(err, domain.ErrPeriodOrdering) {
		logger.FromContext(ctx).Info("Interaction on earlier period, no backfill needed",
			"user_id", userID, "period", period)
		return nil
	}
	return err
}

func (s *service) clearPrediction(ctx context.Context, userID int64, matchID uuid.UUID) error {
	err := s.predRepo.ClearPrediction(ctx, userID, matchID)
	if err != nil {
		// retracting a reaction that never stored anything is fine
		if errors.Is(err, domain.ErrPredictionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to clear prediction: %w", err)
	}

	logger.FromContext(ctx).Info("Prediction cleared",
		"user_id", userID, "match_id", matchID)

	s.publisher.PublishWithRetry(ctx, event.NewPredictionClearedEvent(userID, matchID))
	return nil
}
