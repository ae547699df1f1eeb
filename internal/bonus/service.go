package bonus

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/poll"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

// Service defines the interface for bonus question operations
type Service interface {
	CreateQuestion(ctx context.Context, q *domain.BonusQuestion) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.BonusQuestion, error)
	ListQuestions(ctx context.Context) ([]domain.BonusQuestion, error)

	// AddAnswerOption appends the option at optionIndex to the user's
	// answer set, up to the question's required size
	AddAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error

	// RemoveAnswerOption drops the option from the user's answer set
	RemoveAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error

	// MarkCorrect accumulates one option into the correct-answer set
	MarkCorrect(ctx context.Context, questionID uuid.UUID, optionIndex int) error

	// Finalize scores every stored answer against the accumulated
	// correct set and returns the per-user awards. Re-running replaces
	// earlier awards rather than stacking them.
	Finalize(ctx context.Context, questionID uuid.UUID) (map[int64]int, error)
}

type service struct {
	repo      repository.Bonus
	publisher *event.ResilientPublisher
}

// NewService creates a new bonus service
func NewService(repo repository.Bonus, publisher *event.ResilientPublisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) CreateQuestion(ctx context.Context, q *domain.BonusQuestion) error {
	if q.Question == "" || len(q.Options) < 2 {
		return fmt.Errorf("%w: question needs text and at least two options", domain.ErrInvalidInput)
	}
	if q.RequiredAnswers < 1 || q.RequiredAnswers > len(q.Options) {
		return fmt.Errorf("%w: required answers %d out of range for %d options",
			domain.ErrInvalidInput, q.RequiredAnswers, len(q.Options))
	}
	if q.Points < 1 {
		q.Points = DefaultQuestionPoints
	}

	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCreateQuestion, err)
	}

	logger.FromContext(ctx).Info("Bonus question created",
		"question_id", q.ID, "period", q.Period,
		"options", len(q.Options), "required", q.RequiredAnswers)
	return nil
}

func (s *service) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.BonusQuestion, error) {
	return s.repo.GetQuestion(ctx, id)
}

func (s *service) ListQuestions(ctx context.Context) ([]domain.BonusQuestion, error) {
	return s.repo.ListQuestions(ctx)
}

func (s *service) AddAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error {
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.Finalized {
		return fmt.Errorf("%w: question %s", domain.ErrAlreadyFinalized, q.ID)
	}
	option, err := poll.Select(q.Options, optionIndex)
	if err != nil {
		return err
	}

	answer, err := s.repo.GetAnswer(ctx, userID, questionID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetAnswer, err)
	}
	if answer == nil {
		answer = &domain.BonusAnswer{
			UserID:     userID,
			QuestionID: questionID,
			Period:     q.Period,
		}
	}
	if answer.HasSelection(option) {
		return nil
	}
	if len(answer.Selections) >= q.RequiredAnswers {
		return fmt.Errorf("%w: %d of %d", domain.ErrAnswerLimitReached,
			len(answer.Selections), q.RequiredAnswers)
	}

	answer.Selections = append(answer.Selections, option)
	if err := s.repo.UpsertAnswer(ctx, answer); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToStoreAnswer, err)
	}

	s.publisher.PublishWithRetry(ctx, event.NewBonusRecordedEvent(answer))
	return nil
}

func (s *service) RemoveAnswerOption(ctx context.Context, userID int64, questionID uuid.UUID, optionIndex int) error {
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.Finalized {
		return fmt.Errorf("%w: question %s", domain.ErrAlreadyFinalized, q.ID)
	}
	option, err := poll.Select(q.Options, optionIndex)
	if err != nil {
		return err
	}

	answer, err := s.repo.GetAnswer(ctx, userID, questionID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetAnswer, err)
	}
	if answer == nil || !answer.HasSelection(option) {
		return nil
	}

	kept := answer.Selections[:0]
	for _, sel := range answer.Selections {
		if sel != option {
			kept = append(kept, sel)
		}
	}
	answer.Selections = kept

	if err := s.repo.UpsertAnswer(ctx, answer); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToStoreAnswer, err)
	}

	s.publisher.PublishWithRetry(ctx, event.NewBonusRecordedEvent(answer))
	return nil
}

func (s *service) MarkCorrect(ctx context.Context, questionID uuid.UUID, optionIndex int) error {
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.Finalized {
		return fmt.Errorf("%w: question %s", domain.ErrAlreadyFinalized, q.ID)
	}
	option, err := poll.Select(q.Options, optionIndex)
	if err != nil {
		return err
	}

	if err := s.repo.AddCorrectAnswer(ctx, questionID, option); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToMarkCorrect, err)
	}

	logger.FromContext(ctx).Info("Correct answer marked",
		"question_id", questionID, "option", option)
	return nil
}

func (s *service) Finalize(ctx context.Context, questionID uuid.UUID) (map[int64]int, error) {
	log := logger.FromContext(ctx)

	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if len(q.CorrectAnswers) == 0 {
		return nil, fmt.Errorf("%w: no correct answers marked for question %s",
			domain.ErrInvalidInput, q.ID)
	}

	answers, err := s.repo.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListAnswers, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	awarded := make(map[int64]int)
	for _, a := range answers {
		points := scoreAnswer(q, a)
		delta := points - a.Points
		if err := tx.SetAnswerPoints(ctx, a.UserID, q.ID, points); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToAwardPoints, err)
		}
		if delta != 0 {
			if err := tx.AddStandingPoints(ctx, a.UserID, q.Period, delta); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrContextFailedToAwardPoints, err)
			}
		}
		if points != 0 {
			awarded[a.UserID] = points
		}
	}

	if err := tx.MarkQuestionFinalized(ctx, q.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToFinalize, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info("Bonus question finalized",
		"question_id", q.ID, "answers", len(answers), "awarded", len(awarded))

	s.publisher.PublishWithRetry(ctx, event.NewBonusFinalizedEvent(q.ID, q.CorrectAnswers, awarded))
	return awarded, nil
}

// scoreAnswer awards the question's points either for matching the
// correct set exactly, or, when more correct options were marked than
// one answer can hold, for any full-size subset of the correct set
func scoreAnswer(q *domain.BonusQuestion, a domain.BonusAnswer) int {
	if len(a.Selections) != q.RequiredAnswers {
		return 0
	}
	if len(q.CorrectAnswers) == q.RequiredAnswers {
		if !sameSet(a.Selections, q.CorrectAnswers) {
			return 0
		}
		return q.Points
	}
	for _, sel := range a.Selections {
		if !contains(q.CorrectAnswers, sel) {
			return 0
		}
	}
	return q.Points
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !contains(b, s) {
			return false
		}
	}
	return true
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
