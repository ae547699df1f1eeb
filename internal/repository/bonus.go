package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Bonus defines the data access for bonus questions and answers
type Bonus interface {
	CreateQuestion(ctx context.Context, q *domain.BonusQuestion) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.BonusQuestion, error)
	ListQuestions(ctx context.Context) ([]domain.BonusQuestion, error)

	// AddCorrectAnswer accumulates one option into the question's
	// correct-answer set; adding a present option is a no-op
	AddCorrectAnswer(ctx context.Context, id uuid.UUID, option string) error

	// UpsertAnswer stores a user's full selection set for a question
	UpsertAnswer(ctx context.Context, a *domain.BonusAnswer) error
	GetAnswer(ctx context.Context, userID int64, questionID uuid.UUID) (*domain.BonusAnswer, error)
	ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.BonusAnswer, error)
	ListAnswersByUserAndPeriod(ctx context.Context, userID int64, period int) ([]domain.BonusAnswer, error)

	// Transaction support
	BeginTx(ctx context.Context) (Tx, error)
}
