package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

type bonusRepository struct {
	db *pgxpool.Pool
}

// NewBonusRepository creates a new PostgreSQL bonus repository
func NewBonusRepository(db *pgxpool.Pool) repository.Bonus {
	return &bonusRepository{db: db}
}

func (r *bonusRepository) CreateQuestion(ctx context.Context, q *domain.BonusQuestion) error {
	query := `
		INSERT INTO bonus_questions (id, question, description, options, required_answers, period, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}

	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		q.ID, q.Question, q.Description, optionsJSON, q.RequiredAnswers, q.Period, q.Points)
	if err != nil {
		return fmt.Errorf("failed to create bonus question: %w", err)
	}
	return nil
}

func (r *bonusRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.BonusQuestion, error) {
	query := `
		SELECT id, question, description, options, required_answers, period, points, correct_answers, finalized, created_at
		FROM bonus_questions
		WHERE id = $1
	`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get bonus question: %w", err)
	}
	return q, nil
}

func (r *bonusRepository) ListQuestions(ctx context.Context) ([]domain.BonusQuestion, error) {
	query := `
		SELECT id, question, description, options, required_answers, period, points, correct_answers, finalized, created_at
		FROM bonus_questions
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.BonusQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *bonusRepository) AddCorrectAnswer(ctx context.Context, id uuid.UUID, option string) error {
	// duplicate marks are a no-op so a repeated moderator reaction
	// cannot inflate the correct set
	query := `
		UPDATE bonus_questions
		SET correct_answers = correct_answers || to_jsonb($2::text)
		WHERE id = $1 AND NOT correct_answers @> to_jsonb($2::text)
	`

	_, err := r.db.Exec(ctx, query, id, option)
	if err != nil {
		return fmt.Errorf("failed to add correct answer: %w", err)
	}
	return nil
}

func (r *bonusRepository) UpsertAnswer(ctx context.Context, a *domain.BonusAnswer) error {
	query := `
		INSERT INTO bonus_answers (user_id, question_id, period, selections)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET selections = EXCLUDED.selections
	`

	selectionsJSON, err := json.Marshal(a.Selections)
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}

	_, err = r.db.Exec(ctx, query, a.UserID, a.QuestionID, a.Period, selectionsJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert bonus answer: %w", err)
	}
	return nil
}

func (r *bonusRepository) GetAnswer(ctx context.Context, userID int64, questionID uuid.UUID) (*domain.BonusAnswer, error) {
	query := `
		SELECT user_id, question_id, period, selections, points
		FROM bonus_answers
		WHERE user_id = $1 AND question_id = $2
	`

	a, err := scanAnswer(r.db.QueryRow(ctx, query, userID, questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bonus answer: %w", err)
	}
	return a, nil
}

func (r *bonusRepository) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.BonusAnswer, error) {
	query := `
		SELECT user_id, question_id, period, selections, points
		FROM bonus_answers
		WHERE question_id = $1
	`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus answers: %w", err)
	}
	defer rows.Close()

	return scanAnswers(rows)
}

func (r *bonusRepository) ListAnswersByUserAndPeriod(ctx context.Context, userID int64, period int) ([]domain.BonusAnswer, error) {
	query := `
		SELECT user_id, question_id, period, selections, points
		FROM bonus_answers
		WHERE user_id = $1 AND period = $2
	`

	rows, err := r.db.Query(ctx, query, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus answers for user: %w", err)
	}
	defer rows.Close()

	return scanAnswers(rows)
}

func (r *bonusRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &pickemTx{tx: tx}, nil
}

func scanQuestion(row pgx.Row) (*domain.BonusQuestion, error) {
	var q domain.BonusQuestion
	var optionsJSON, correctJSON []byte

	err := row.Scan(
		&q.ID, &q.Question, &q.Description, &optionsJSON, &q.RequiredAnswers,
		&q.Period, &q.Points, &correctJSON, &q.Finalized, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	if len(correctJSON) > 0 {
		if err := json.Unmarshal(correctJSON, &q.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal correct answers: %w", err)
		}
	}
	return &q, nil
}

func scanAnswer(row pgx.Row) (*domain.BonusAnswer, error) {
	var a domain.BonusAnswer
	var selectionsJSON []byte

	err := row.Scan(&a.UserID, &a.QuestionID, &a.Period, &selectionsJSON, &a.Points)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(selectionsJSON, &a.Selections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selections: %w", err)
	}
	return &a, nil
}

func scanAnswers(rows pgx.Rows) ([]domain.BonusAnswer, error) {
	var answers []domain.BonusAnswer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return answers, nil
}
