package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

type predictionRepository struct {
	db *pgxpool.Pool
}

// NewPredictionRepository creates a new PostgreSQL prediction repository
func NewPredictionRepository(db *pgxpool.Pool) repository.Prediction {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) UpsertPrediction(ctx context.Context, p *domain.Prediction) error {
	// points survive replacement: selection changes before settlement
	// must not wipe out points from an earlier settled match
	query := `
		INSERT INTO predictions (user_id, match_id, period, winner, scoreline)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, match_id)
		DO UPDATE SET winner = EXCLUDED.winner, scoreline = EXCLUDED.scoreline
	`

	_, err := r.db.Exec(ctx, query, p.UserID, p.MatchID, p.Period, p.Winner, p.Scoreline)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

func (r *predictionRepository) ClearPrediction(ctx context.Context, userID int64, matchID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM predictions WHERE user_id = $1 AND match_id = $2`,
		userID, matchID)
	if err != nil {
		return fmt.Errorf("failed to clear prediction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPredictionNotFound
	}
	return nil
}

func (r *predictionRepository) GetPrediction(ctx context.Context, userID int64, matchID uuid.UUID) (*domain.Prediction, error) {
	query := `
		SELECT user_id, match_id, period, winner, scoreline, points
		FROM predictions
		WHERE user_id = $1 AND match_id = $2
	`

	var p domain.Prediction
	err := r.db.QueryRow(ctx, query, userID, matchID).Scan(
		&p.UserID, &p.MatchID, &p.Period, &p.Winner, &p.Scoreline, &p.Points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return &p, nil
}

func (r *predictionRepository) ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	query := `
		SELECT user_id, match_id, period, winner, scoreline, points
		FROM predictions
		WHERE match_id = $1
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func (r *predictionRepository) ListPredictionsByUserAndPeriod(ctx context.Context, userID int64, period int) ([]domain.Prediction, error) {
	query := `
		SELECT user_id, match_id, period, winner, scoreline, points
		FROM predictions
		WHERE user_id = $1 AND period = $2
	`

	rows, err := r.db.Query(ctx, query, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for user: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func scanPredictions(rows pgx.Rows) ([]domain.Prediction, error) {
	var predictions []domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		err := rows.Scan(&p.UserID, &p.MatchID, &p.Period, &p.Winner, &p.Scoreline, &p.Points)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}
