package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// pickemTx implements repository.Tx over a single pgx transaction so
// settlement, clearing, finalization and recomputation commit as a unit
type pickemTx struct {
	tx pgx.Tx
}

func (t *pickemTx) RecordResult(ctx context.Context, matchID uuid.UUID, winner, scoreline string) (int64, error) {
	// the WHERE winner IS NULL guard makes a second settle attempt a
	// zero-row update instead of a double award
	query := `
		UPDATE matches
		SET winner = $2, scoreline = $3
		WHERE id = $1 AND winner IS NULL
	`

	result, err := t.tx.Exec(ctx, query, matchID, winner, scoreline)
	if err != nil {
		return 0, fmt.Errorf("failed to record result: %w", err)
	}
	return result.RowsAffected(), nil
}

func (t *pickemTx) ListPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	query := `
		SELECT user_id, match_id, period, winner, scoreline, points
		FROM predictions
		WHERE match_id = $1
	`

	rows, err := t.tx.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func (t *pickemTx) AddPredictionPoints(ctx context.Context, userID int64, matchID uuid.UUID, delta int) error {
	query := `
		UPDATE predictions
		SET points = points + $3
		WHERE user_id = $1 AND match_id = $2
	`

	_, err := t.tx.Exec(ctx, query, userID, matchID, delta)
	if err != nil {
		return fmt.Errorf("failed to add prediction points: %w", err)
	}
	return nil
}

func (t *pickemTx) ListAwardedPredictionsByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Prediction, error) {
	query := `
		SELECT user_id, match_id, period, winner, scoreline, points
		FROM predictions
		WHERE match_id = $1 AND points <> 0
	`

	rows, err := t.tx.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func (t *pickemTx) ZeroPredictionPoints(ctx context.Context, matchID uuid.UUID) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE predictions SET points = 0 WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to zero prediction points: %w", err)
	}
	return nil
}

func (t *pickemTx) ClearMatchResults(ctx context.Context, period int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE matches SET winner = NULL, scoreline = NULL WHERE period = $1`, period)
	if err != nil {
		return fmt.Errorf("failed to clear match results: %w", err)
	}
	return nil
}

func (t *pickemTx) SetAnswerPoints(ctx context.Context, userID int64, questionID uuid.UUID, points int) error {
	query := `
		UPDATE bonus_answers
		SET points = $3
		WHERE user_id = $1 AND question_id = $2
	`

	_, err := t.tx.Exec(ctx, query, userID, questionID, points)
	if err != nil {
		return fmt.Errorf("failed to set answer points: %w", err)
	}
	return nil
}

func (t *pickemTx) MarkQuestionFinalized(ctx context.Context, questionID uuid.UUID) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE bonus_questions SET finalized = TRUE WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to mark question finalized: %w", err)
	}
	return nil
}

func (t *pickemTx) AddStandingPoints(ctx context.Context, userID int64, period, delta int) error {
	query := `
		INSERT INTO standings (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period)
		DO UPDATE SET points = standings.points + EXCLUDED.points
	`

	_, err := t.tx.Exec(ctx, query, userID, period, delta)
	if err != nil {
		return fmt.Errorf("failed to add standing points: %w", err)
	}
	return nil
}

func (t *pickemTx) SetStandingPoints(ctx context.Context, userID int64, period, points int) error {
	query := `
		INSERT INTO standings (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period)
		DO UPDATE SET points = EXCLUDED.points
	`

	_, err := t.tx.Exec(ctx, query, userID, period, points)
	if err != nil {
		return fmt.Errorf("failed to set standing points: %w", err)
	}
	return nil
}

func (t *pickemTx) GetBackfill(ctx context.Context, userID int64, period int) (int, bool, error) {
	query := `
		SELECT points FROM backfills
		WHERE user_id = $1 AND period = $2
	`

	var points int
	err := t.tx.QueryRow(ctx, query, userID, period).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get backfill: %w", err)
	}
	return points, true, nil
}

func (t *pickemTx) RecordBackfill(ctx context.Context, userID int64, period, points int) error {
	query := `
		INSERT INTO backfills (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period) DO NOTHING
	`

	_, err := t.tx.Exec(ctx, query, userID, period, points)
	if err != nil {
		return fmt.Errorf("failed to record backfill: %w", err)
	}
	return nil
}

func (t *pickemTx) MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (int, bool, error) {
	query := `
		SELECT MIN(s.points)
		FROM standings s
		JOIN users u ON u.id = s.user_id
		WHERE s.period = $1 AND u.username <> $2
	`

	var min *int
	err := t.tx.QueryRow(ctx, query, period, excludeUsername).Scan(&min)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get minimum points: %w", err)
	}
	if min == nil {
		return 0, false, nil
	}
	return *min, true, nil
}

func (t *pickemTx) DeleteAllStandings(ctx context.Context) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM standings`)
	if err != nil {
		return fmt.Errorf("failed to delete standings: %w", err)
	}
	return nil
}

func (t *pickemTx) SumPredictionPoints(ctx context.Context) ([]domain.StandingEntry, error) {
	query := `
		SELECT user_id, period, SUM(points)
		FROM predictions
		GROUP BY user_id, period
		HAVING SUM(points) <> 0
	`

	rows, err := t.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum prediction points: %w", err)
	}
	defer rows.Close()

	return scanStandingEntries(rows)
}

func (t *pickemTx) SumBonusPoints(ctx context.Context) ([]domain.StandingEntry, error) {
	query := `
		SELECT user_id, period, SUM(points)
		FROM bonus_answers
		GROUP BY user_id, period
		HAVING SUM(points) <> 0
	`

	rows, err := t.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum bonus points: %w", err)
	}
	defer rows.Close()

	return scanStandingEntries(rows)
}

func (t *pickemTx) ListBackfills(ctx context.Context) ([]domain.StandingEntry, error) {
	query := `
		SELECT user_id, period, points
		FROM backfills
		ORDER BY user_id, period
	`

	rows, err := t.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list backfills: %w", err)
	}
	defer rows.Close()

	return scanStandingEntries(rows)
}

func (t *pickemTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pickemTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
