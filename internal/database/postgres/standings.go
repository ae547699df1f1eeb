package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

type standingsRepository struct {
	db *pgxpool.Pool
}

// NewStandingsRepository creates a new PostgreSQL standings repository
func NewStandingsRepository(db *pgxpool.Pool) repository.Standings {
	return &standingsRepository{db: db}
}

func (r *standingsRepository) AddStandingPoints(ctx context.Context, userID int64, period, delta int) error {
	query := `
		INSERT INTO standings (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period)
		DO UPDATE SET points = standings.points + EXCLUDED.points
	`

	_, err := r.db.Exec(ctx, query, userID, period, delta)
	if err != nil {
		return fmt.Errorf("failed to add standing points: %w", err)
	}
	return nil
}

func (r *standingsRepository) SetStandingPoints(ctx context.Context, userID int64, period, points int) error {
	query := `
		INSERT INTO standings (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period)
		DO UPDATE SET points = EXCLUDED.points
	`

	_, err := r.db.Exec(ctx, query, userID, period, points)
	if err != nil {
		return fmt.Errorf("failed to set standing points: %w", err)
	}
	return nil
}

func (r *standingsRepository) DeleteStandingsByPeriod(ctx context.Context, period int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM standings WHERE period = $1`, period)
	if err != nil {
		return fmt.Errorf("failed to delete standings for period: %w", err)
	}
	return nil
}

func (r *standingsRepository) ListStandings(ctx context.Context) ([]domain.StandingEntry, error) {
	query := `
		SELECT user_id, period, points
		FROM standings
		ORDER BY user_id, period
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	return scanStandingEntries(rows)
}

func (r *standingsRepository) MinPointsForPeriod(ctx context.Context, period int, excludeUsername string) (int, bool, error) {
	query := `
		SELECT MIN(s.points)
		FROM standings s
		JOIN users u ON u.id = s.user_id
		WHERE s.period = $1 AND u.username <> $2
	`

	var min *int
	err := r.db.QueryRow(ctx, query, period, excludeUsername).Scan(&min)
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

func (r *standingsRepository) LatestInteractionPeriod(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COALESCE(MAX(period), 0) FROM (
			SELECT period FROM predictions WHERE user_id = $1
			UNION ALL
			SELECT period FROM bonus_answers WHERE user_id = $1
		) p
	`

	var period int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&period); err != nil {
		return 0, fmt.Errorf("failed to get latest interaction period: %w", err)
	}
	return period, nil
}

func (r *standingsRepository) RecordBackfill(ctx context.Context, userID int64, period, points int) error {
	query := `
		INSERT INTO backfills (user_id, period, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, period, points)
	if err != nil {
		return fmt.Errorf("failed to record backfill: %w", err)
	}
	return nil
}

func (r *standingsRepository) ListBackfills(ctx context.Context) ([]domain.StandingEntry, error) {
	query := `
		SELECT user_id, period, points
		FROM backfills
		ORDER BY user_id, period
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list backfills: %w", err)
	}
	defer rows.Close()

	return scanStandingEntries(rows)
}

func (r *standingsRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &pickemTx{tx: tx}, nil
}

func scanStandingEntries(rows pgx.Rows) ([]domain.StandingEntry, error) {
	var entries []domain.StandingEntry
	for rows.Next() {
		var e domain.StandingEntry
		if err := rows.Scan(&e.UserID, &e.Period, &e.Points); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
