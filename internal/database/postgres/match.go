package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

type matchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new PostgreSQL match repository
func NewMatchRepository(db *pgxpool.Pool) repository.Match {
	return &matchRepository{db: db}
}

const matchColumns = `id, team1, team2, format, match_date, period, winner_points, scoreline_points, winner, scoreline, created_at`

func (r *matchRepository) CreateMatch(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (id, team1, team2, format, match_date, period, winner_points, scoreline_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		match.ID, match.Team1, match.Team2, string(match.Format),
		match.MatchDate, match.Period, match.WinnerPoints, match.ScorelinePoints)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *matchRepository) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (r *matchRepository) FindMatch(ctx context.Context, team1, team2 string, format domain.MatchFormat, date time.Time) (*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE team1 = $1 AND team2 = $2 AND format = $3 AND match_date = $4
	`

	row := r.db.QueryRow(ctx, query, team1, team2, string(format), date)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return match, nil
}

func (r *matchRepository) ListMatches(ctx context.Context) ([]domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY match_date, created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func (r *matchRepository) ListSettledMatchesByPeriod(ctx context.Context, period int) ([]domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE period = $1 AND winner IS NOT NULL
		ORDER BY match_date, created_at
	`

	rows, err := r.db.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list settled matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func (r *matchRepository) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	// predictions cascade via FK
	result, err := r.db.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &pickemTx{tx: tx}, nil
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	var format string
	var winner, scoreline pgtype.Text

	err := row.Scan(
		&m.ID, &m.Team1, &m.Team2, &format, &m.MatchDate, &m.Period,
		&m.WinnerPoints, &m.ScorelinePoints, &winner, &scoreline, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Format = domain.MatchFormat(format)
	m.Winner = winner.String
	m.Scoreline = scoreline.String
	return &m, nil
}

func scanMatches(rows pgx.Rows) ([]domain.Match, error) {
	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
