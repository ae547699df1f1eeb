package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kepran/PickemBot_Go/internal/bonus"
	"github.com/kepran/PickemBot_Go/internal/database"
	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/match"
	"github.com/kepran/PickemBot_Go/internal/standings"
)

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDatabase(ctx, t)

	userRepo := NewUserRepository(pool)
	matchRepo := NewMatchRepository(pool)
	predRepo := NewPredictionRepository(pool)
	bonusRepo := NewBonusRepository(pool)
	standingsRepo := NewStandingsRepository(pool)

	t.Run("UpsertUser", func(t *testing.T) {
		if err := userRepo.UpsertUser(ctx, &domain.User{ID: 100, Username: "alice"}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
		// Rename writes through
		if err := userRepo.UpsertUser(ctx, &domain.User{ID: 100, Username: "alicia"}); err != nil {
			t.Fatalf("UpsertUser rename failed: %v", err)
		}

		u, err := userRepo.GetUser(ctx, 100)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if u.Username != "alicia" {
			t.Errorf("expected username alicia, got %s", u.Username)
		}
	})

	matchDate := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	m := &domain.Match{
		ID:        uuid.New(),
		Team1:     "Navi",
		Team2:     "Faze",
		Format:    domain.FormatBO3,
		MatchDate: matchDate,
		Period:    1,
	}

	t.Run("MatchLifecycle", func(t *testing.T) {
		if err := matchRepo.CreateMatch(ctx, m); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		found, err := matchRepo.FindMatch(ctx, "Navi", "Faze", domain.FormatBO3, matchDate)
		if err != nil {
			t.Fatalf("FindMatch failed: %v", err)
		}
		if found.ID != m.ID {
			t.Errorf("expected match %s, got %s", m.ID, found.ID)
		}
		if found.Settled() {
			t.Error("expected unsettled match")
		}
	})

	t.Run("PredictionUpsertReplaces", func(t *testing.T) {
		p := &domain.Prediction{UserID: 100, MatchID: m.ID, Period: 1, Winner: "Navi", Scoreline: "2-0"}
		if err := predRepo.UpsertPrediction(ctx, p); err != nil {
			t.Fatalf("UpsertPrediction failed: %v", err)
		}

		// Second pick replaces the first, no extra row
		p.Winner, p.Scoreline = "Faze", "2-1"
		if err := predRepo.UpsertPrediction(ctx, p); err != nil {
			t.Fatalf("UpsertPrediction replace failed: %v", err)
		}

		stored, err := predRepo.ListPredictionsByMatch(ctx, m.ID)
		if err != nil {
			t.Fatalf("ListPredictionsByMatch failed: %v", err)
		}
		if len(stored) != 1 {
			t.Fatalf("expected 1 prediction, got %d", len(stored))
		}
		if stored[0].Winner != "Faze" || stored[0].Scoreline != "2-1" {
			t.Errorf("expected Faze 2-1, got %s %s", stored[0].Winner, stored[0].Scoreline)
		}
	})

	t.Run("SettlementIsGuarded", func(t *testing.T) {
		tx, err := matchRepo.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		affected, err := tx.RecordResult(ctx, m.ID, "Faze", "2-1")
		if err != nil {
			t.Fatalf("RecordResult failed: %v", err)
		}
		if affected != 1 {
			t.Fatalf("expected 1 affected row, got %d", affected)
		}
		if err := tx.AddPredictionPoints(ctx, 100, m.ID, 3); err != nil {
			t.Fatalf("AddPredictionPoints failed: %v", err)
		}
		if err := tx.AddStandingPoints(ctx, 100, 1, 3); err != nil {
			t.Fatalf("AddStandingPoints failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		// A second settlement attempt hits the winner IS NULL guard
		tx2, err := matchRepo.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer tx2.Rollback(ctx)
		affected, err = tx2.RecordResult(ctx, m.ID, "Navi", "2-0")
		if err != nil {
			t.Fatalf("RecordResult failed: %v", err)
		}
		if affected != 0 {
			t.Errorf("expected 0 affected rows on re-settle, got %d", affected)
		}
	})

	t.Run("StandingsAndBackfill", func(t *testing.T) {
		if err := userRepo.UpsertUser(ctx, &domain.User{ID: 200, Username: "The Coin"}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
		// The system account holds the period minimum but must not
		// drag the backfill floor down
		if err := standingsRepo.SetStandingPoints(ctx, 200, 1, 0); err != nil {
			t.Fatalf("SetStandingPoints failed: %v", err)
		}

		points, ok, err := standingsRepo.MinPointsForPeriod(ctx, 1, "The Coin")
		if err != nil {
			t.Fatalf("MinPointsForPeriod failed: %v", err)
		}
		if !ok || points != 3 {
			t.Errorf("expected minimum 3 excluding system account, got %d (ok=%v)", points, ok)
		}

		last, err := standingsRepo.LatestInteractionPeriod(ctx, 100)
		if err != nil {
			t.Fatalf("LatestInteractionPeriod failed: %v", err)
		}
		if last != 1 {
			t.Errorf("expected last interaction period 1, got %d", last)
		}

		if err := userRepo.UpsertUser(ctx, &domain.User{ID: 300, Username: "latecomer"}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
		if err := standingsRepo.RecordBackfill(ctx, 300, 1, 3); err != nil {
			t.Fatalf("RecordBackfill failed: %v", err)
		}
		// Re-recording the same backfill is a no-op
		if err := standingsRepo.RecordBackfill(ctx, 300, 1, 99); err != nil {
			t.Fatalf("RecordBackfill repeat failed: %v", err)
		}
		backfills, err := standingsRepo.ListBackfills(ctx)
		if err != nil {
			t.Fatalf("ListBackfills failed: %v", err)
		}
		if len(backfills) != 1 || backfills[0].Points != 3 {
			t.Errorf("expected one backfill of 3 points, got %+v", backfills)
		}
	})

	t.Run("BonusAnswerRoundTrip", func(t *testing.T) {
		q := &domain.BonusQuestion{
			ID:              uuid.New(),
			Question:        "Who wins the grand final?",
			Options:         []string{"Navi", "Faze", "Spirit"},
			RequiredAnswers: 1,
			Period:          1,
			Points:          2,
		}
		if err := bonusRepo.CreateQuestion(ctx, q); err != nil {
			t.Fatalf("CreateQuestion failed: %v", err)
		}

		if err := bonusRepo.AddCorrectAnswer(ctx, q.ID, "Spirit"); err != nil {
			t.Fatalf("AddCorrectAnswer failed: %v", err)
		}
		// Marking the same option twice must not duplicate it
		if err := bonusRepo.AddCorrectAnswer(ctx, q.ID, "Spirit"); err != nil {
			t.Fatalf("AddCorrectAnswer repeat failed: %v", err)
		}

		stored, err := bonusRepo.GetQuestion(ctx, q.ID)
		if err != nil {
			t.Fatalf("GetQuestion failed: %v", err)
		}
		if len(stored.CorrectAnswers) != 1 || stored.CorrectAnswers[0] != "Spirit" {
			t.Errorf("expected correct answers [Spirit], got %v", stored.CorrectAnswers)
		}

		a := &domain.BonusAnswer{UserID: 100, QuestionID: q.ID, Period: 1, Selections: []string{"Spirit"}}
		if err := bonusRepo.UpsertAnswer(ctx, a); err != nil {
			t.Fatalf("UpsertAnswer failed: %v", err)
		}

		got, err := bonusRepo.GetAnswer(ctx, 100, q.ID)
		if err != nil {
			t.Fatalf("GetAnswer failed: %v", err)
		}
		if got == nil || len(got.Selections) != 1 || got.Selections[0] != "Spirit" {
			t.Errorf("expected selections [Spirit], got %+v", got)
		}

		missing, err := bonusRepo.GetAnswer(ctx, 999, q.ID)
		if err != nil {
			t.Fatalf("GetAnswer for absent row failed: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil for absent answer, got %+v", missing)
		}
	})

	t.Run("RecalculationInputs", func(t *testing.T) {
		tx, err := standingsRepo.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer tx.Rollback(ctx)

		predSums, err := tx.SumPredictionPoints(ctx)
		if err != nil {
			t.Fatalf("SumPredictionPoints failed: %v", err)
		}
		if len(predSums) != 1 || predSums[0].UserID != 100 || predSums[0].Points != 3 {
			t.Errorf("expected user 100 with 3 prediction points, got %+v", predSums)
		}
	})

	t.Run("ClearResults", func(t *testing.T) {
		tx, err := matchRepo.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		if err := tx.ZeroPredictionPoints(ctx, m.ID); err != nil {
			t.Fatalf("ZeroPredictionPoints failed: %v", err)
		}
		if err := tx.ClearMatchResults(ctx, 1); err != nil {
			t.Fatalf("ClearMatchResults failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		cleared, err := matchRepo.GetMatch(ctx, m.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if cleared.Settled() {
			t.Error("expected match to be unsettled after clear")
		}
	})
}

// TestRecalculateMatchesLiveStandings_Integration runs a full season
// slice through the real services (settle a match, finalize a bonus
// question, backfill a late joiner), snapshots the incrementally
// maintained standings, rebuilds them from scratch, and expects the
// rebuilt table to be identical.
func TestRecalculateMatchesLiveStandings_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDatabase(ctx, t)

	userRepo := NewUserRepository(pool)
	matchRepo := NewMatchRepository(pool)
	predRepo := NewPredictionRepository(pool)
	bonusRepo := NewBonusRepository(pool)
	standingsRepo := NewStandingsRepository(pool)

	publisher := event.NewResilientPublisher(event.NewMemoryBus(), event.DefaultResilientConfig())
	matchSvc := match.NewService(matchRepo, standingsRepo, publisher)
	bonusSvc := bonus.NewService(bonusRepo, publisher)
	standingsSvc := standings.NewService(standingsRepo, userRepo, publisher, "The Coin")

	for id, name := range map[int64]string{1: "alice", 2: "bob"} {
		if err := userRepo.UpsertUser(ctx, &domain.User{ID: id, Username: name}); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
	}

	m, err := matchSvc.Schedule(ctx, "Navi", "Faze", domain.FormatBO3, time.Now(), 1, 0, 0)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	preds := []domain.Prediction{
		{UserID: 1, MatchID: m.ID, Period: 1, Winner: "Navi", Scoreline: "2-0"},
		{UserID: 2, MatchID: m.ID, Period: 1, Winner: "Navi", Scoreline: "2-1"},
	}
	for i := range preds {
		if err := predRepo.UpsertPrediction(ctx, &preds[i]); err != nil {
			t.Fatalf("UpsertPrediction failed: %v", err)
		}
	}

	awards, err := matchSvc.Settle(ctx, m.ID, 0)
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if awards[1] != 3 || awards[2] != 2 {
		t.Fatalf("expected awards alice=3 bob=2, got %v", awards)
	}

	q := &domain.BonusQuestion{
		ID:              uuid.New(),
		Question:        "Who lifts the trophy?",
		Options:         []string{"Navi", "Faze", "Spirit"},
		RequiredAnswers: 1,
		Period:          1,
		Points:          2,
	}
	if err := bonusSvc.CreateQuestion(ctx, q); err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if err := bonusSvc.AddAnswerOption(ctx, 1, q.ID, 2); err != nil {
		t.Fatalf("AddAnswerOption failed: %v", err)
	}
	if err := bonusSvc.MarkCorrect(ctx, q.ID, 2); err != nil {
		t.Fatalf("MarkCorrect failed: %v", err)
	}
	bonusAwards, err := bonusSvc.Finalize(ctx, q.ID)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if bonusAwards[1] != 2 {
		t.Fatalf("expected alice to earn 2 bonus points, got %v", bonusAwards)
	}

	// carol joins in period 3, so periods 1 and 2 get synthesized
	if err := userRepo.UpsertUser(ctx, &domain.User{ID: 3, Username: "carol"}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := standingsSvc.EnsureBackfill(ctx, 3, 3); err != nil {
		t.Fatalf("EnsureBackfill failed: %v", err)
	}

	expected := map[[2]int64]int{
		{1, 1}: 5, // 3 from the match, 2 from the bonus
		{2, 1}: 2,
		{3, 1}: 2, // period minimum, set by bob
		{3, 2}: 0, // empty period backfills to zero
	}
	before, err := standingsRepo.ListStandings(ctx)
	if err != nil {
		t.Fatalf("ListStandings failed: %v", err)
	}
	if len(before) != len(expected) {
		t.Fatalf("expected %d standings rows, got %+v", len(expected), before)
	}
	for _, e := range before {
		if want := expected[[2]int64{e.UserID, int64(e.Period)}]; e.Points != want {
			t.Errorf("user %d period %d: expected %d points, got %d", e.UserID, e.Period, want, e.Points)
		}
	}

	if err := standingsSvc.Recalculate(ctx); err != nil {
		t.Fatalf("Recalculate failed: %v", err)
	}
	after, err := standingsRepo.ListStandings(ctx)
	if err != nil {
		t.Fatalf("ListStandings after recalculation failed: %v", err)
	}

	sortStandings(before)
	sortStandings(after)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("recalculated standings diverge from live ones:\nlive:    %+v\nrebuilt: %+v", before, after)
	}
}

func sortStandings(entries []domain.StandingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].UserID != entries[j].UserID {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Period < entries[j].Period
	})
}

// startTestDatabase spins up a throwaway postgres container with the
// schema applied, skipping the test when Docker is unavailable.
func startTestDatabase(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()
	if err != nil || pgContainer == nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	pool, err := database.NewPool(connStr, 5, time.Minute, 5*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := applyMigrations(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}

// applyMigrations executes the goose migration files in order,
// stripping the Down sections
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		contentStr := string(content)
		if downIdx := strings.Index(contentStr, "-- +goose Down"); downIdx != -1 {
			contentStr = contentStr[:downIdx]
		}

		if _, err := pool.Exec(ctx, contentStr); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}
