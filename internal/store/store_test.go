package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"stockcast/internal/apperr"
	"stockcast/pkg/config"
	"stockcast/pkg/database"
)

// newTestDB opens a fresh SQLite database in a per-test temp directory and
// runs the migrations against it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		},
	}

	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(db.Close)

	return db.SQL
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error: %v", err)
	}
	if got.ID != u.ID || got.Email != "alice@example.com" || got.PasswordHash != "hash" {
		t.Errorf("GetByUsername() = %+v, want id=%d email=alice@example.com", got, u.ID)
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("GetByID() username = %q, want alice", byID.Username)
	}
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &User{Username: "alice", Email: "a@example.com", PasswordHash: "h1"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	second := &User{Username: "alice", Email: "b@example.com", PasswordHash: "h2"}
	if err := repo.Create(ctx, second); !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("Create() error = %v, want ErrDuplicateUsername", err)
	}

	count, err := repo.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll() error: %v", err)
	}
	if count != 1 {
		t.Errorf("CountAll() = %d, want 1", count)
	}
}

func TestUserRepositoryGetByUsernameMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetByUsername() error = %v, want sql.ErrNoRows", err)
	}
}

func createUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	u := &User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return u.ID
}

func TestPredictionRepositoryCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	records := []Prediction{
		{UserID: alice, Symbol: "AAPL", ModelUsed: "basic", PredictedValue: 102.0},
		{UserID: alice, Symbol: "MSFT", ModelUsed: "basic", PredictedValue: 51.0},
		{UserID: bob, Symbol: "AAPL", ModelUsed: "lstm", PredictedValue: 204.0},
	}
	for i := range records {
		if err := repo.Create(ctx, &records[i]); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if records[i].ID == 0 {
			t.Fatal("Create() did not assign an id")
		}
	}

	total, err := repo.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll() error: %v", err)
	}
	if total != 3 {
		t.Errorf("CountAll() = %d, want 3", total)
	}

	aliceCount, err := repo.CountByUser(ctx, alice)
	if err != nil {
		t.Fatalf("CountByUser() error: %v", err)
	}
	if aliceCount != 2 {
		t.Errorf("CountByUser(alice) = %d, want 2", aliceCount)
	}
}

func TestPredictionRepositoryMostUsedModel(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	ctx := context.Background()

	label, err := repo.MostUsedModel(ctx)
	if err != nil {
		t.Fatalf("MostUsedModel() error: %v", err)
	}
	if label != NoDataLabel {
		t.Errorf("MostUsedModel() with no records = %q, want %q", label, NoDataLabel)
	}

	userID := createUser(t, db, "alice")
	for _, model := range []string{"basic", "basic", "lstm"} {
		p := &Prediction{UserID: userID, Symbol: "AAPL", ModelUsed: model, PredictedValue: 102.0}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	label, err = repo.MostUsedModel(ctx)
	if err != nil {
		t.Fatalf("MostUsedModel() error: %v", err)
	}
	if label != "basic" {
		t.Errorf("MostUsedModel() = %q, want basic", label)
	}
}

func TestFeedbackRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	avg, err := repo.AverageRating(ctx)
	if err != nil {
		t.Fatalf("AverageRating() error: %v", err)
	}
	if avg != 0 {
		t.Errorf("AverageRating() with no records = %v, want 0", avg)
	}

	userID := createUser(t, db, "alice")
	for _, rating := range []int{5, 4} {
		f := &Feedback{UserID: userID, Rating: rating, Message: "ok"}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	// The rating range is deliberately unchecked on write.
	wild := &Feedback{UserID: userID, Rating: -9, Message: "off the scale"}
	if err := repo.Create(ctx, wild); err != nil {
		t.Fatalf("Create() error for out-of-range rating: %v", err)
	}

	avg, err = repo.AverageRating(ctx)
	if err != nil {
		t.Fatalf("AverageRating() error: %v", err)
	}
	if avg != 0 {
		// (5 + 4 - 9) / 3
		t.Errorf("AverageRating() = %v, want 0", avg)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll() returned %d records, want 3", len(all))
	}
	if all[0].Rating != 5 || all[1].Rating != 4 || all[2].Rating != -9 {
		t.Errorf("ListAll() out of insertion order: %+v", all)
	}
}

func TestReporterSummarize(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	predictions := NewPredictionRepository(db)
	feedback := NewFeedbackRepository(db)
	reporter := NewReporter(users, predictions, feedback)

	summary, err := reporter.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary.TotalUsers != 0 || summary.TotalPredictions != 0 || summary.AverageRating != 0 {
		t.Errorf("empty Summarize() = %+v, want zeros", summary)
	}
	if summary.MostUsedModel != NoDataLabel {
		t.Errorf("MostUsedModel = %q, want %q", summary.MostUsedModel, NoDataLabel)
	}

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	for _, model := range []string{"basic", "basic", "lstm"} {
		p := &Prediction{UserID: alice, Symbol: "AAPL", ModelUsed: model, PredictedValue: 102.0}
		if err := predictions.Create(ctx, p); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	for _, rating := range []int{5, 4} {
		f := &Feedback{UserID: alice, Rating: rating, Message: "fine"}
		if err := feedback.Create(ctx, f); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	summary, err = reporter.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", summary.TotalUsers)
	}
	if summary.TotalPredictions != 3 {
		t.Errorf("TotalPredictions = %d, want 3", summary.TotalPredictions)
	}
	if summary.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", summary.AverageRating)
	}
	if summary.MostUsedModel != "basic" {
		t.Errorf("MostUsedModel = %q, want basic", summary.MostUsedModel)
	}
	if len(summary.Feedback) != 2 {
		t.Errorf("Feedback length = %d, want 2", len(summary.Feedback))
	}
}
