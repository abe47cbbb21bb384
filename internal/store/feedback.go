package store

import (
	"context"
	"database/sql"
	"time"
)

// Feedback is one free-text rating submitted by a user.
type Feedback struct {
	ID        int64
	UserID    int64
	Rating    int
	Message   string
	CreatedAt time.Time
}

// FeedbackRepository stores feedback records. Append-only.
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a new feedback record with a server-assigned timestamp.
// The rating range is not checked; any integer is stored as-is.
func (r *FeedbackRepository) Create(ctx context.Context, f *Feedback) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO feedback (user_id, rating, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		f.UserID, f.Rating, f.Message, f.CreatedAt,
	).Scan(&f.ID)
}

// AverageRating returns the mean rating over all records, or 0 when none
// exist.
func (r *FeedbackRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM feedback`,
	).Scan(&avg)
	return avg, err
}

// ListAll returns every feedback record in insertion order.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]Feedback, error) {
	query := `
		SELECT id, user_id, rating, message, created_at
		FROM feedback
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}
