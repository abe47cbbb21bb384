package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// NoDataLabel is reported when no prediction has been recorded yet.
const NoDataLabel = "No Data"

// Prediction is one recorded prediction request.
type Prediction struct {
	ID             int64
	UserID         int64
	Symbol         string
	ModelUsed      string
	PredictedValue float64
	CreatedAt      time.Time
}

// PredictionRepository stores prediction records. Append-only.
type PredictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository creates a new prediction repository.
func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create inserts a new prediction record with a server-assigned timestamp.
func (r *PredictionRepository) Create(ctx context.Context, p *Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO predictions (user_id, stock_symbol, model_used, predicted_value, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.Symbol, p.ModelUsed, p.PredictedValue, p.CreatedAt,
	).Scan(&p.ID)
}

// CountAll returns the total number of prediction records.
func (r *PredictionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count)
	return count, err
}

// CountByUser returns the number of prediction records for one user.
func (r *PredictionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM predictions WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

// MostUsedModel returns the model label with the highest record count, or
// NoDataLabel when no predictions exist. Ties resolve to whichever label
// the engine groups first.
func (r *PredictionRepository) MostUsedModel(ctx context.Context) (string, error) {
	query := `
		SELECT model_used
		FROM predictions
		GROUP BY model_used
		ORDER BY COUNT(model_used) DESC
		LIMIT 1
	`

	var label string
	err := r.db.QueryRowContext(ctx, query).Scan(&label)
	if errors.Is(err, sql.ErrNoRows) {
		return NoDataLabel, nil
	}
	if err != nil {
		return "", err
	}
	return label, nil
}
