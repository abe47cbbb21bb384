package store

import (
	"context"

	"stockcast/internal/trend"
)

// Summary aggregates usage statistics across all three record sets.
type Summary struct {
	TotalUsers       int64
	TotalPredictions int64
	AverageRating    float64
	MostUsedModel    string
	Feedback         []Feedback
}

// Reporter produces read-only usage summaries.
type Reporter struct {
	users       *UserRepository
	predictions *PredictionRepository
	feedback    *FeedbackRepository
}

// NewReporter creates a new reporter over the three repositories.
func NewReporter(users *UserRepository, predictions *PredictionRepository, feedback *FeedbackRepository) *Reporter {
	return &Reporter{
		users:       users,
		predictions: predictions,
		feedback:    feedback,
	}
}

// Summarize collects the usage statistics. The average rating is rounded
// to two decimals for display.
func (r *Reporter) Summarize(ctx context.Context) (*Summary, error) {
	totalUsers, err := r.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalPredictions, err := r.predictions.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	avgRating, err := r.feedback.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	mostUsed, err := r.predictions.MostUsedModel(ctx)
	if err != nil {
		return nil, err
	}

	allFeedback, err := r.feedback.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalUsers:       totalUsers,
		TotalPredictions: totalPredictions,
		AverageRating:    trend.Round2(avgRating),
		MostUsedModel:    mostUsed,
		Feedback:         allFeedback,
	}, nil
}
