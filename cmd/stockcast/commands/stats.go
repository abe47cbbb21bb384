package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stockcast/internal/store"
	"stockcast/pkg/config"
	"stockcast/pkg/database"
)

// statsCmd prints the usage summary to stdout.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print usage statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	users := store.NewUserRepository(db.SQL)
	predictions := store.NewPredictionRepository(db.SQL)
	feedback := store.NewFeedbackRepository(db.SQL)
	reporter := store.NewReporter(users, predictions, feedback)

	summary, err := reporter.Summarize(context.Background())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}

	fmt.Printf("Users:           %d\n", summary.TotalUsers)
	fmt.Printf("Predictions:     %d\n", summary.TotalPredictions)
	fmt.Printf("Average rating:  %.2f\n", summary.AverageRating)
	fmt.Printf("Most used model: %s\n", summary.MostUsedModel)
	fmt.Printf("Feedback items:  %d\n", len(summary.Feedback))

	return nil
}
