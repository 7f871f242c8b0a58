package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elcap/swingdash/internal/job"
	"github.com/elcap/swingdash/pkg/config"
	"github.com/elcap/swingdash/pkg/logger"
)

// onceCmd represents the once command
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single dashboard refresh and exit",
	Long: `Runs one complete refresh: fetch, score, assemble the xlsx
dashboard, send the email, then exit. No HTTP server, no schedule.

Example:
  go run ./cmd/swingdash once
  go run ./cmd/swingdash once --no-email`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(onceCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if noEmail {
		cfg.Mail.Skip = true
	}

	log := logger.New(cfg)

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	outcome, err := runner.Trigger(cmd.Context())
	if outcome != job.OutcomeCompleted {
		return refreshError(outcome, err)
	}

	fmt.Printf("Dashboard written to %s\n", runner.ArtifactPath())
	return nil
}

// refreshError describes a non-completed outcome. Busy carries no
// underlying error, so only wrap when there is one.
func refreshError(outcome job.Outcome, err error) error {
	if err != nil {
		return fmt.Errorf("refresh %s: %w", outcome, err)
	}
	return fmt.Errorf("refresh %s", outcome)
}
