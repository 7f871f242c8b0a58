package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elcap/swingdash/internal/api"
	"github.com/elcap/swingdash/internal/api/handlers"
	"github.com/elcap/swingdash/internal/scheduler"
	"github.com/elcap/swingdash/pkg/config"
	"github.com/elcap/swingdash/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard service",
	Long: `Starts the full dashboard service:
- a warm-up refresh run immediately on start
- four scheduled daily refreshes in the configured market timezone
- the HTTP API serving the latest published dashboard

Endpoints:
  GET  /health        - Health check
  GET  /api/summary   - Latest dashboard summary
  POST /api/refresh   - Trigger an on-demand refresh
  GET  /api/jobs      - Scheduler statistics
  GET  /download      - Latest xlsx artifact

Example:
  go run ./cmd/swingdash serve
  go run ./cmd/swingdash serve --port 8080 --web-only`,
	RunE: runServe,
}

var (
	servePort string
	webOnly   bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (overrides PORT)")
	serveCmd.Flags().BoolVar(&webOnly, "web-only", false, "serve HTTP only, no warm-up run and no schedule")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if noEmail {
		cfg.Mail.Skip = true
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":     cfg.Port,
		"env":      cfg.Env,
		"timezone": cfg.Timezone,
	}).Info("Initializing dashboard service")

	// 3. Wire the refresh pipeline
	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	// 4. Scheduler with the four daily refresh times
	sched := scheduler.New(log, cfg.Location())
	if err := sched.AddJob(scheduler.NewRefreshJob(runner, log)); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	if !webOnly {
		sched.Start()
		defer sched.Stop()

		// Warm-up run: populate the dashboard without delaying the
		// HTTP server.
		go func() {
			if _, err := runner.Trigger(context.Background()); err != nil {
				log.WithError(err).Warn("Warm-up refresh failed")
			}
		}()
	}

	// 5. HTTP server
	dashboard := handlers.NewDashboardHandler(runner, log)
	jobs := handlers.NewJobsHandler(sched, log)
	router := api.NewRouter(dashboard, jobs, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Dashboard service started")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
