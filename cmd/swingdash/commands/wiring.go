package commands

import (
	"fmt"

	"github.com/elcap/swingdash/internal/job"
	"github.com/elcap/swingdash/internal/market"
	"github.com/elcap/swingdash/internal/notify"
	"github.com/elcap/swingdash/internal/report"
	"github.com/elcap/swingdash/internal/universe"
	"github.com/elcap/swingdash/pkg/config"
	"github.com/elcap/swingdash/pkg/httputil"
	"github.com/elcap/swingdash/pkg/logger"
)

// buildRunner wires the full refresh pipeline: universe, market client,
// report assembler, mailer.
func buildRunner(cfg *config.Config, log *logger.Logger) (*job.Runner, error) {
	uni, err := universe.Load(cfg.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	httpClient := httputil.New(log, cfg.FetchTimeout).WithRateLimit(4, 8)
	provider := market.NewYahooProvider(httpClient, log)
	client := market.NewClient(provider, log, cfg.FetchTimeout)

	assembler := report.NewAssembler(cfg.OutputDir, log)
	mailer := notify.NewMailer(cfg.Mail, log)

	return job.NewRunner(client, uni, assembler, mailer, log), nil
}
