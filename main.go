package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"zero-termico/config"
	"zero-termico/scraper/nimbus"
	"zero-termico/services"
	"zero-termico/site"
	"zero-termico/storage"
	"zero-termico/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Zero termico update starting ===")
	logger.Info("Config: source %s | data %s | output %s | fetch %s",
		cfg.SourceURL, cfg.DataPath, cfg.OutputDir, cfg.FetchMode)

	scraper := nimbus.New(cfg, logger)
	if err := run(context.Background(), cfg, scraper, clockwork.NewRealClock(), logger, os.Stdout); err != nil {
		logger.Error("Update aborted: %v", err)
		return
	}
	logger.Info("Update completed")
}

// run executes one load → scrape → merge → save → generate pass. A failed or
// empty scrape ends the run without touching any file and is not an error.
func run(ctx context.Context, cfg *config.Config, scraper *nimbus.Scraper, clock clockwork.Clock,
	logger *utils.Logger, out io.Writer) error {
	store := storage.NewCSVStore(cfg.DataPath, logger)
	existing := store.Load()

	fresh, err := scraper.Scrape(ctx)
	if err != nil {
		if errors.Is(err, nimbus.ErrNoData) {
			logger.Warn("No new readings found on %s; nothing updated", cfg.SourceURL)
		} else {
			logger.Error("Scrape failed: %v; nothing updated", err)
		}
		return nil
	}

	merged, stats := services.NewMerger(logger).Merge(existing, fresh)

	if err := store.Save(merged); err != nil {
		return err
	}

	generator, err := site.NewGenerator(cfg.OutputDir, cfg.SiteTitle, clock, logger)
	if err != nil {
		return err
	}
	if _, err := generator.Generate(merged); err != nil {
		return err
	}

	summary := services.NewSummaryService(logger)
	summary.Print(out, summary.Generate(merged, stats))
	return nil
}
