package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/newscrawl/csv"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	if cfg.Prepare {
		if err := prepareInput(deps); err != nil {
			return err
		}
	}

	urls, err := csv.ReadURLs(cfg.Input, cfg.Header)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))
	deps.Logger.Info("harvest started",
		"input", cfg.Input,
		"urls", len(urls),
		"engine", cfg.Engine,
		"comments", cfg.Comments.Enabled,
	)

	progress := newProgressReporter(deps.Stderr, c.Progress)
	result, harvestErr := deps.Harvester.Harvest(deps.Ctx, urls, progress.Report)
	progress.Stop()
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", harvestErr)
		return harvestErr
	}

	for _, f := range result.Failures {
		deps.Logger.Warn("degraded record",
			"url", f.URL,
			"stage", string(f.Stage),
			"err", f.Err,
		)
	}

	// Records collected before an interrupt are still written.
	if err := deps.Writer.WriteRecords(context.WithoutCancel(deps.Ctx), result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", cfg.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records to %s (%d degraded extractions)\n",
		len(result.Records), cfg.Output, len(result.Failures))

	if harvestErr != nil {
		fmt.Fprintf(deps.Stderr, "harvest interrupted: %v\n", harvestErr)
		return harvestErr
	}
	return nil
}
