package main

import (
	"fmt"

	"github.com/fwojciec/newscrawl/csv"
)

// Run executes the prepare command.
func (c *PrepareCmd) Run(deps *Dependencies) error {
	return prepareInput(deps)
}

// prepareInput rewrites the configured input CSV in place.
func prepareInput(deps *Dependencies) error {
	cfg := deps.Config
	stats, err := csv.Preprocess(cfg.Input, csv.Options{
		Keyword: cfg.Keyword,
		Dedupe:  cfg.Dedupe,
		Header:  cfg.Header,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	deps.Logger.Info("prepared input",
		"path", cfg.Input,
		"read", stats.Read,
		"duplicates", stats.Duplicates,
		"filtered", stats.Filtered,
		"written", stats.Written,
	)
	fmt.Fprintf(deps.Stdout, "Prepared %s: %d rows read, %d duplicates removed, %d filtered, %d kept\n",
		cfg.Input, stats.Read, stats.Duplicates, stats.Filtered, stats.Written)
	return nil
}
