// Command mowsim runs mowing-coverage experiments: it generates fields,
// compares base station placement strategies, and writes per-cycle cut
// data under a fresh run directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/verdantlabs/mowsim/internal/config"
	"github.com/verdantlabs/mowsim/internal/export"
	"github.com/verdantlabs/mowsim/internal/sim"
	"github.com/verdantlabs/mowsim/internal/station"
)

func main() {
	configPath := flag.String("config", "mowsim.yaml", "Path to the YAML configuration")
	outputDir := flag.String("out", "out", "Output directory for run artifacts")
	seed := flag.Int64("seed", 0, "Override the configured RNG seed (0 keeps the config value)")
	strategy := flag.String("strategy", "all", "Station strategy to run, or \"all\"")
	heatmaps := flag.Bool("heatmaps", true, "Render a PNG heatmap per recorded cycle")
	metricsOnly := flag.Bool("metrics-only", false, "Skip grid and cycle artifacts, write only metrics.json")
	verbose := flag.Bool("v", false, "Log batch progress to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Simulator.Seed = *seed
	}

	var strategies []station.Strategy
	if *strategy != "all" {
		s, err := station.ParseStrategy(*strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		strategies = []station.Strategy{s}
	}

	writer, err := export.NewWriter(*outputDir, cfg.Simulator.DimTassel, *heatmaps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing output: %v\n", err)
		os.Exit(1)
	}

	var rec sim.Recorder = writer
	if *metricsOnly {
		rec = export.Discard{}
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "mowsim: ", log.LstdFlags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := sim.RunBatch(ctx, cfg, strategies, rec, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running batch: %v\n", err)
		os.Exit(1)
	}

	if err := writer.WriteMetrics(results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Completed %d runs, artifacts in %s\n", len(results), writer.Root())
	for _, m := range results {
		fmt.Printf("  map %d rep %d %-22s cycles=%d steps=%d cut=%d enclosed=%v\n",
			m.MapIndex, m.Repetition, m.Label, m.Cycles, m.Steps, m.TasselsCut, m.Enclosed)
	}
}
