// Package main flies many seeds of the same configuration headless and
// summarizes how the trajectory spreads under drag and perturbation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/mission"
	"github.com/pthm-cable/launch/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	runs := flag.Int("runs", 20, "Number of seeds to fly")
	firstSeed := flag.Int64("seed", 1, "Seed of the first run; run i uses seed+i")
	maxTicks := flag.Int("max-ticks", 60*600, "Tick cap per run")
	workers := flag.Int("workers", 4, "Flights run in parallel")
	outputDir := flag.String("output", "", "Output directory for results (required)")
	keepRuns := flag.Bool("keep-runs", false, "Write full telemetry for every run under output/run_<seed>")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Per-run mission logs are noise here; keep warnings.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Flying %d seeds from %d with %d workers, guidance=%s, max_ticks=%d\n",
		*runs, *firstSeed, *workers, baseCfg.Guidance.Strategy, *maxTicks)

	results := make([]telemetry.Summary, *runs)
	errs := make([]error, *runs)
	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0
	startTime := time.Now()

	for w := 0; w < max(*workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := *firstSeed + int64(i)
				dir := ""
				if *keepRuns {
					dir = filepath.Join(*outputDir, fmt.Sprintf("run_%d", seed))
				}
				results[i], errs[i] = flyOne(ctx, baseCfg, seed, dir, *maxTicks)

				mu.Lock()
				completed++
				fmt.Printf("Run %d/%d: seed=%d apogee=%.0fm flight=%.0fs | elapsed: %s\n",
					completed, *runs, seed, results[i].Apogee, results[i].FlightTime,
					time.Since(startTime).Round(time.Second))
				mu.Unlock()
			}
		}()
	}

	scheduled := 0
	for ; scheduled < *runs && ctx.Err() == nil; scheduled++ {
		jobs <- scheduled
	}
	close(jobs)
	wg.Wait()

	var flown []telemetry.Summary
	for i, err := range errs[:scheduled] {
		if err != nil {
			log.Printf("seed %d: %v", *firstSeed+int64(i), err)
			continue
		}
		flown = append(flown, results[i])
	}

	resultsPath := filepath.Join(*outputDir, "results.csv")
	f, err := os.Create(resultsPath)
	if err != nil {
		log.Fatalf("failed to create results file: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&flown, f); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}

	agg := Aggregate(flown)
	aggPath := filepath.Join(*outputDir, "aggregate.csv")
	af, err := os.Create(aggPath)
	if err != nil {
		log.Fatalf("failed to create aggregate file: %v", err)
	}
	defer af.Close()
	if err := gocsv.MarshalFile(&[]AggregateStats{agg}, af); err != nil {
		log.Fatalf("failed to write aggregate: %v", err)
	}

	fmt.Printf("\n%d flights in %s\n", len(flown), time.Since(startTime).Round(time.Second))
	fmt.Printf("  apogee:        mean %.0f m, std %.0f m, p10 %.0f m, p90 %.0f m\n",
		agg.ApogeeMean, agg.ApogeeStd, agg.ApogeeP10, agg.ApogeeP90)
	fmt.Printf("  drift:         mean %.1f m, std %.1f m\n", agg.DriftMean, agg.DriftStd)
	fmt.Printf("  attitude std:  mean %.3f deg\n", agg.AttitudeStdMean)
	fmt.Printf("  reached karman: %.0f%%\n", agg.KarmanRate*100)
	fmt.Printf("\nResults saved to: %s\n", resultsPath)
}

// flyOne flies a single seed on its own copy of the config.
func flyOne(ctx context.Context, base *config.Config, seed int64, dir string, maxTicks int) (telemetry.Summary, error) {
	cfg, err := base.Clone()
	if err != nil {
		return telemetry.Summary{}, err
	}
	m, err := mission.New(cfg, mission.Options{Seed: seed, OutputDir: dir})
	if err != nil {
		return telemetry.Summary{}, err
	}
	defer m.Close()
	return m.Fly(ctx, maxTicks)
}
