package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/mission"
	"github.com/pthm-cable/launch/telemetry"
)

// Fitness weights. Attitude spread dominates; drift and fuel break ties between
// gain sets that hold equally well.
const (
	driftWeight = 0.001 // per metre of downrange drift
	fuelWeight  = 1e-5  // per unit of fuel burned
	failPenalty = 1e6   // for runs that could not be flown
)

// FitnessEvaluator flies headless missions and scores attitude holding.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary telemetry.Summary // first seed of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastSummary returns the flight summary of the first seed of the last evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for raw parameter values (lower = better), averaged
// over all seeds flown in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	summaries := make([]telemetry.Summary, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			sum, err := fe.runFlight(x, s)
			if err != nil {
				results[idx] = failPenalty
				return
			}
			summaries[idx] = sum
			results[idx] = computeFitness(sum)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}

	fe.mu.Lock()
	fe.lastSummary = summaries[0]
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runFlight flies one seed with the candidate gains applied.
func (fe *FitnessEvaluator) runFlight(x []float64, seed int64) (telemetry.Summary, error) {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		return telemetry.Summary{}, err
	}
	fe.params.ApplyToConfig(cfg, x)

	m, err := mission.New(cfg, mission.Options{Seed: seed})
	if err != nil {
		return telemetry.Summary{}, err
	}
	defer m.Close()
	return m.Fly(context.Background(), fe.maxTicks)
}

// computeFitness scores a flight (lower = better).
func computeFitness(s telemetry.Summary) float64 {
	if s.Samples == 0 {
		return failPenalty
	}
	return s.AttitudeStd + driftWeight*math.Abs(s.Drift) + fuelWeight*s.FuelUsed
}
