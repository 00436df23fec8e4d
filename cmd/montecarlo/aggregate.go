package main

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/launch/telemetry"
)

// AggregateStats summarizes a batch of flights.
type AggregateStats struct {
	Runs            int     `csv:"runs"`
	ApogeeMean      float64 `csv:"apogee_mean"`
	ApogeeStd       float64 `csv:"apogee_std"`
	ApogeeP10       float64 `csv:"apogee_p10"`
	ApogeeP90       float64 `csv:"apogee_p90"`
	DriftMean       float64 `csv:"drift_mean"`
	DriftStd        float64 `csv:"drift_std"`
	AttitudeStdMean float64 `csv:"attitude_std_mean"`
	FlightTimeMean  float64 `csv:"flight_time_mean"`
	KarmanRate      float64 `csv:"karman_rate"`
}

// Aggregate computes batch statistics. Spreads are zero for fewer than two runs.
func Aggregate(runs []telemetry.Summary) AggregateStats {
	agg := AggregateStats{Runs: len(runs)}
	if len(runs) == 0 {
		return agg
	}

	apogee := make([]float64, len(runs))
	drift := make([]float64, len(runs))
	attitude := make([]float64, len(runs))
	flight := make([]float64, len(runs))
	var karman int
	for i, r := range runs {
		apogee[i] = r.Apogee
		drift[i] = r.Drift
		attitude[i] = r.AttitudeStd
		flight[i] = r.FlightTime
		if r.ReachedKarman {
			karman++
		}
	}

	agg.ApogeeMean = stat.Mean(apogee, nil)
	agg.DriftMean = stat.Mean(drift, nil)
	agg.AttitudeStdMean = stat.Mean(attitude, nil)
	agg.FlightTimeMean = stat.Mean(flight, nil)
	agg.KarmanRate = float64(karman) / float64(len(runs))

	if len(runs) > 1 {
		agg.ApogeeStd = stat.StdDev(apogee, nil)
		agg.DriftStd = stat.StdDev(drift, nil)
	}

	sort.Float64s(apogee)
	agg.ApogeeP10 = stat.Quantile(0.1, stat.Empirical, apogee, nil)
	agg.ApogeeP90 = stat.Quantile(0.9, stat.Empirical, apogee, nil)

	return agg
}
