// Package engine derives cross-formula statistics from a results table.
//
// NaN policy is pairwise-complete: each matrix cell is computed over the
// intersection of timesteps where both series are finite, and per-formula
// summaries drop non-finite samples independently. Cells with too few common
// samples are NaN rather than fabricated.
package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"etbench/domain/result"
)

// StatsEngine provides statistical computation over result tables.
type StatsEngine struct{}

// NewStatsEngine creates a new statistics engine.
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// FormulaSummary is a per-formula description of the total series.
type FormulaSummary struct {
	Formula string  `json:"formula"`
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	CV      float64 `json:"cv"` // coefficient of variation, NaN when mean is zero
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
}

// Summary computes per-formula summary statistics over the time axis, using
// only each result's total series. Order matches the table's formula order.
func (e *StatsEngine) Summary(table *result.Table) []FormulaSummary {
	summaries := make([]FormulaSummary, 0, len(table.Formulas()))
	for _, name := range table.Formulas() {
		total, _ := table.Total(name)
		data := finiteOnly(total)

		summary := FormulaSummary{
			Formula: name,
			Samples: len(data),
			Mean:    math.NaN(),
			StdDev:  math.NaN(),
			CV:      math.NaN(),
			Min:     math.NaN(),
			Max:     math.NaN(),
			Median:  math.NaN(),
		}
		if len(data) > 0 {
			summary.Mean, _ = stats.Mean(data)
			summary.StdDev, _ = stats.StandardDeviationSample(data)
			summary.Min, _ = stats.Min(data)
			summary.Max, _ = stats.Max(data)
			summary.Median, _ = stats.Median(data)
			if summary.Mean != 0 {
				summary.CV = summary.StdDev / summary.Mean
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// finiteOnly drops NaN and infinite samples.
func finiteOnly(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// commonFinite returns the paired samples where both series are finite.
func commonFinite(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
