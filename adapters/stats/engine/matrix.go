package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"etbench/domain/result"
)

// minCorrelationSamples is the fewest common finite samples for which a
// Pearson coefficient is reported.
const minCorrelationSamples = 3

// Matrix is a symmetric formula-by-formula matrix. Row and column ordering
// matches the originating table's formula order.
type Matrix struct {
	Names []string
	Cells [][]float64
}

func newMatrix(names []string) *Matrix {
	cells := make([][]float64, len(names))
	for i := range cells {
		cells[i] = make([]float64, len(names))
	}
	return &Matrix{Names: append([]string(nil), names...), Cells: cells}
}

// At returns the cell at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Cells[i][j]
}

// Lookup returns the cell for a named formula pair.
func (m *Matrix) Lookup(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Cells[i][j], true
}

func (m *Matrix) index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Size returns the matrix dimension.
func (m *Matrix) Size() int {
	return len(m.Names)
}

// CorrelationMatrix computes the Pearson correlation between every formula
// pair's total series over their common finite timesteps. The matrix is
// symmetric; diagonal entries are exactly 1 for series with nonzero variance
// and NaN otherwise.
func (e *StatsEngine) CorrelationMatrix(table *result.Table) *Matrix {
	names := table.Formulas()
	m := newMatrix(names)

	for i, a := range names {
		totalA, _ := table.Total(a)

		data := finiteOnly(totalA)
		if len(data) > 1 && stat.Variance(data, nil) > 0 {
			m.Cells[i][i] = 1
		} else {
			m.Cells[i][i] = math.NaN()
		}

		for j := i + 1; j < len(names); j++ {
			totalB, _ := table.Total(names[j])
			xs, ys := commonFinite(totalA, totalB)

			r := math.NaN()
			if len(xs) >= minCorrelationSamples &&
				stat.Variance(xs, nil) > 0 && stat.Variance(ys, nil) > 0 {
				r = stat.Correlation(xs, ys, nil)
			}

			m.Cells[i][j] = r
			m.Cells[j][i] = r
		}
	}
	return m
}

// DifferenceMatrix computes the mean absolute difference between every
// formula pair's total series over their common finite timesteps. The matrix
// is symmetric with an exactly-zero diagonal.
func (e *StatsEngine) DifferenceMatrix(table *result.Table) *Matrix {
	names := table.Formulas()
	m := newMatrix(names)

	for i, a := range names {
		totalA, _ := table.Total(a)
		m.Cells[i][i] = 0

		for j := i + 1; j < len(names); j++ {
			totalB, _ := table.Total(names[j])
			xs, ys := commonFinite(totalA, totalB)

			d := math.NaN()
			if len(xs) > 0 {
				sum := 0.0
				for k := range xs {
					sum += math.Abs(xs[k] - ys[k])
				}
				d = sum / float64(len(xs))
			}

			m.Cells[i][j] = d
			m.Cells[j][i] = d
		}
	}
	return m
}
