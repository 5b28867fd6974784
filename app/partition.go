package app

import (
	"fmt"
	"math"

	"etbench/domain/formula"
	"etbench/domain/result"
)

// PartitionTolerance is the relative deviation allowed between a partitioned
// result's total and the sum of its components before a mismatch warning is
// attached.
const PartitionTolerance = 0.01

// partitionEpsilon guards the relative check when total is near zero.
const partitionEpsilon = 1e-9

// Partition returns the component breakdown of a computation when its spec
// declares partition support and components are present; otherwise an empty
// map. Partitioning is opportunistic, never an error.
func Partition(comp result.Computation, spec formula.Spec) map[string][]float64 {
	if !spec.SupportsPartition || !comp.Partitioned() {
		return map[string][]float64{}
	}
	return comp.Components
}

// VerifyPartition checks that components sum to total within the relative
// tolerance at every timestep, returning the worst relative deviation and
// whether the invariant held. The check reports; it never corrects.
func VerifyPartition(comp result.Computation, tolerance float64) (float64, bool) {
	if !comp.Partitioned() {
		return 0, true
	}
	// A component series shorter or longer than the total can never sum to it
	for _, series := range comp.Components {
		if len(series) != len(comp.Total) {
			return math.Inf(1), false
		}
	}

	maxDeviation := 0.0
	for i, total := range comp.Total {
		sum := 0.0
		for _, series := range comp.Components {
			sum += series[i]
		}

		deviation := math.Abs(total - sum)
		if math.Abs(total) > partitionEpsilon {
			deviation /= math.Abs(total)
		}
		if deviation > maxDeviation {
			maxDeviation = deviation
		}
	}
	return maxDeviation, maxDeviation <= tolerance
}

// CheckPartitions verifies the partition-sum invariant for every partitioned
// computation in the table, attaching a data-quality warning where it is
// violated.
func CheckPartitions(table *result.Table, registry *formula.Registry) {
	for _, name := range table.Formulas() {
		comp, _ := table.Result(name)
		spec, ok := registry.Get(name)
		if !ok || !spec.SupportsPartition {
			continue
		}
		deviation, ok := VerifyPartition(comp, PartitionTolerance)
		if !ok {
			table.AttachWarning(name, result.Warning{
				Kind: result.WarnPartitionMismatch,
				Message: fmt.Sprintf("components deviate from total by %.2f%% (tolerance %.0f%%)",
					deviation*100, PartitionTolerance*100),
			})
		}
	}
}
