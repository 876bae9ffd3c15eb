// Package bisect implements the recursive bisection partitioners RCB
// (axis-aligned) and RIB (inertia-aligned), sharing a single
// weighted-median split primitive.
package bisect

import (
	"sort"

	"github.com/meshpart/partition"
)

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// weightedMedianSplit partitions idxs into two contiguous halves, ordered
// by coord, such that the cumulative weight of the left half is the
// smallest prefix weight >= half the total. Ties on coord are broken by
// original index, giving a stable total order over coincident points.
func weightedMedianSplit(idxs []int, weights []float64, coord func(i int) float64) (left, right []int) {
	sorted := append([]int(nil), idxs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := coord(sorted[i]), coord(sorted[j])
		if ci != cj {
			return ci < cj
		}
		return sorted[i] < sorted[j]
	})

	var total float64
	for _, i := range idxs {
		total += weights[i]
	}
	half := total / 2

	var cum float64
	split := len(sorted)
	for k, i := range sorted {
		cum += weights[i]
		if cum >= half {
			split = k + 1
			break
		}
	}
	return sorted[:split], sorted[split:]
}

// assignPart mints a fresh PID and assigns it to every point in idxs.
func assignPart(p *partition.Partition, idxs []int) {
	id := partition.NewPID()
	for _, i := range idxs {
		p.Ids[i] = id
	}
}
