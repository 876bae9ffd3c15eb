// Package refine implements the two graph-based local-search refiners,
// Kernighan-Lin (pairwise swap) and Fiduccia-Mattheyses (single-vertex
// move with gain buckets), sharing a common pass/accept/rollback
// contract: a pass proposes a bounded number of flips, locks every
// flipped vertex for the rest of the pass, accepts a flip if it improves
// cumulative gain or if the run of non-improving flips is still short
// enough, rejects flips that would blow the per-flip imbalance budget,
// and at pass end rewinds to the best-gain prefix.
package refine

import (
	"github.com/meshpart/partition"
	"github.com/meshpart/partition/topology"
)

// Options bounds a refiner's pass/flip search, shared by KL and FM.
type Options struct {
	MaxPasses           int     // <= 0 defaults to 10
	MaxFlipsPerPass     int     // <= 0 defaults to len(points)
	MaxBadMoveInARow     int     // consecutive non-improving flips tolerated before a pass stops proposing
	MaxImbalancePerFlip float64 // relative (max-min)/total weight bound a flip may not exceed; <= 0 means unbounded
}

func (o Options) maxPasses() int {
	if o.MaxPasses > 0 {
		return o.MaxPasses
	}
	return 10
}

func (o Options) maxFlipsPerPass(n int) int {
	if o.MaxFlipsPerPass > 0 {
		return o.MaxFlipsPerPass
	}
	return n
}

// weightToPart sums the edge weight from v to neighbors currently
// assigned to target.
func weightToPart(adj *topology.Adjacency, ids []partition.PID, v int, target partition.PID) float64 {
	var w float64
	for i, n := range adj.Neighbors(v) {
		if ids[n] == target {
			w += adj.NeighborWeights(v)[i]
		}
	}
	return w
}

// moveGain is the Fiduccia-Mattheyses single-vertex gain: how much the
// cut size shrinks (positive) or grows (negative) if v moves from its
// current part to target.
func moveGain(adj *topology.Adjacency, ids []partition.PID, v int, target partition.PID) float64 {
	return weightToPart(adj, ids, v, target) - weightToPart(adj, ids, v, ids[v])
}

// partWeights sums weights by current PID.
func partWeights(weights []float64, ids []partition.PID) map[partition.PID]float64 {
	out := make(map[partition.PID]float64)
	for i, id := range ids {
		out[id] += weights[i]
	}
	return out
}

// relativeImbalance is (max-min)/total over the given per-part weights.
func relativeImbalance(weight map[partition.PID]float64) float64 {
	if len(weight) == 0 {
		return 0
	}
	var min, max, total float64
	first := true
	for _, w := range weight {
		if first || w < min {
			min = w
		}
		if first || w > max {
			max = w
		}
		total += w
		first = false
	}
	if total == 0 {
		return 0
	}
	return (max - min) / total
}
