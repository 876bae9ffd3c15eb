package refine

import (
	"github.com/meshpart/partition"
	"github.com/meshpart/partition/topology"
)

// KL is the Kernighan-Lin refiner: each pass repeatedly swaps the
// highest-gain pair of unlocked vertices drawn from two different parts
// (gain = cut-edge reduction the swap would produce), locking both
// vertices, until max_flips_per_pass swaps have been proposed or no
// improving/tolerable swap remains. The pass then rewinds to its
// best-cumulative-gain prefix.
type KL struct {
	Adjacency *topology.Adjacency
	Options
}

// Improve implements partition.ImprovePartition.
func (k KL) Improve(p *partition.Partition) error {
	if k.Adjacency == nil {
		return partition.NewError("refine.KL.Improve", partition.UnsupportedCombination, nil)
	}
	if k.Adjacency.NumVertices() != len(p.Ids) {
		return partition.NewError("refine.KL.Improve", partition.InvalidInput, nil)
	}
	for pass := 0; pass < k.maxPasses(); pass++ {
		if !klPass(k.Adjacency, p, k.Options) {
			break
		}
	}
	return nil
}

type klFlip struct {
	u, v     int
	idU, idV partition.PID
}

// klPass runs one Kernighan-Lin pass in place over p.Ids, and reports
// whether it found a net-positive-gain prefix to keep.
func klPass(adj *topology.Adjacency, p *partition.Partition, opts Options) bool {
	n := len(p.Ids)
	ids := p.Ids
	locked := make([]bool, n)
	weight := partWeights(p.Weights, ids)

	var flips []klFlip
	var cumGain, bestGain float64
	bestPrefix := 0
	badRun := 0

	maxFlips := opts.maxFlipsPerPass(n)
	for len(flips) < maxFlips {
		bestU, bestV := -1, -1
		var bestSwapGain float64
		found := false
		for u := 0; u < n; u++ {
			if locked[u] {
				continue
			}
			for v := u + 1; v < n; v++ {
				if locked[v] || ids[u] == ids[v] {
					continue
				}
				g := swapGain(adj, ids, u, v)
				if !found || g > bestSwapGain {
					bestU, bestV, bestSwapGain, found = u, v, g, true
				}
			}
		}
		if !found {
			break
		}

		if opts.MaxImbalancePerFlip > 0 {
			trial := copyWeights(weight)
			trial[ids[bestU]] -= p.Weights[bestU]
			trial[ids[bestV]] += p.Weights[bestU]
			trial[ids[bestV]] -= p.Weights[bestV]
			trial[ids[bestU]] += p.Weights[bestV]
			if relativeImbalance(trial) > opts.MaxImbalancePerFlip {
				locked[bestU], locked[bestV] = true, true
				continue
			}
			weight = trial
		} else {
			weight[ids[bestU]] -= p.Weights[bestU]
			weight[ids[bestV]] += p.Weights[bestU]
			weight[ids[bestV]] -= p.Weights[bestV]
			weight[ids[bestU]] += p.Weights[bestV]
		}

		if bestSwapGain > 0 {
			badRun = 0
		} else {
			badRun++
			if badRun > opts.MaxBadMoveInARow {
				break
			}
		}

		idU, idV := ids[bestU], ids[bestV]
		ids[bestU], ids[bestV] = idV, idU
		locked[bestU], locked[bestV] = true, true
		cumGain += bestSwapGain
		flips = append(flips, klFlip{bestU, bestV, idU, idV})
		if cumGain > bestGain {
			bestGain = cumGain
			bestPrefix = len(flips)
		}
	}

	for i := len(flips) - 1; i >= bestPrefix; i-- {
		f := flips[i]
		ids[f.u], ids[f.v] = f.idU, f.idV
	}
	return bestGain > 0
}

// swapGain is the Kernighan-Lin pairwise gain: the sum of each vertex's
// individual move gain, corrected for the edge between them (it would
// otherwise be counted as cut twice over).
func swapGain(adj *topology.Adjacency, ids []partition.PID, u, v int) float64 {
	gu := moveGain(adj, ids, u, ids[v])
	gv := moveGain(adj, ids, v, ids[u])
	var shared float64
	for i, n := range adj.Neighbors(u) {
		if n == v {
			shared = adj.NeighborWeights(u)[i]
			break
		}
	}
	return gu + gv - 2*shared
}

func copyWeights(m map[partition.PID]float64) map[partition.PID]float64 {
	out := make(map[partition.PID]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
