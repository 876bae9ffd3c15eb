package refine

import (
	"math"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/topology"
)

// FM is the Fiduccia-Mattheyses refiner: each pass keeps a gain-indexed
// bucket list of every vertex's best single-move gain and repeatedly
// pops the highest-gain unlocked vertex, moves it, and updates its
// neighbors' gains, until max_flips_per_pass moves have been proposed or
// none remain. The pass then rewinds to its best-cumulative-gain prefix.
type FM struct {
	Adjacency *topology.Adjacency
	Options
}

// Improve implements partition.ImprovePartition.
func (f FM) Improve(p *partition.Partition) error {
	if f.Adjacency == nil {
		return partition.NewError("refine.FM.Improve", partition.UnsupportedCombination, nil)
	}
	if f.Adjacency.NumVertices() != len(p.Ids) {
		return partition.NewError("refine.FM.Improve", partition.InvalidInput, nil)
	}
	for pass := 0; pass < f.maxPasses(); pass++ {
		if !fmPass(f.Adjacency, p, f.Options) {
			break
		}
	}
	return nil
}

type fmFlip struct {
	v        int
	from, to partition.PID
}

func fmPass(adj *topology.Adjacency, p *partition.Partition, opts Options) bool {
	n := len(p.Ids)
	ids := p.Ids
	parts := p.SortedParts()
	if len(parts) < 2 {
		return false
	}
	locked := make([]bool, n)

	gain := make([]float64, n)
	target := make([]partition.PID, n)
	bucketOf := make([]int, n)
	buckets := newGainBuckets()
	for v := 0; v < n; v++ {
		g, t := bestMove(adj, ids, v, parts)
		gain[v], target[v] = g, t
		key := int(math.Round(g))
		bucketOf[v] = key
		buckets.insert(key, v)
	}

	var flips []fmFlip
	var cumGain, bestGain float64
	bestPrefix := 0
	badRun := 0
	weight := partWeights(p.Weights, ids)

	maxFlips := opts.maxFlipsPerPass(n)
	for len(flips) < maxFlips {
		v, _, ok := buckets.pop(locked)
		if !ok {
			break
		}
		g, t := gain[v], target[v]

		if opts.MaxImbalancePerFlip > 0 {
			trial := copyWeights(weight)
			trial[ids[v]] -= p.Weights[v]
			trial[t] += p.Weights[v]
			if relativeImbalance(trial) > opts.MaxImbalancePerFlip {
				locked[v] = true
				continue
			}
			weight = trial
		} else {
			weight[ids[v]] -= p.Weights[v]
			weight[t] += p.Weights[v]
		}

		if g > 0 {
			badRun = 0
		} else {
			badRun++
			if badRun > opts.MaxBadMoveInARow {
				break
			}
		}

		from := ids[v]
		ids[v] = t
		locked[v] = true
		cumGain += g
		flips = append(flips, fmFlip{v, from, t})
		if cumGain > bestGain {
			bestGain = cumGain
			bestPrefix = len(flips)
		}

		for _, nb := range adj.Neighbors(v) {
			if locked[nb] {
				continue
			}
			newG, newT := bestMove(adj, ids, nb, parts)
			buckets.remove(bucketOf[nb], nb)
			newKey := int(math.Round(newG))
			buckets.insert(newKey, nb)
			bucketOf[nb] = newKey
			gain[nb], target[nb] = newG, newT
		}
	}

	for i := len(flips) - 1; i >= bestPrefix; i-- {
		f := flips[i]
		ids[f.v] = f.from
	}
	return bestGain > 0
}

// bestMove returns the largest single-move gain available to v (and the
// part achieving it) among every part other than its own.
func bestMove(adj *topology.Adjacency, ids []partition.PID, v int, parts []partition.PID) (float64, partition.PID) {
	own := ids[v]
	best := math.Inf(-1)
	var bestTarget partition.PID
	found := false
	for _, t := range parts {
		if t == own {
			continue
		}
		g := moveGain(adj, ids, v, t)
		if !found || g > best {
			best, bestTarget, found = g, t, true
		}
	}
	if !found {
		return 0, own
	}
	return best, bestTarget
}

// gainBuckets is the Fiduccia-Mattheyses gain-indexed bucket list: a
// map from integer gain key to the vertices currently at that gain,
// plus a max-key cursor so pop need not rescan every key on every
// call. insert bumps the cursor up in O(1); pop only pays to rescan
// once its current bucket is fully drained.
type gainBuckets struct {
	entries map[int][]int
	maxKey  int
	hasMax  bool
}

func newGainBuckets() *gainBuckets {
	return &gainBuckets{entries: make(map[int][]int)}
}

func (b *gainBuckets) insert(key, v int) {
	b.entries[key] = append(b.entries[key], v)
	if !b.hasMax || key > b.maxKey {
		b.maxKey, b.hasMax = key, true
	}
}

func (b *gainBuckets) remove(key, v int) {
	vs := b.entries[key]
	for i, candidate := range vs {
		if candidate == v {
			last := len(vs) - 1
			vs[i] = vs[last]
			b.entries[key] = vs[:last]
			return
		}
	}
}

// pop removes and returns an unlocked vertex from the highest-keyed
// bucket. A bucket found to hold nothing but locked vertices is
// dropped entirely and the cursor descends to the new max key.
func (b *gainBuckets) pop(locked []bool) (v int, key int, ok bool) {
	for b.hasMax {
		vs := b.entries[b.maxKey]
		for i, candidate := range vs {
			if !locked[candidate] {
				last := len(vs) - 1
				vs[i] = vs[last]
				b.entries[b.maxKey] = vs[:last]
				return candidate, b.maxKey, true
			}
		}
		delete(b.entries, b.maxKey)
		b.descend()
	}
	return 0, 0, false
}

func (b *gainBuckets) descend() {
	b.hasMax = false
	for k := range b.entries {
		if !b.hasMax || k > b.maxKey {
			b.maxKey, b.hasMax = k, true
		}
	}
}
