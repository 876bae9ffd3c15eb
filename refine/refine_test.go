package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/topology"
)

// pathGraph builds an n-vertex path 0-1-2-...-(n-1) with unit edge
// weights and unit point weights.
func pathGraph(n int) (*topology.Adjacency, []geom.Point, []float64) {
	xadj := make([]int, n+1)
	var adjncy []int
	var weight []float64
	for i := 0; i < n; i++ {
		if i > 0 {
			adjncy = append(adjncy, i-1)
			weight = append(weight, 1)
		}
		if i < n-1 {
			adjncy = append(adjncy, i+1)
			weight = append(weight, 1)
		}
		xadj[i+1] = len(adjncy)
	}
	points := make([]geom.Point, n)
	weights := make([]float64, n)
	for i := range points {
		points[i] = geom.Pt2(float64(i), 0)
		weights[i] = 1
	}
	return &topology.Adjacency{Xadj: xadj, Adjncy: adjncy, Weight: weight}, points, weights
}

func badPathSplit(n int) []partition.PID {
	// An intentionally bad 2-way split of a path graph: alternating
	// assignment maximizes the cut, giving both refiners plenty of
	// improving moves to find.
	a, b := partition.NewPID(), partition.NewPID()
	ids := make([]partition.PID, n)
	for i := range ids {
		if i%2 == 0 {
			ids[i] = a
		} else {
			ids[i] = b
		}
	}
	return ids
}

func idealPathSplit(n int) []partition.PID {
	a, b := partition.NewPID(), partition.NewPID()
	ids := make([]partition.PID, n)
	for i := range ids {
		if i < n/2 {
			ids[i] = a
		} else {
			ids[i] = b
		}
	}
	return ids
}

func TestKLImproveRequiresAdjacency(t *testing.T) {
	_, points, weights := pathGraph(4)
	p, err := partition.New(points, weights)
	require.NoError(t, err)
	err = KL{}.Improve(p)
	require.Error(t, err)
}

func TestKLImproveRejectsSizeMismatch(t *testing.T) {
	adj, points, weights := pathGraph(4)
	p, err := partition.New(points, weights)
	require.NoError(t, err)
	p.Ids = p.Ids[:2]
	err = KL{Adjacency: adj}.Improve(p)
	require.Error(t, err)
}

func TestKLReducesCutOnBadSplit(t *testing.T) {
	const n = 10
	adj, points, weights := pathGraph(n)
	p := &partition.Partition{Points: points, Weights: weights, Ids: badPathSplit(n)}
	before := topology.CutSize(adj, p.Ids)

	kl := KL{Adjacency: adj, Options: Options{MaxPasses: 20}}
	require.NoError(t, kl.Improve(p))

	after := topology.CutSize(adj, p.Ids)
	assert.Less(t, after, before, "KL should reduce the cut size of a maximally-cut alternating split")
}

func TestKLIdempotentOnIdealSplit(t *testing.T) {
	const n = 10
	adj, points, weights := pathGraph(n)
	p := &partition.Partition{Points: points, Weights: weights, Ids: idealPathSplit(n)}
	before := topology.CutSize(adj, p.Ids)

	kl := KL{Adjacency: adj, Options: Options{MaxPasses: 5}}
	require.NoError(t, kl.Improve(p))

	after := topology.CutSize(adj, p.Ids)
	assert.Equal(t, before, after, "KL should not disturb an already-optimal path bisection")
	assert.Equal(t, 1.0, after)
}

func TestFMImproveRequiresAdjacency(t *testing.T) {
	_, points, weights := pathGraph(4)
	p, err := partition.New(points, weights)
	require.NoError(t, err)
	err = FM{}.Improve(p)
	require.Error(t, err)
}

func TestFMReducesCutOnBadSplit(t *testing.T) {
	const n = 10
	adj, points, weights := pathGraph(n)
	p := &partition.Partition{Points: points, Weights: weights, Ids: badPathSplit(n)}
	before := topology.CutSize(adj, p.Ids)

	fm := FM{Adjacency: adj, Options: Options{MaxPasses: 20}}
	require.NoError(t, fm.Improve(p))

	after := topology.CutSize(adj, p.Ids)
	assert.Less(t, after, before, "FM should reduce the cut size of a maximally-cut alternating split")
}

func TestFMIdempotentOnIdealSplit(t *testing.T) {
	const n = 10
	adj, points, weights := pathGraph(n)
	p := &partition.Partition{Points: points, Weights: weights, Ids: idealPathSplit(n)}
	before := topology.CutSize(adj, p.Ids)

	fm := FM{Adjacency: adj, Options: Options{MaxPasses: 5}}
	require.NoError(t, fm.Improve(p))

	after := topology.CutSize(adj, p.Ids)
	assert.Equal(t, before, after)
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	assert.Equal(t, 10, o.maxPasses())
	assert.Equal(t, 7, o.maxFlipsPerPass(7))

	o = Options{MaxPasses: 3, MaxFlipsPerPass: 2}
	assert.Equal(t, 3, o.maxPasses())
	assert.Equal(t, 2, o.maxFlipsPerPass(7))
}

func TestRelativeImbalance(t *testing.T) {
	a, b := partition.NewPID(), partition.NewPID()
	assert.Equal(t, 0.0, relativeImbalance(map[partition.PID]float64{}))
	assert.InDelta(t, 1.0, relativeImbalance(map[partition.PID]float64{a: 0, b: 2}), 1e-9)
}

func TestMaxImbalancePerFlipBlocksDisruptiveMoves(t *testing.T) {
	const n = 10
	adj, points, weights := pathGraph(n)
	p := &partition.Partition{Points: points, Weights: weights, Ids: idealPathSplit(n)}

	kl := KL{Adjacency: adj, Options: Options{MaxPasses: 5, MaxImbalancePerFlip: 0.01}}
	require.NoError(t, kl.Improve(p))

	weight := partWeights(p.Weights, p.Ids)
	assert.LessOrEqual(t, relativeImbalance(weight), 0.01+1e-9)
}
