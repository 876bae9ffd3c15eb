package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

func twoTightClusters() ([]geom.Point, []float64) {
	var pts []geom.Point
	for i := 0; i < 20; i++ {
		f := float64(i % 5)
		pts = append(pts, geom.Pt2(f*0.1, f*0.1))
	}
	for i := 0; i < 20; i++ {
		f := float64(i % 5)
		pts = append(pts, geom.Pt2(100+f*0.1, 100+f*0.1))
	}
	weights := make([]float64, len(pts))
	for i := range weights {
		weights[i] = 1
	}
	return pts, weights
}

func TestBalancedKMeansRecoversTwoClusters(t *testing.T) {
	points, weights := twoTightClusters()
	k := BalancedKMeans{NumPartitions: 2, Epsilon: 0.1, DeltaThreshold: 1e-6, MaxIter: 50}
	p, err := k.Partition(points, weights)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumParts())

	labels := p.Labels()
	for i := 1; i < 20; i++ {
		assert.Equal(t, labels[0], labels[i], "the near cluster should stay in one part")
	}
	for i := 21; i < 40; i++ {
		assert.Equal(t, labels[20], labels[i], "the far cluster should stay in one part")
	}
	assert.NotEqual(t, labels[0], labels[20])
}

func TestBalancedKMeansHilbertSeeding(t *testing.T) {
	points, weights := twoTightClusters()
	k := BalancedKMeans{NumPartitions: 2, Epsilon: 0.1, DeltaThreshold: 1e-6, MaxIter: 50, Hilbert: true}
	p, err := k.Partition(points, weights)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumParts())
}

func TestBalancedKMeansRejectsInvalidInput(t *testing.T) {
	points, weights := twoTightClusters()
	_, err := BalancedKMeans{NumPartitions: 0}.Partition(points, weights)
	require.Error(t, err)
	_, err = BalancedKMeans{NumPartitions: 2}.Partition(points, weights[:1])
	require.Error(t, err)
}

func TestBalancedKMeansNotConvergedIsWarningNotFatal(t *testing.T) {
	points, weights := twoTightClusters()
	k := BalancedKMeans{NumPartitions: 2, DeltaThreshold: 0, MaxIter: 1}
	p, err := k.Partition(points, weights)
	require.Error(t, err)
	assert.True(t, partition.IsWarning(err))
	assert.NotNil(t, p, "a NotConverged warning must still carry a usable partition")
}

func TestBalancedKMeansRunWrapsWarningIntoResult(t *testing.T) {
	points, weights := twoTightClusters()
	k := BalancedKMeans{NumPartitions: 2, DeltaThreshold: 0, MaxIter: 1}
	res, err := k.Run(points, weights)
	require.NoError(t, err, "Run should not surface a soft warning as its own error")
	require.NotNil(t, res.Warning)
	assert.True(t, partition.IsWarning(res.Warning))
	assert.NotNil(t, res.Partition)
}

func TestBalancedKMeansImproveRefinesUnbalancedLabelling(t *testing.T) {
	points, weights := twoTightClusters()

	// Deliberately mislabel one near-cluster point into the far
	// cluster's part, and assert Improve recovers the correct grouping.
	a, b := partition.NewPID(), partition.NewPID()
	ids := make([]partition.PID, len(points))
	for i := range ids {
		if i < 20 {
			ids[i] = a
		} else {
			ids[i] = b
		}
	}
	ids[0] = b

	p := &partition.Partition{Points: points, Weights: weights, Ids: ids}
	k := BalancedKMeans{NumPartitions: 2, Epsilon: 0.1, DeltaThreshold: 1e-6, MaxIter: 50}
	err := k.Improve(p)
	require.NoError(t, err)

	labels := p.Labels()
	for i := 1; i < 20; i++ {
		assert.Equal(t, labels[1], labels[i])
	}
	assert.Equal(t, labels[1], labels[0], "the mislabeled point should be reassigned back to its geometric cluster")
}

func TestBalancedKMeansImproveRejectsEmptyPartition(t *testing.T) {
	p := &partition.Partition{}
	err := BalancedKMeans{NumPartitions: 2}.Improve(p)
	require.Error(t, err)
}

func TestBestValuesTracksTopTwo(t *testing.T) {
	p := geom.Pt2(0, 0)
	centers := []geom.Point{geom.Pt2(1, 0), geom.Pt2(2, 0), geom.Pt2(5, 0)}
	ids := []partition.PID{partition.NewPID(), partition.NewPID(), partition.NewPID()}
	influences := []float64{1, 1, 1}
	dist := []float64{0, 0, 0}

	lb, ub, assign := bestValues(p, centers, ids, dist, influences, false)
	require.NotNil(t, assign)
	assert.Equal(t, ids[0], *assign)
	assert.Equal(t, 1.0, ub)
	assert.Equal(t, 2.0, lb)
}

func TestRelaxBoundsUsesAssignedCentersRatio(t *testing.T) {
	idA, idB := partition.NewPID(), partition.NewPID()
	centerIDs := []partition.PID{idA, idB}
	moved := []float64{0.1, 0.5}
	influences := []float64{1, 1}
	assign := []partition.PID{idA, idB}
	lb := []float64{1, 1}
	ub := []float64{2, 2}

	relaxBounds(lb, ub, assign, centerIDs, moved, influences)

	assert.InDelta(t, 1.9, ub[0], 1e-9, "point assigned to center A should shrink ub by A's own ratio")
	assert.InDelta(t, 1.5, ub[1], 1e-9, "point assigned to center B should shrink ub by B's own ratio")
	assert.InDelta(t, 1.5, lb[0], 1e-9, "lb grows by the largest ratio over all centers")
	assert.InDelta(t, 1.5, lb[1], 1e-9)
}

func TestWeightPerCenter(t *testing.T) {
	idA, idB := partition.NewPID(), partition.NewPID()
	weights := []float64{1, 2, 3}
	assign := []partition.PID{idA, idB, idA}
	out := weightPerCenter(weights, assign, []partition.PID{idA, idB})
	assert.Equal(t, []float64{4, 2}, out)
}

func TestMaxMinDiff(t *testing.T) {
	assert.Equal(t, 0.0, maxMinDiff(nil))
	assert.Equal(t, 3.0, maxMinDiff([]float64{5, 2, 4}))
}

func TestSeedFromPartitionUsesWeightedMeans(t *testing.T) {
	points := []geom.Point{geom.Pt2(0, 0), geom.Pt2(2, 0)}
	weights := []float64{1, 1}
	id := partition.NewPID()
	p := &partition.Partition{Points: points, Weights: weights, Ids: []partition.PID{id, id}}

	centers, centerIDs, assign := seedFromPartition(p)
	require.Len(t, centers, 1)
	assert.InDeltaSlice(t, []float64{1, 0}, []float64(centers[0]), 1e-9)
	assert.Equal(t, []partition.PID{id}, centerIDs)
	assert.Equal(t, p.Ids, assign)
}
