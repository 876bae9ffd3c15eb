package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

func twoClusterGrid() ([]geom.Point, []float64) {
	var pts []geom.Point
	for x := 0.0; x < 2; x++ {
		for y := 0.0; y < 2; y++ {
			pts = append(pts, geom.Pt2(x, y))
		}
	}
	for x := 10.0; x < 12; x++ {
		for y := 10.0; y < 12; y++ {
			pts = append(pts, geom.Pt2(x, y))
		}
	}
	weights := make([]float64, len(pts))
	for i := range weights {
		weights[i] = 1
	}
	return pts, weights
}

func TestZOrderSeparatesDistantClusters(t *testing.T) {
	pts, weights := twoClusterGrid()
	z := ZOrder{NumPartitions: 2}
	p, err := z.Partition(pts, weights)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumParts())

	// The two clusters are far apart relative to their own extent, so a
	// 2-way Z-order split should not interleave their points.
	labels := p.Labels()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, labels[i], labels[j], "near-cluster points should share a part")
		}
	}
	for i := 4; i < 8; i++ {
		for j := 4; j < 8; j++ {
			assert.Equal(t, labels[i], labels[j], "far-cluster points should share a part")
		}
	}
	assert.NotEqual(t, labels[0], labels[4])
}

func TestZOrderRejectsInvalidInput(t *testing.T) {
	pts, weights := twoClusterGrid()

	_, err := ZOrder{NumPartitions: 0}.Partition(pts, weights)
	require.Error(t, err)

	_, err = ZOrder{NumPartitions: 2}.Partition(pts, weights[:1])
	require.Error(t, err)
}

func TestZOrderIndexIsStableUnderTies(t *testing.T) {
	pts := []geom.Point{geom.Pt2(0, 0), geom.Pt2(0, 0), geom.Pt2(1, 1)}
	order := ZOrderIndex(pts)
	require.Len(t, order, 3)
	// The two coincident points must keep their relative order.
	posA := indexOf(order, 0)
	posB := indexOf(order, 1)
	assert.Less(t, posA, posB)
}

func indexOf(order []int, v int) int {
	for i, o := range order {
		if o == v {
			return i
		}
	}
	return -1
}

func TestHilbertRejects3D(t *testing.T) {
	pts := []geom.Point{geom.Pt3(0, 0, 0), geom.Pt3(1, 1, 1)}
	weights := []float64{1, 1}
	_, err := Hilbert{NumPartitions: 2, Order: 4}.Partition(pts, weights)
	require.Error(t, err)
	var e *partition.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, partition.UnsupportedCombination, e.Kind)
}

func TestHilbertRejectsInvalidInput(t *testing.T) {
	pts, weights := twoClusterGrid()
	_, err := Hilbert{NumPartitions: 0, Order: 4}.Partition(pts, weights)
	require.Error(t, err)
	_, err = Hilbert{NumPartitions: 2, Order: 0}.Partition(pts, weights)
	require.Error(t, err)
}

func TestHilbertSeparatesDistantClusters(t *testing.T) {
	pts, weights := twoClusterGrid()
	h := Hilbert{NumPartitions: 2, Order: 8}
	p, err := h.Partition(pts, weights)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumParts())

	labels := p.Labels()
	for i := 0; i < 4; i++ {
		assert.Equal(t, labels[0], labels[i])
	}
	for i := 4; i < 8; i++ {
		assert.Equal(t, labels[4], labels[i])
	}
	assert.NotEqual(t, labels[0], labels[4])
}

func TestHilbertIndexIsDeterministicAndComplete(t *testing.T) {
	pts := []geom.Point{
		geom.Pt2(0, 0), geom.Pt2(1, 0), geom.Pt2(0, 1), geom.Pt2(1, 1),
		geom.Pt2(5, 5), geom.Pt2(5, 0), geom.Pt2(0, 5), geom.Pt2(3, 4),
	}
	order1 := HilbertIndex(pts, 6)
	order2 := HilbertIndex(pts, 6)
	assert.Equal(t, order1, order2, "HilbertIndex must be deterministic")

	seen := make(map[int]bool, len(pts))
	for _, i := range order1 {
		seen[i] = true
	}
	assert.Len(t, seen, len(pts), "HilbertIndex must return a permutation of every input point")
}

func TestHilbertEncodeIsInjectiveOnSmallGrid(t *testing.T) {
	const order = 3
	seen := make(map[int64]bool)
	for x := int64(0); x < 1<<order; x++ {
		for y := int64(0); y < 1<<order; y++ {
			h := hilbertEncode(x, y, order)
			assert.False(t, seen[h], "hilbertEncode(%d,%d) collided with a prior cell", x, y)
			seen[h] = true
		}
	}
	assert.Len(t, seen, 1<<(2*order))
}
