package mjagged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshpart/partition/geom"
)

func TestPrimeFactors(t *testing.T) {
	cases := []struct {
		n    int
		want []int
	}{
		{1, []int{1}},
		{0, []int{1}},
		{7, []int{7}},
		{12, []int{2, 2, 3}},
		{30, []int{2, 3, 5}},
		{64, []int{2, 2, 2, 2, 2, 2}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, primeFactors(c.n))
	}
}

func TestSchemeUnderMaxIterIsExactFactorization(t *testing.T) {
	assert.Equal(t, []int{2, 2, 3}, Scheme(12, 10))
}

func TestSchemeFoldsWhenOverMaxIter(t *testing.T) {
	scheme := Scheme(64, 2)
	require.Len(t, scheme, 2)
	product := 1
	for _, f := range scheme {
		product *= f
	}
	assert.Equal(t, 64, product, "folding must preserve the total split count")
}

func TestFoldFactorsBalancesBuckets(t *testing.T) {
	folded := foldFactors([]int{2, 2, 2, 2, 2, 2}, 2)
	require.Len(t, folded, 2)
	assert.Equal(t, 8, folded[0])
	assert.Equal(t, 8, folded[1])
}

func TestComputeSplitPositionsEvenWeights(t *testing.T) {
	order := []int{0, 1, 2, 3}
	weights := []float64{1, 1, 1, 1}
	positions := computeSplitPositions(weights, order, 2)
	assert.Equal(t, []int{2}, positions)
}

func TestComputeSplitPositionsThreeWays(t *testing.T) {
	order := []int{0, 1, 2, 3, 4, 5}
	weights := []float64{1, 1, 1, 1, 1, 1}
	positions := computeSplitPositions(weights, order, 3)
	assert.Equal(t, []int{2, 4}, positions)
}

func TestComputeSplitPositionsMonotonic(t *testing.T) {
	order := []int{0, 1, 2, 3, 4}
	weights := []float64{100, 0, 0, 0, 1}
	positions := computeSplitPositions(weights, order, 3)
	for i := 1; i < len(positions); i++ {
		assert.GreaterOrEqual(t, positions[i], positions[i-1], "split positions must be non-decreasing even when weight is concentrated")
	}
}

func grid3x3() ([]geom.Point, []float64) {
	var pts []geom.Point
	for x := 0.0; x < 3; x++ {
		for y := 0.0; y < 3; y++ {
			pts = append(pts, geom.Pt2(x, y))
		}
	}
	weights := make([]float64, len(pts))
	for i := range weights {
		weights[i] = 1
	}
	return pts, weights
}

func TestMultiJaggedGridPartitioning(t *testing.T) {
	points, weights := grid3x3()
	m := MultiJagged{NumPartitions: 9, MaxIter: 10}
	p, err := m.Partition(points, weights)
	require.NoError(t, err)
	assert.Equal(t, 9, p.NumParts(), "a 3x3 grid split into 9 parts should isolate every point")
}

func TestMultiJaggedRespectsMaxIterBudget(t *testing.T) {
	points, weights := grid3x3()
	m := MultiJagged{NumPartitions: 9, MaxIter: 1}
	p, err := m.Partition(points, weights)
	require.NoError(t, err)
	assert.Equal(t, 9, p.NumParts(), "folding the scheme to 1 level must still realize the full requested part count")
}

func TestMultiJaggedRejectsInvalidInput(t *testing.T) {
	points, weights := grid3x3()
	_, err := MultiJagged{NumPartitions: 0}.Partition(points, weights)
	require.Error(t, err)
	_, err = MultiJagged{NumPartitions: 2}.Partition(points, weights[:1])
	require.Error(t, err)
}

func TestMultiJaggedEmptyInput(t *testing.T) {
	m := MultiJagged{NumPartitions: 4, MaxIter: 4}
	p, err := m.Partition(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.NumParts())
}

func TestMultiJaggedWeightBalance(t *testing.T) {
	var points []geom.Point
	var weights []float64
	for i := 0; i < 100; i++ {
		points = append(points, geom.Pt2(float64(i), 0))
		weights = append(weights, 1)
	}
	m := MultiJagged{NumPartitions: 4, MaxIter: 4}
	p, err := m.Partition(points, weights)
	require.NoError(t, err)

	totals := make(map[int]int)
	for _, l := range p.Labels() {
		totals[l]++
	}
	require.Len(t, totals, 4)
	for _, count := range totals {
		assert.InDelta(t, 25, count, 1)
	}
}
