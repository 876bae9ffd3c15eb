package mjagged

import (
	"sort"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
)

// MultiJagged partitions points into NumPartitions parts via the
// multi-jagged scheme: NumPartitions is factored into a sequence of
// per-level split counts (capped at MaxIter levels), and at each level
// every current slab is split, perpendicular to the level's axis
// (x, y, z, x, ...), into that many weight-balanced children.
type MultiJagged struct {
	NumPartitions int
	MaxIter       int
}

// Partition implements partition.InitialPartition.
func (m MultiJagged) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if m.NumPartitions <= 0 {
		return nil, partition.NewError("mjagged.MultiJagged.Partition", partition.InvalidInput, nil)
	}
	if len(points) != len(weights) {
		return nil, partition.NewError("mjagged.MultiJagged.Partition", partition.InvalidInput, nil)
	}
	p, err := partition.New(points, weights)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return p, nil
	}
	dim := points[0].Dim()
	scheme := Scheme(m.NumPartitions, m.MaxIter)
	recurse(points, weights, allIndices(len(points)), dim, 0, scheme, p)
	return p, nil
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func recurse(points []geom.Point, weights []float64, order []int, dim, axis int, scheme []int, p *partition.Partition) {
	if len(scheme) == 0 || len(order) <= 1 {
		id := partition.NewPID()
		for _, i := range order {
			p.Ids[i] = id
		}
		return
	}
	numSplits := scheme[0]

	sorted := append([]int(nil), order...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ca, cb := points[a][axis], points[b][axis]
		if ca != cb {
			return ca < cb
		}
		return a < b
	})

	positions := computeSplitPositions(weights, sorted, numSplits)
	slabs := parallel.SplitMany(sorted, positions)
	nextAxis := (axis + 1) % dim

	parallel.DoVoid(len(slabs), func(k int) {
		recurse(points, weights, slabs[k], dim, nextAxis, scheme[1:], p)
	})
}
