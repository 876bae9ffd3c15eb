package bisect

import (
	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
)

// RIB is recursive inertial bisection: identical recursion to RCB, but
// at every level the current subset is first rotated into its own
// principal-axis frame (geom.MBR) before the weighted median split,
// aligning the resulting parts with the point cloud's local inertia
// rather than the global coordinate axes. Emits at most 2^NumIter parts.
type RIB struct {
	NumIter int
}

// Partition implements partition.InitialPartition.
func (r RIB) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if len(points) != len(weights) {
		return nil, partition.NewError("bisect.RIB.Partition", partition.InvalidInput, nil)
	}
	if r.NumIter < 0 {
		return nil, partition.NewError("bisect.RIB.Partition", partition.InvalidInput, nil)
	}
	p, err := partition.New(points, weights)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return p, nil
	}
	dim := points[0].Dim()
	recurseRIB(points, weights, allIndices(len(points)), dim, 0, r.NumIter, p)
	return p, nil
}

func recurseRIB(points []geom.Point, weights []float64, idxs []int, dim, depth, numIter int, p *partition.Partition) {
	if depth == numIter || len(idxs) <= 1 {
		assignPart(p, idxs)
		return
	}
	sub := make([]geom.Point, len(idxs))
	for k, i := range idxs {
		sub[k] = points[i]
	}
	mbr := geom.FromPoints(sub)
	axis := depth % dim
	coord := func(i int) float64 { return mbr.ToLocal(points[i])[axis] }

	left, right := weightedMedianSplit(idxs, weights, coord)
	if len(left) == 0 || len(right) == 0 {
		assignPart(p, idxs)
		return
	}
	parallel.Join(
		func() error { recurseRIB(points, weights, left, dim, depth+1, numIter, p); return nil },
		func() error { recurseRIB(points, weights, right, dim, depth+1, numIter, p); return nil },
	)
}
