package bisect

import (
	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
)

// RCB is recursive coordinate bisection: for NumIter levels, the split
// axis alternates x, y, z, x, ...; at each level every current subset is
// halved by a weighted median split along that axis. Emits at most
// 2^NumIter parts: a subset of one point, or of coincident points, is
// not split further.
type RCB struct {
	NumIter int
}

// Partition implements partition.InitialPartition.
func (r RCB) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if len(points) != len(weights) {
		return nil, partition.NewError("bisect.RCB.Partition", partition.InvalidInput, nil)
	}
	if r.NumIter < 0 {
		return nil, partition.NewError("bisect.RCB.Partition", partition.InvalidInput, nil)
	}
	p, err := partition.New(points, weights)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return p, nil
	}
	dim := points[0].Dim()
	recurseRCB(points, weights, allIndices(len(points)), dim, 0, r.NumIter, p)
	return p, nil
}

func recurseRCB(points []geom.Point, weights []float64, idxs []int, dim, depth, numIter int, p *partition.Partition) {
	if depth == numIter || len(idxs) <= 1 {
		assignPart(p, idxs)
		return
	}
	// Degenerate: every point coincides, so no split can separate them.
	// Stop the recursion here and keep them in one part.
	coincident := true
	for _, i := range idxs[1:] {
		if points[i].Distance(points[idxs[0]]) != 0 {
			coincident = false
			break
		}
	}
	if coincident {
		assignPart(p, idxs)
		return
	}
	axis := depth % dim
	left, right := weightedMedianSplit(idxs, weights, func(i int) float64 { return points[i][axis] })
	if len(left) == 0 || len(right) == 0 {
		// Degenerate: the split left one half empty. Stop the recursion
		// here rather than recursing into it.
		assignPart(p, idxs)
		return
	}
	parallel.Join(
		func() error { recurseRCB(points, weights, left, dim, depth+1, numIter, p); return nil },
		func() error { recurseRCB(points, weights, right, dim, depth+1, numIter, p); return nil },
	)
}
