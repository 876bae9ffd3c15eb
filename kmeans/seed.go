package kmeans

import (
	"github.com/meshpart/partition"
	"github.com/meshpart/partition/curve"
	"github.com/meshpart/partition/geom"
)

// defaultHilbertOrder is the curve order used to seed from a Hilbert
// linearization when no finer control is needed.
const defaultHilbertOrder = 16

// seedFromScratch linearizes points (Hilbert if hilbert, else Z-order),
// selects every len(points)/k-th point of that ordering as an initial
// centroid, and assigns every point to the nearest-seeded block of the
// linearization, contiguous in curve order (not point order).
func seedFromScratch(points []geom.Point, k int, hilbert bool) (centers []geom.Point, centerIDs []partition.PID, assign []partition.PID) {
	var order []int
	if hilbert {
		order = curve.HilbertIndex(points, defaultHilbertOrder)
	} else {
		order = curve.ZOrderIndex(points)
	}

	n := len(points)
	step := n / k
	if step == 0 {
		step = 1
	}

	for i := 0; i < n && len(centers) < k; i += step {
		centers = append(centers, points[order[i]])
		centerIDs = append(centerIDs, partition.NewPID())
	}

	assign = make([]partition.PID, n)
	for i, idx := range order {
		c := i / step
		if c >= len(centerIDs) {
			c = len(centerIDs) - 1
		}
		assign[idx] = centerIDs[c]
	}
	return centers, centerIDs, assign
}

// seedFromPartition reuses an existing partition's parts as the initial
// clustering: one centroid per distinct PID, computed as the
// weight-weighted mean of the points currently carrying it.
func seedFromPartition(p *partition.Partition) (centers []geom.Point, centerIDs []partition.PID, assign []partition.PID) {
	centerIDs = p.SortedParts()
	idxByID := p.PartIndices()
	centers = make([]geom.Point, len(centerIDs))
	for i, id := range centerIDs {
		idxs := idxByID[id]
		pts := make([]geom.Point, len(idxs))
		ws := make([]float64, len(idxs))
		for k, idx := range idxs {
			pts[k] = p.Points[idx]
			ws[k] = p.Weights[idx]
		}
		centers[i] = geom.WeightedCenter(pts, ws)
	}
	assign = append([]partition.PID(nil), p.Ids...)
	return centers, centerIDs, assign
}
