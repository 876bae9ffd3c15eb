// Package kmeans implements the balanced k-means refiner: assignment by
// influence-adjusted effective distance with triangle-inequality lb/ub
// pruning bounds, following "Balanced k-means for Parallel Geometric
// Partitioning" (von Looz, Tzovas, Meyerhenke, 2018).
package kmeans

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

// bestValues scans centers (pre-sorted by MBR-distance/influence
// ascending) for point p and returns its updated lower bound, upper
// bound, and, if a strictly better center was found, its PID.
//
// lb tracks the second-best effective distance seen, ub the best
// (assigned) one. When earlyBreak is set, the scan stops as soon as a
// center's MBR-distance lower bound exceeds the current best: no
// center further down the sorted order can then improve on it.
func bestValues(p geom.Point, centers []geom.Point, centerIDs []partition.PID, distToMBR, influences []float64, earlyBreak bool) (lb, ub float64, assign *partition.PID) {
	haveLB, haveUB := false, false
	for i, c := range centers {
		if earlyBreak && haveUB && distToMBR[i] > ub {
			break
		}
		eff := p.Distance(c) / influences[i]
		switch {
		case !haveUB || eff < ub:
			if haveUB {
				lb, haveLB = ub, true
			}
			ub, haveUB = eff, true
			id := centerIDs[i]
			assign = &id
		case !haveLB || eff < lb:
			lb, haveLB = eff, true
		}
	}
	return lb, ub, assign
}

// relaxBounds loosens every point's lb/ub after a round of centroid
// movement: ub shrinks by the assigned center's distance-moved/influence
// ratio, lb grows by the largest such ratio over all centers (the
// triangle-inequality bound that remains valid regardless of which
// center a point is assigned to).
func relaxBounds(lb, ub []float64, assign, centerIDs []partition.PID, moved, influences []float64) {
	ratio := make(map[partition.PID]float64, len(centerIDs))
	var maxRatio float64
	for i, id := range centerIDs {
		r := moved[i] / influences[i]
		ratio[id] = r
		if r > maxRatio {
			maxRatio = r
		}
	}
	for i, id := range assign {
		ub[i] -= ratio[id]
		lb[i] += maxRatio
	}
}

// weightPerCenter sums weights grouped by assign, in centerIDs order.
func weightPerCenter(weights []float64, assign, centerIDs []partition.PID) []float64 {
	sum := make(map[partition.PID]float64, len(centerIDs))
	for i, id := range assign {
		sum[id] += weights[i]
	}
	out := make([]float64, len(centerIDs))
	for i, id := range centerIDs {
		out[i] = sum[id]
	}
	return out
}

// recomputeCenters returns the weight-weighted mean of the points
// currently assigned to each center. A center left with no points keeps
// its previous position.
func recomputeCenters(points []geom.Point, weights []float64, assign, centerIDs []partition.PID, prev []geom.Point) []geom.Point {
	idxByID := make(map[partition.PID][]int, len(centerIDs))
	for i, id := range assign {
		idxByID[id] = append(idxByID[id], i)
	}
	out := make([]geom.Point, len(centerIDs))
	for i, id := range centerIDs {
		idxs := idxByID[id]
		if len(idxs) == 0 {
			out[i] = prev[i]
			continue
		}
		pts := make([]geom.Point, len(idxs))
		ws := make([]float64, len(idxs))
		for k, idx := range idxs {
			pts[k] = points[idx]
			ws[k] = weights[idx]
		}
		out[i] = geom.WeightedCenter(pts, ws)
	}
	return out
}

func maxMinDiff(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values) - floats.Min(values)
}

// relativeImbalance is maxMinDiff normalized by the total: (max-min)/total.
// Zero for an empty or zero-total slice, matching the module-wide relative
// imbalance convention also used by analysis.ImbalanceRelative.
func relativeImbalance(values []float64) float64 {
	total := sumFloats(values)
	if total == 0 {
		return 0
	}
	return maxMinDiff(values) / total
}

func sortedCenterOrder(dist []float64) []int {
	order := make([]int, len(dist))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return dist[order[i]] < dist[order[j]] })
	return order
}

func reorderPoints(pts []geom.Point, order []int) []geom.Point {
	out := make([]geom.Point, len(order))
	for i, o := range order {
		out[i] = pts[o]
	}
	return out
}

func reorderIDs(ids []partition.PID, order []int) []partition.PID {
	out := make([]partition.PID, len(order))
	for i, o := range order {
		out[i] = ids[o]
	}
	return out
}

func reorderFloats(vals []float64, order []int) []float64 {
	out := make([]float64, len(order))
	for i, o := range order {
		out[i] = vals[o]
	}
	return out
}

func sumFloats(values []float64) float64 {
	return floats.Sum(values)
}

// distancesToMBR computes, for each center, the MBR-distance to mbr
// scaled by that center's influence.
func distancesToMBR(mbr geom.MBR, centers []geom.Point, influences []float64) []float64 {
	out := make([]float64, len(centers))
	for i, c := range centers {
		d := mbr.DistanceToPoint(c)
		if math.IsNaN(d) {
			d = 0
		}
		out[i] = d / influences[i]
	}
	return out
}
