package kmeans

import (
	"math"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
)

// assignAndBalance runs the inner loop (up to maxBalanceIter rounds): for
// every point whose bounds haven't pruned it out, reassign to the
// nearest effective-distance center; if the resulting per-part weight
// imbalance is within epsilon, stop; otherwise nudge influences toward
// balance, recompute centroids, relax bounds, and go again. Returns the
// (possibly moved) centers and (possibly adjusted) influences; assign,
// lb and ub are updated in place.
func assignAndBalance(points []geom.Point, weights []float64, centers []geom.Point, centerIDs []partition.PID, influences []float64, assign []partition.PID, lb, ub []float64, epsilon float64, maxBalanceIter int, earlyBreak bool) ([]geom.Point, []float64) {
	mbr := geom.FromPoints(points)

	for iter := 0; iter < maxBalanceIter; iter++ {
		distToMBR := distancesToMBR(mbr, centers, influences)
		order := sortedCenterOrder(distToMBR)
		sortedCenters := reorderPoints(centers, order)
		sortedIDs := reorderIDs(centerIDs, order)
		sortedDist := reorderFloats(distToMBR, order)
		sortedInfluences := reorderFloats(influences, order)

		parallel.DoVoid(len(points), func(i int) {
			if lb[i] >= ub[i] {
				return
			}
			newLB, newUB, newAssign := bestValues(points[i], sortedCenters, sortedIDs, sortedDist, sortedInfluences, earlyBreak)
			lb[i], ub[i] = newLB, newUB
			if newAssign != nil {
				assign[i] = *newAssign
			}
		})

		partWeight := weightPerCenter(weights, assign, centerIDs)
		if relativeImbalance(partWeight) < epsilon {
			return centers, influences
		}

		targetWeight := sumFloats(weights) / float64(len(centerIDs))
		for i := range influences {
			w := partWeight[i]
			if w == 0 {
				continue
			}
			ratio := w / targetWeight
			maxDelta := 0.05 * influences[i]
			newInfluence := influences[i] / math.Sqrt(ratio)
			switch {
			case math.Abs(influences[i]-newInfluence) < maxDelta:
				influences[i] = newInfluence
			case newInfluence > influences[i]:
				influences[i] += maxDelta
			default:
				influences[i] -= maxDelta
			}
		}

		newCenters := recomputeCenters(points, weights, assign, centerIDs, centers)
		moved := make([]float64, len(centers))
		for i := range centers {
			moved[i] = centers[i].Distance(newCenters[i])
		}
		centers = newCenters
		relaxBounds(lb, ub, assign, centerIDs, moved, influences)
	}
	return centers, influences
}
