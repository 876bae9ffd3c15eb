// Package analysis provides quality metrics over a finished Partition:
// per-part weight totals, imbalance, and per-part aspect ratio.
package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

// WeightsPerPart sums weights by PID.
func WeightsPerPart(weights []float64, ids []partition.PID) map[partition.PID]float64 {
	out := make(map[partition.PID]float64)
	for i, id := range ids {
		out[id] += weights[i]
	}
	return out
}

// ImbalanceMaxDiff is the largest pairwise difference between any two
// parts' total weight: max(weight) - min(weight). Zero for an empty or
// single-part partition.
func ImbalanceMaxDiff(weights []float64, ids []partition.PID) float64 {
	perPart := WeightsPerPart(weights, ids)
	if len(perPart) == 0 {
		return 0
	}
	values := make([]float64, 0, len(perPart))
	for _, w := range perPart {
		values = append(values, w)
	}
	return floats.Max(values) - floats.Min(values)
}

// ImbalanceRelative is ImbalanceMaxDiff normalized by the total weight.
// Zero for a zero-weight (or empty) partition.
func ImbalanceRelative(weights []float64, ids []partition.PID) float64 {
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}
	return ImbalanceMaxDiff(weights, ids) / total
}

// AspectRatios returns, for every distinct PID in ids, the aspect ratio
// of that part's oriented minimum bounding rectangle.
func AspectRatios(points []geom.Point, ids []partition.PID) map[partition.PID]float64 {
	byID := make(map[partition.PID][]geom.Point)
	for i, id := range ids {
		byID[id] = append(byID[id], points[i])
	}
	out := make(map[partition.PID]float64, len(byID))
	for id, pts := range byID {
		out[id] = geom.FromPoints(pts).AspectRatio()
	}
	return out
}
