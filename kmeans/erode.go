package kmeans

import (
	"math"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

// erode is the experimental post-convergence cleanup: repeatedly finds
// the heaviest part's point farthest from that part's centroid and
// reassigns it to whichever lighter part holds its nearest neighbor,
// until the per-part weight imbalance is within epsilon or no further
// reassignment can help.
func erode(p *partition.Partition, weights []float64, epsilon float64) {
	const maxRounds = 50
	for round := 0; round < maxRounds; round++ {
		partWeight := make(map[partition.PID]float64)
		for i, id := range p.Ids {
			partWeight[id] += weights[i]
		}
		if len(partWeight) == 0 {
			return
		}
		values := make([]float64, 0, len(partWeight))
		for _, w := range partWeight {
			values = append(values, w)
		}
		if relativeImbalance(values) <= epsilon {
			return
		}

		heaviest, heaviestWeight := heaviestPart(partWeight)

		var idxs []int
		for i, id := range p.Ids {
			if id == heaviest {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) <= 1 {
			return
		}

		pts := make([]geom.Point, len(idxs))
		ws := make([]float64, len(idxs))
		for k, i := range idxs {
			pts[k] = p.Points[i]
			ws[k] = weights[i]
		}
		center := geom.WeightedCenter(pts, ws)

		farIdx, farDist := idxs[0], p.Points[idxs[0]].Distance(center)
		for _, i := range idxs[1:] {
			d := p.Points[i].Distance(center)
			if d > farDist {
				farIdx, farDist = i, d
			}
		}

		bestID, bestDist := partition.PID{}, math.Inf(1)
		found := false
		for i, id := range p.Ids {
			if id == heaviest || i == farIdx || partWeight[id] >= heaviestWeight {
				continue
			}
			d := p.Points[farIdx].Distance(p.Points[i])
			if d < bestDist {
				bestID, bestDist, found = id, d, true
			}
		}
		if !found {
			return
		}
		p.Ids[farIdx] = bestID
	}
}

func heaviestPart(weight map[partition.PID]float64) (partition.PID, float64) {
	var id partition.PID
	var w float64
	first := true
	for k, v := range weight {
		if first || v > w {
			id, w, first = k, v, false
		}
	}
	return id, w
}
