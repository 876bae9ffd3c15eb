package kmeans

import (
	"math"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

// BalancedKMeans partitions (or refines a partitioning of) points into
// NumPartitions weight-balanced clusters via influence-adjusted k-means.
//
// Erode and MBREarlyBreak are experimental optimizations the reference
// implementation documents as such; both are no-ops unless Experimental
// is also set.
type BalancedKMeans struct {
	NumPartitions  int
	Epsilon        float64 // relative imbalance tolerance; <= 0 defaults to 0.05
	DeltaThreshold float64 // outer-loop centroid-movement convergence threshold
	MaxIter        int     // outer loop cap; <= 0 defaults to 100
	MaxBalanceIter int     // inner assign-and-balance loop cap; <= 0 defaults to 100
	Hilbert        bool    // seed via Hilbert curve instead of Z-order
	Erode          bool    // prune peripheral points from over-weight parts post-convergence
	MBREarlyBreak  bool    // prune the center scan using the MBR-distance bound
	Experimental   bool    // gates Erode and MBREarlyBreak
}

// Result carries a balanced k-means outcome alongside the final centroid
// positions, for callers that want more than the bare Partition.
type Result struct {
	Partition *partition.Partition
	// Centers holds the weighted mean of each final part, in order of
	// first appearance in Partition.Ids.
	Centers []geom.Point
	// Warning is non-nil, with Kind == partition.NotConverged, when
	// MaxIter was exhausted before the outer loop's centroid movement
	// dropped below DeltaThreshold. Partition is still valid and usable.
	Warning error
}

// Partition implements partition.InitialPartition: seeds NumPartitions
// centroids from scratch and runs to convergence (or MaxIter).
func (k BalancedKMeans) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if k.NumPartitions <= 0 {
		return nil, partition.NewError("kmeans.BalancedKMeans.Partition", partition.InvalidInput, nil)
	}
	if len(points) != len(weights) {
		return nil, partition.NewError("kmeans.BalancedKMeans.Partition", partition.InvalidInput, nil)
	}
	centers, centerIDs, assign := seedFromScratch(points, k.NumPartitions, k.Hilbert)
	return k.run(points, weights, centers, centerIDs, assign)
}

// Improve implements partition.ImprovePartition: treats p's existing
// parts as the initial clustering (one centroid per distinct PID, at the
// weighted mean of its current members) and refines in place.
func (k BalancedKMeans) Improve(p *partition.Partition) error {
	if p.NumParts() == 0 {
		return partition.NewError("kmeans.BalancedKMeans.Improve", partition.InvalidInput, nil)
	}
	centers, centerIDs, assign := seedFromPartition(p)
	refined, err := k.run(p.Points, p.Weights, centers, centerIDs, assign)
	if refined != nil {
		copy(p.Ids, refined.Ids)
	}
	return err
}

// Run is Partition wrapped into a Result, for callers that want the
// warning and final centroid positions without parsing the error chain.
func (k BalancedKMeans) Run(points []geom.Point, weights []float64) (*Result, error) {
	p, err := k.Partition(points, weights)
	if err != nil && !partition.IsWarning(err) {
		return nil, err
	}
	res := &Result{Partition: p}
	if p != nil {
		res.Centers, _, _ = seedFromPartition(p)
	}
	if err != nil {
		res.Warning = err
	}
	return res, nil
}

func (k BalancedKMeans) run(points []geom.Point, weights []float64, centers []geom.Point, centerIDs, assign []partition.PID) (*partition.Partition, error) {
	if k.NumPartitions <= 0 || len(centers) == 0 {
		return nil, partition.NewError("kmeans.BalancedKMeans", partition.InvalidInput, nil)
	}
	if len(points) != len(weights) {
		return nil, partition.NewError("kmeans.BalancedKMeans", partition.InvalidInput, nil)
	}

	epsilon := k.Epsilon
	if epsilon <= 0 {
		epsilon = 0.05
	}
	maxIter := k.MaxIter
	if maxIter <= 0 {
		maxIter = 100
	}
	maxBalanceIter := k.MaxBalanceIter
	if maxBalanceIter <= 0 {
		maxBalanceIter = 100
	}
	earlyBreak := k.MBREarlyBreak && k.Experimental

	n := len(points)
	lb := make([]float64, n)
	ub := make([]float64, n)
	for i := range ub {
		ub[i] = math.Inf(1)
	}
	influences := make([]float64, len(centers))
	for i := range influences {
		influences[i] = 1
	}

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		before := append([]geom.Point(nil), centers...)
		centers, influences = assignAndBalance(points, weights, centers, centerIDs, influences, assign, lb, ub, epsilon, maxBalanceIter, earlyBreak)

		var deltaMax float64
		for i := range centers {
			d := before[i].Distance(centers[i])
			if d > deltaMax {
				deltaMax = d
			}
		}
		if deltaMax < k.DeltaThreshold {
			converged = true
			break
		}
	}

	p := &partition.Partition{Points: points, Weights: weights, Ids: assign}
	if converged && k.Erode && k.Experimental {
		erode(p, weights, epsilon)
	}
	if !converged {
		return p, partition.NewError("kmeans.BalancedKMeans", partition.NotConverged, nil)
	}
	return p, nil
}
