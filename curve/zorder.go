// Package curve provides the two space-filling-curve linearizers: Z-order
// (zorder.go) and Hilbert (hilbert.go), both usable either as a
// partitioner (slice the sorted sequence into weight-balanced runs) or
// as a pre-pass that only reorders points (e.g. k-means seeding).
package curve

import (
	"sort"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
)

// ZOrder partitions points by Z-order (Morton) hash: the minimum
// bounding rectangle of the point set is recursively split into
// quadrants (octants in 3D); a point's hash starts at 0 and at each
// split shifts left by D bits and ORs in the child index. Recursion
// bottoms out when a sub-region holds <= 1 point, or once the 64-bit
// hash is full (64/D levels), so coincident points share one hash.
type ZOrder struct {
	NumPartitions int
}

// Partition implements partition.InitialPartition.
func (z ZOrder) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if z.NumPartitions <= 0 {
		return nil, partition.NewError("curve.ZOrder.Partition", partition.InvalidInput, nil)
	}
	if len(points) != len(weights) {
		return nil, partition.NewError("curve.ZOrder.Partition", partition.InvalidInput, nil)
	}
	order := ZOrderIndex(points)
	return partitionByRuns(points, weights, order, z.NumPartitions)
}

// ZOrderIndex returns the permutation of [0, len(points)) sorted by
// Z-order hash, ties broken by original index for a stable ordering.
func ZOrderIndex(points []geom.Point) []int {
	if len(points) == 0 {
		return nil
	}
	mbr := geom.FromPoints(points)
	hashes := make([]uint64, len(points))
	zHash(points, allIndices(len(points)), mbr, 0, 0, hashes)

	order := allIndices(len(points))
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if hashes[a] != hashes[b] {
			return hashes[a] < hashes[b]
		}
		return a < b
	})
	return order
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// zHash recursively assigns a Z-order hash to every index in idxs, given
// the MBR of the region they currently occupy and the hash accumulated
// so far. depth counts the splits already encoded in current.
func zHash(points []geom.Point, idxs []int, mbr geom.MBR, current uint64, depth int, hashes []uint64) {
	if len(idxs) <= 1 || (depth+1)*points[idxs[0]].Dim() > 64 {
		for _, i := range idxs {
			hashes[i] = current
		}
		return
	}
	d := points[idxs[0]].Dim()
	buckets := make(map[int][]int)
	for _, i := range idxs {
		q := mbr.Quadrant(points[i])
		buckets[q] = append(buckets[q], i)
	}

	codes := make([]int, 0, len(buckets))
	for q := range buckets {
		codes = append(codes, q)
	}
	sort.Ints(codes)

	parallel.DoVoid(len(codes), func(k int) {
		q := codes[k]
		next := current<<uint(d) | uint64(q)
		sub := mbr.SubMBR(q)
		zHash(points, buckets[q], sub, next, depth+1, hashes)
	})
}

// partitionByRuns slices order into k weight-balanced contiguous runs
// (by cumulative weight thresholds) and assigns one fresh PID per run.
func partitionByRuns(points []geom.Point, weights []float64, order []int, k int) (*partition.Partition, error) {
	p, err := partition.New(points, weights)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, w := range weights {
		total += w
	}

	ids := make([]partition.PID, k)
	for i := range ids {
		ids[i] = partition.NewPID()
	}

	var cum float64
	part := 0
	for _, idx := range order {
		for part < k-1 && cum >= total*float64(part+1)/float64(k) {
			part++
		}
		p.Ids[idx] = ids[part]
		cum += weights[idx]
	}
	return p, nil
}
