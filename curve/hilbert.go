package curve

import (
	"sort"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/geom"
)

// Hilbert partitions 2D points by Hilbert-curve index of the given
// Order, following "Encoding and Decoding the Hilbert Order" by Liu and
// Schrack. The minimal bounding rectangle of the point set (see
// geom.MBR) is split into 2^(2*Order) cells; points are linearly mapped
// into [0, 2^Order) on each rotated axis, then encoded.
//
// Hilbert is only implemented in 2D; a 3D request fails with
// UnsupportedCombination (spec Open Question: the reference
// implementation never extended the encoding to 3D either).
type Hilbert struct {
	NumPartitions int
	Order         int
}

// Partition implements partition.InitialPartition.
func (h Hilbert) Partition(points []geom.Point, weights []float64) (*partition.Partition, error) {
	if h.NumPartitions <= 0 || h.Order <= 0 {
		return nil, partition.NewError("curve.Hilbert.Partition", partition.InvalidInput, nil)
	}
	if len(points) != len(weights) {
		return nil, partition.NewError("curve.Hilbert.Partition", partition.InvalidInput, nil)
	}
	if len(points) > 0 && points[0].Dim() != 2 {
		return nil, partition.NewError("curve.Hilbert.Partition", partition.UnsupportedCombination, nil)
	}
	order := HilbertIndex(points, h.Order)
	return partitionByRuns(points, weights, order, h.NumPartitions)
}

// HilbertIndex returns the permutation of [0, len(points)) sorted by
// Hilbert index at the given order, ties broken by original index.
func HilbertIndex(points []geom.Point, order int) []int {
	if len(points) == 0 {
		return nil
	}
	idx := hilbertIndices(points, order)
	perm := allIndices(len(points))
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := perm[i], perm[j]
		if idx[a] != idx[b] {
			return idx[a] < idx[b]
		}
		return a < b
	})
	return perm
}

func hilbertIndices(points []geom.Point, order int) []int64 {
	mbr := geom.FromPoints(points)
	box := mbr.AABB()
	xMap := segmentToSegment(box.Min[0], box.Max[0], 0, float64(int64(1)<<uint(order)))
	yMap := segmentToSegment(box.Min[1], box.Max[1], 0, float64(int64(1)<<uint(order)))

	// The box maximum maps to 2^order itself; clamp it into the last cell.
	last := int64(1)<<uint(order) - 1
	out := make([]int64, len(points))
	for i, p := range points {
		local := mbr.ToLocal(p)
		x := min(int64(xMap(local[0])), last)
		y := min(int64(yMap(local[1])), last)
		out[i] = hilbertEncode(x, y, order)
	}
	return out
}

// hilbertEncode implements the Liu & Schrack recurrence from spec
// section 4.4: h_even = x^y; h_odd computed by iterating, for order-1
// steps, v1 <- ((v1&h_even) | ((v0^not_y)&temp)) >> 1, v0 <- ((v0&(v1^not_x))
// | (^v0&(v1^not_y))) >> 1, starting from v0=v1=0; then
// h_odd = (^v0 & (v1^x)) | (v0 & (v1^not_y)); result interleaves the bit
// streams of h_odd (odd bit positions) and h_even (even bit positions).
func hilbertEncode(x, y int64, order int) int64 {
	mask := (int64(1) << uint(order)) - 1
	hEven := x ^ y
	notX := ^x & mask
	notY := ^y & mask
	temp := notX ^ y

	var v0, v1 int64
	for i := 1; i < order; i++ {
		v1 = ((v1 & hEven) | ((v0 ^ notY) & temp)) >> 1
		v0 = ((v0 & (v1 ^ notX)) | (^v0 & (v1 ^ notY))) >> 1
	}
	hOdd := (^v0 & (v1 ^ x)) | (v0 & (v1 ^ notY))

	return interleaveBits(hOdd, hEven)
}

func interleaveBits(odd, even int64) int64 {
	max := odd
	if even > max {
		max = even
	}
	n := 0
	for max > 0 {
		n++
		max >>= 1
	}

	var val int64
	for i := 0; i < n; i++ {
		bit := int64(1) << uint(i)
		var a, b int64
		if even&bit != 0 {
			a = int64(1) << uint(2*i)
		}
		if odd&bit != 0 {
			b = int64(1) << uint(2*i+1)
		}
		val += a + b
	}
	return val
}

// segmentToSegment returns the affine map carrying [aMin, aMax] onto
// [bMin, bMax].
func segmentToSegment(aMin, aMax, bMin, bMax float64) func(float64) float64 {
	da := aMin - aMax
	db := bMin - bMax
	alpha := db / da
	beta := bMin - aMin*alpha
	return func(x float64) float64 { return alpha*x + beta }
}
