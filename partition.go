package partition

import (
	"github.com/meshpart/partition/geom"
)

// Partition owns a read-only point slice, a read-only weight slice, and
// a mutable PID per point. The invariant len(Ids) == len(Points) ==
// len(Weights) holds at every mutation boundary; the set of distinct
// Ids is the effective part count, which may be <= the requested k
// during transient states.
type Partition struct {
	Points  []geom.Point
	Weights []float64
	Ids     []PID
}

// New builds a Partition over points and weights with a fresh PID
// assigned to every point (all points in a single part). Returns an
// InvalidInput error if len(points) != len(weights).
func New(points []geom.Point, weights []float64) (*Partition, error) {
	if len(points) != len(weights) {
		return nil, NewError("partition.New", InvalidInput, nil)
	}
	ids := make([]PID, len(points))
	id := NewPID()
	for i := range ids {
		ids[i] = id
	}
	return &Partition{Points: points, Weights: weights, Ids: ids}, nil
}

// NumParts returns the effective part count: the number of distinct PIDs
// currently present in Ids.
func (p *Partition) NumParts() int {
	seen := make(map[PID]struct{})
	for _, id := range p.Ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// Labels materializes the PIDs to contiguous 0..k-1 integer labels,
// assigned by first-appearance order in Ids. This is the terminal step
// that hands a partition to external consumers that expect small
// integer labels rather than opaque identifiers.
func (p *Partition) Labels() []int {
	order := make(map[PID]int)
	labels := make([]int, len(p.Ids))
	for i, id := range p.Ids {
		l, ok := order[id]
		if !ok {
			l = len(order)
			order[id] = l
		}
		labels[i] = l
	}
	return labels
}

// PartIndices groups point indices by PID; each PID's indices are in
// ascending order.
func (p *Partition) PartIndices() map[PID][]int {
	out := make(map[PID][]int)
	for i, id := range p.Ids {
		out[id] = append(out[id], i)
	}
	return out
}

// SortedParts returns the distinct PIDs in p, ordered by first
// appearance in Ids. Useful wherever output needs a deterministic part
// ordering without materializing labels.
func (p *Partition) SortedParts() []PID {
	seen := make(map[PID]bool)
	var order []PID
	for _, id := range p.Ids {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	return order
}
