package partition

import "github.com/meshpart/partition/geom"

// InitialPartition generates a fresh Partition from points and weights.
// RCB, RIB, multi-jagged, Z-order, and Hilbert all implement this.
type InitialPartition interface {
	Partition(points []geom.Point, weights []float64) (*Partition, error)
}

// ImprovePartition mutates an existing Partition's Ids in place to
// improve it, without changing the set of points or weights. The k-means
// refiner and both graph refiners implement this.
type ImprovePartition interface {
	Improve(p *Partition) error
}

// initialFn and improveFn let ordinary functions satisfy the interfaces
// above without a named type, the same way http.HandlerFunc adapts a
// func to http.Handler.
type initialFn func(points []geom.Point, weights []float64) (*Partition, error)

func (f initialFn) Partition(points []geom.Point, weights []float64) (*Partition, error) {
	return f(points, weights)
}

type improveFn func(p *Partition) error

func (f improveFn) Improve(p *Partition) error { return f(p) }

// Compose fuses two partitioning stages into one, following the
// composition law: Initial . Improve -> Initial (run a, then b in
// place on the result); Improve . Improve -> Improve (run a then b,
// each mutating in place). Composition is right-associative and
// value-pure: the returned value owns a and b by reference only, with
// no shared mutable state of its own.
func Compose(a InitialPartition, b ImprovePartition) InitialPartition {
	return initialFn(func(points []geom.Point, weights []float64) (*Partition, error) {
		p, err := a.Partition(points, weights)
		if err != nil && !IsWarning(err) {
			return nil, err
		}
		warn := err
		if err := b.Improve(p); err != nil {
			if !IsWarning(err) {
				return nil, err
			}
			warn = err
		}
		return p, warn
	})
}

// ComposeImprove fuses two improvers into one, running a then b, each
// mutating the partition in place. A NotConverged warning from a does not
// stop b from running; the later of the two warnings is returned.
func ComposeImprove(a, b ImprovePartition) ImprovePartition {
	return improveFn(func(p *Partition) error {
		warn := a.Improve(p)
		if warn != nil && !IsWarning(warn) {
			return warn
		}
		if err := b.Improve(p); err != nil {
			if !IsWarning(err) {
				return err
			}
			warn = err
		}
		return warn
	})
}
