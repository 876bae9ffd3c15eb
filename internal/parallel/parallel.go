// Package parallel is the shared divide-and-conquer fan-out primitive
// used by every pass in this module that maps independent work over a
// data-parallel domain: RCB/RIB recursion, multi-jagged sibling slabs,
// Z-order quadrant recursion, and k-means's per-point assignment sweep.
//
// It wraps golang.org/x/sync/errgroup with a worker cap so that the
// "process-wide, configurable" thread pool the partitioning engines
// describe is a single tunable (MaxWorkers), not a parameter threaded
// through every call site. Do's workers are a fixed pool, one per
// worker slot, each pinned to its own OS thread for its lifetime and
// fed every index congruent to its slot number modulo the pool size.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers bounds the number of goroutines any Do call in this process
// runs concurrently. Zero or negative means runtime.GOMAXPROCS(0).
var MaxWorkers int

func workers() int {
	if MaxWorkers > 0 {
		return MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// Do calls f(i) for every i in [0, n) on a fixed pool of workers()
// goroutines, each locked to its own OS thread for its lifetime via
// runtime.LockOSThread (the portable stand-in for index-modulo-core-count
// affinity, since Go's runtime exposes no core-affinity syscall without
// cgo) and assigned every index i where i % workers() == the worker's own
// index. Returns the first non-nil error encountered; all other in-flight
// calls still run to completion, but a worker stops pulling further
// indices once it sees one. n <= 0 is a no-op.
func Do(n int, f func(i int) error) error {
	if n <= 0 {
		return nil
	}
	w := workers()
	if w > n {
		w = n
	}
	g := new(errgroup.Group)
	for k := 0; k < w; k++ {
		k := k
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			for i := k; i < n; i += w {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// DoVoid is Do for functions that cannot fail.
func DoVoid(n int, f func(i int)) {
	_ = Do(n, func(i int) error {
		f(i)
		return nil
	})
}

// Join runs a and b concurrently, waits for both, and returns the first
// error (if any). It mirrors rayon::join, the pattern the reference
// implementation uses to fan out sibling recursive calls.
func Join(a, b func() error) error {
	g, _ := errgroup.WithContext(context.Background())
	g.Go(a)
	g.Go(b)
	return g.Wait()
}

// SplitMany splits slice at the given sorted positions into
// len(positions)+1 disjoint subslices covering the whole of slice, in
// order. Positions must be non-decreasing and within [0, len(slice)].
//
// The returned subslices alias disjoint ranges of slice, which is what
// lets callers (the multi-jagged recursion) write into each one from a
// separate goroutine without synchronization: the disjointness is
// guaranteed by construction, not merely documented.
func SplitMany[T any](slice []T, positions []int) [][]T {
	out := make([][]T, 0, len(positions)+1)
	prev := 0
	for _, p := range positions {
		out = append(out, slice[prev:p])
		prev = p
	}
	out = append(out, slice[prev:])
	return out
}
