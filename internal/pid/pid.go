// Package pid mints process-wide unique partition identifiers.
//
// A PID carries no ordering meaning beyond identity: two PIDs minted by
// this package are never equal, and arithmetic on them is deliberately
// impossible (the underlying counter is unexported).
package pid

import "sync/atomic"

// PID is an opaque, comparable partition identifier.
type PID struct {
	id uint64
}

var counter uint64

// New mints a fresh, process-wide unique PID. Safe for concurrent use.
func New() PID {
	return PID{id: atomic.AddUint64(&counter, 1)}
}

// Valid reports whether p was minted by New (the zero PID never is).
func (p PID) Valid() bool {
	return p.id != 0
}
