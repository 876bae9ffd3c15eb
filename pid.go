package partition

import "github.com/meshpart/partition/internal/pid"

// PID is an opaque, process-wide unique partition identifier. Two PIDs
// minted by NewPID are never equal; PID carries no ordering meaning
// beyond identity, and supports no arithmetic.
type PID = pid.PID

// NewPID mints a fresh PID. Safe for concurrent use from any number of
// partitioner invocations.
func NewPID() PID {
	return pid.New()
}
