package gc

import "errors"

var (
	// ErrFinalGCAlloc indicates an attempt to spawn a managed object while
	// the collector is running its final, shutdown-time collection. The
	// program is assumed to be tearing down at that point, so new managed
	// allocations are refused rather than silently surviving into a cycle
	// that will never run again.
	ErrFinalGCAlloc = errors.New("gc: cannot spawn managed object during FinalGC")

	// ErrAlreadyReleased indicates an operation was attempted against an
	// object the collector has already released.
	ErrAlreadyReleased = errors.New("gc: object already released")

	// ErrDirectFree is logged (not returned) as a warning when an object is
	// freed outside the collector's release path without YesReallyDelete
	// set; it is exported so callers constructing their own log messages
	// can match against it with errors.Is.
	ErrDirectFree = errors.New("gc: object freed outside collector without YesReallyDelete")
)
