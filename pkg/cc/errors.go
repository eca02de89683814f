package cc

import "github.com/pkg/errors"

// ErrAccessGarbageCycle is the (wrapped) panic value when a handle's payload is
// dereferenced after it has already been reclaimed as part of a garbage
// cycle. Reaching this case requires a Trace or Finalize implementation
// that violates its contract by reaching back into a sibling mid-collapse;
// it cannot occur through any safe use of the package (spec.md §4.1).
var ErrAccessGarbageCycle = errors.New("cc: invalid access during cycle collection")

// ErrTraceReentrancy is the (wrapped) panic value when a Trace implementation
// calls back into Clone or Drop on the box currently being traced, which
// spec.md §4.3 forbids ("no side effects observable to the collector").
// Only raised when the owning Collector's GuardTrace option is enabled.
var ErrTraceReentrancy = errors.New("cc: trace implementation mutated a handle during traversal")

// ErrInvalidThreshold is returned by SetThreshold for a non-positive value.
var ErrInvalidThreshold = errors.New("cc: threshold must be positive")
