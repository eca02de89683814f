package cc

import "github.com/pkg/errors"

// traceGuard is the mutation-during-trace re-entrancy check (spec.md §9's
// "debug-only re-entry guard ... or a runtime flag on the collector").
// Adapted from pkg/memory/constraint.go's ConstraintContext in the teacher
// repo: same AssertOnError-vs-record shape, stripped of that file's mutex
// and atomics since this collector is single-threaded per spec.md §5.
type traceGuard struct {
	enabled    bool
	violations []string
}

// check panics with ErrTraceReentrancy if b is currently being traced and
// the guard is enabled; otherwise records nothing and returns.
func (g *traceGuard) check(b *header, op string) {
	if g.enabled && b.tracing {
		violation := "cc: " + op + " called on a box while its Trace method is still running"
		g.violations = append(g.violations, violation)
		panic(errors.Wrap(ErrTraceReentrancy, violation))
	}
}

// Violations returns the recorded guard violations, mirroring
// ConstraintContext.GetViolations. check records each violation just before
// it panics, so an entry is only visible to a caller that recovered from
// that panic. With the guard disabled no check runs and nothing is recorded.
func (c *Collector) Violations() []string {
	out := make([]string, len(c.guard.violations))
	copy(out, c.guard.violations)
	return out
}
