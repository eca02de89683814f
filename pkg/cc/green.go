package cc

// greenTracer is the marker a payload type satisfies to declare itself
// Green: structurally incapable of holding a managed handle, and therefore
// exempt from the collector (spec.md §4.3). Detected by type assertion at
// box creation time; there is no blanket way in Go to declare a type Green
// without it providing a (no-op) Trace method, since Tracer is required by
// the New constructor's type constraint.
type greenTracer interface {
	Tracer
	cycleFree()
}

// Leaf wraps a payload that cannot itself reference a managed handle (an
// int, a string, a plain data struct with no Cc/Weak fields) so it can be
// declared Green without writing a Trace method by hand. Mirrors the
// original crate's blanket Trace impls for primitive types (src/trace.rs),
// which Go cannot express as a blanket implementation over arbitrary V.
type Leaf[V any] struct {
	Value V
}

// Trace is a no-op: a Leaf's value cannot hold a managed handle by
// construction.
func (Leaf[V]) Trace(func(AnyHandle)) {}

func (Leaf[V]) cycleFree() {}

var _ greenTracer = Leaf[int]{}
