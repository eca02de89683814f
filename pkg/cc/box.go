package cc

import (
	"fmt"
	"unsafe"
)

// Finalizer is implemented by payload types that need a deterministic
// callback when their managed box is reclaimed, either by the last strong
// drop or by the cycle collector. Go has no language-level destructor, so
// this capability plays the role the original crate's Drop impl plays for
// free (spec.md §3's "destructors run exactly once per managed object").
type Finalizer interface {
	Finalize()
}

// boxPtr is the type-erased view of a box[T] the collector operates
// through, regardless of T. It replaces the original crate's dyn CcBoxPtr
// (cc_box_ptr.rs): Go generics give us no way to store a heterogeneous
// collection of box[T] values directly, so the collector's candidate
// buffer and worklists hold boxPtr instead.
type boxPtr interface {
	hdr() *header
	trace(sink func(boxPtr))
	reclaim()
	dropEdge()
	typeName() string
	id() uintptr
}

// box is the heap record for one managed value (spec.md §3's "Managed
// box"). It embeds header so the collector can manipulate strong/weak/
// colour/crc directly when it already has a *box[T] in hand, and exposes
// the same state through boxPtr when it only has a type-erased handle.
type box[T Tracer] struct {
	header
	value     T
	dropped   bool
	collector *Collector
}

func (b *box[T]) hdr() *header { return &b.header }

func (b *box[T]) id() uintptr { return uintptr(unsafe.Pointer(b)) }

func (b *box[T]) typeName() string {
	return fmt.Sprintf("%T", b.value)
}

// trace invokes the payload's Trace method, adapting the AnyHandle-level
// sink the payload sees into the boxPtr-level sink the collector's worklists
// operate on. Guarded by the collector's mutation-during-trace flag when
// enabled (DESIGN.md's guard.go).
func (b *box[T]) trace(sink func(boxPtr)) {
	guard := b.collector != nil && b.collector.GuardTrace
	if guard {
		b.tracing = true
		defer func() { b.tracing = false }()
	}
	b.value.Trace(sinkBox(sink))
}

// dropEdge performs the drop operation on a type-erased edge target: it is
// the operation release() and Cc[T].Drop both reduce to once they have a
// boxPtr in hand (spec.md §4.1's drop(h)).
func (b *box[T]) dropEdge() {
	b.strong--
	if b.strong == 0 {
		b.collector.release(b)
	} else {
		b.collector.possibleRoot(b)
	}
}

// reclaim runs the payload's Finalizer (if any) exactly once, then drops
// the strong set's weak reservation. Idempotent via the dropped flag so
// both the acyclic release path and Phase III's collect_white can call it
// without coordinating who goes first.
func (b *box[T]) reclaim() {
	if b.dropped {
		return
	}
	b.dropped = true
	if f, ok := any(b.value).(Finalizer); ok {
		f.Finalize()
	}
	var zero T
	b.value = zero
	if b.collector != nil {
		b.collector.stats.notePayloadReclaimed()
	}
	b.releaseWeak()
}

// releaseWeak decrements weak and, when it reaches zero, notes the header
// free. Every path that drops a weak reference — the strong set's own
// reservation in reclaim, an explicit Weak.Drop, and TryUnwrap — must route
// through this single helper so Stats.HeadersFreed never under-counts the
// case where a Weak observer outlives its payload and is the one to finally
// drop the header's last reference (spec.md §8 scenario 6).
func (b *box[T]) releaseWeak() {
	b.weak--
	if b.weak == 0 && b.collector != nil {
		b.collector.stats.noteHeaderFreed()
	}
}
