package cc

// Weak is a non-owning observer of a managed box: it keeps the box's
// header alive (via the weak count) but never its payload (spec.md §3's
// weak field semantics). Like Cc[T], it is not safe for concurrent use and
// a bare copy shares the same box without incrementing weak.
// Weak deliberately does not implement AnyHandle: a Trace implementation
// must report only strong (Cc) edges, never weak ones (spec.md's own
// crate drops Weak<T>'s Trace to a no-op for the same reason — "weak
// references should not be traced"). Keeping Weak out of AnyHandle makes
// that a compile error instead of a silent algorithmic bug.
type Weak[T Tracer] struct {
	b *box[T]
}

// Upgrade attempts to produce a strong handle to the observed box,
// incrementing strong and returning ok == true iff the payload is still
// live (spec.md §4's upgrade(W) → optional H).
//
// Gated on dropped, not just strong == 0: the cycle collector reclaims a
// White box's payload via collectWhite/reclaim without ever touching its
// real strong count (only the scratch crc field moves during mark_gray/
// scan/scan_black), so a box killed by a cycle collection can still have
// strong >= 1 even though its payload is gone. Checking only strong would
// hand back a live Cc to a finalized, zeroed box.
func (w Weak[T]) Upgrade() (Cc[T], bool) {
	if w.b == nil || w.b.dropped || w.b.strong == 0 {
		var zero Cc[T]
		return zero, false
	}
	w.b.strong++
	return Cc[T]{b: w.b}, true
}

// MustUpgrade is Upgrade for call sites that have already established the
// payload is live out of band; it panics otherwise. Grounded on
// pkg/memory/genref.go's GenRef.MustDeref in the teacher repo.
func (w Weak[T]) MustUpgrade() Cc[T] {
	h, ok := w.Upgrade()
	if !ok {
		panic("cc: MustUpgrade on a Weak whose payload is gone")
	}
	return h
}

// Drop decrements the weak count. When it reaches zero the header itself
// becomes eligible for garbage collection; this package does nothing
// further since Go's runtime reclaims the box's memory once unreferenced.
func (w *Weak[T]) Drop() {
	if w == nil || w.b == nil {
		return
	}
	b := w.b
	w.b = nil
	b.releaseWeak()
}
