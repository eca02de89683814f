package cc

import "github.com/pkg/errors"

// Cc is a single-word owning reference to a managed box (spec.md §2's
// "Handle"). The zero Cc[T] holds no box and every operation on it is a
// no-op or panics, matching a nil pointer's usual treatment.
//
// Cc[T] is not safe for concurrent use from multiple goroutines, and a
// bare copy of a Cc[T] value (as opposed to calling Clone) silently shares
// the same box without incrementing its strong count — exactly as copying
// a raw pointer would. Treat it the way the standard library treats
// bytes.Buffer: pass it around, but call Clone when you need a second
// independent reference.
type Cc[T Tracer] struct {
	b *box[T]
}

// New allocates a box holding value and returns the sole handle to it
// (spec.md §4.1's create(value)): strong = 1, weak = 1, colour Black unless
// value declares itself Green.
func New[T Tracer](value T) Cc[T] {
	return NewIn(defaultCollector, value)
}

// NewIn is New but associates the box with an explicit Collector instead of
// the package-wide default one (spec.md §9's "process-wide vs explicit
// collector" design note).
func NewIn[T Tracer](c *Collector, value T) Cc[T] {
	b := &box[T]{value: value, collector: c}
	b.strong = 1
	b.weak = 1
	if _, ok := any(value).(greenTracer); ok {
		b.colour = Green
	} else {
		b.colour = Black
	}
	c.stats.noteBoxCreated()
	return Cc[T]{b: b}
}

func (c Cc[T]) ccBoxPtr() boxPtr {
	if c.b == nil {
		return nil
	}
	return c.b
}

// Clone increments the strong count and returns a new handle to the same
// box (spec.md §4.1's clone(h)). Accessing a box this way paints it Black
// (unless it is Green): a box just touched by the caller cannot be a
// candidate root.
func (c Cc[T]) Clone() Cc[T] {
	if c.b == nil {
		panic("cc: Clone of a zero Cc")
	}
	if c.b.collector != nil {
		c.b.collector.guard.check(&c.b.header, "Clone")
	}
	c.b.strong++
	if c.b.colour != Green {
		c.b.colour = Black
	}
	return Cc[T]{b: c.b}
}

// Drop decrements the strong count (spec.md §4.1's drop(h)), releasing the
// box or enlisting it as a cycle candidate as appropriate. Drop nils out
// this handle's reference so a second call on the same Cc value is a no-op
// rather than a double decrement; other copies of the same handle (made by
// bypassing Clone) are not protected by this, since Go has no move
// semantics to revoke them.
func (c *Cc[T]) Drop() {
	if c == nil || c.b == nil {
		return
	}
	b := c.b
	if b.collector != nil {
		b.collector.guard.check(&b.header, "Drop")
	}
	c.b = nil
	b.dropEdge()
}

// Value returns the payload. Panics with ErrAccessGarbageCycle if this
// handle's box has already been reclaimed as part of a garbage cycle, which
// can only happen if a Trace or Finalize implementation violated its
// contract (spec.md §4.1's deref(h)).
func (c Cc[T]) Value() T {
	if c.b == nil || c.b.dropped {
		panic(errors.Wrapf(ErrAccessGarbageCycle, "box %T", c.zeroT()))
	}
	return c.b.value
}

func (c Cc[T]) zeroT() T {
	var zero T
	return zero
}

// Downgrade produces a weak observer of this box, incrementing weak
// (spec.md §4.1's downgrade(h)).
func (c Cc[T]) Downgrade() Weak[T] {
	if c.b == nil {
		panic("cc: Downgrade of a zero Cc")
	}
	c.b.weak++
	return Weak[T]{b: c.b}
}

// IsUnique reports whether this is the only handle, strong or weak, to its
// box (SPEC_FULL.md §4.1's is_unique).
func (c Cc[T]) IsUnique() bool {
	return c.b != nil && c.WeakCount() == 0 && c.b.strong == 1
}

// StrongCount returns the number of outstanding handles to this box.
func (c Cc[T]) StrongCount() int {
	if c.b == nil {
		return 0
	}
	return c.b.strong
}

// WeakCount returns the number of live weak observers, excluding the
// reservation the strong set itself holds.
func (c Cc[T]) WeakCount() int {
	if c.b == nil {
		return 0
	}
	return c.b.weak - 1
}

// PtrEq reports whether a and b reference the same box (SPEC_FULL.md
// §4.1's ptr_eq).
func PtrEq[T Tracer](a, b Cc[T]) bool {
	return a.b == b.b
}

// TryUnwrap consumes the handle and returns the payload by value without
// running its Finalizer, provided this is the unique handle to the box.
// Otherwise it reports ok == false and the handle is left untouched
// (SPEC_FULL.md §4.1's try_unwrap).
func (c *Cc[T]) TryUnwrap() (value T, ok bool) {
	if c == nil || c.b == nil || !c.IsUnique() {
		return c.zeroT(), false
	}
	b := c.b
	c.b = nil
	value = b.value
	b.dropped = true
	var zero T
	b.value = zero
	b.releaseWeak()
	return value, true
}

// GetMut returns a mutable view of the payload if this is the unique
// handle to its box, otherwise reports ok == false (SPEC_FULL.md §4.1's
// get_mut).
func (c Cc[T]) GetMut() (value *T, ok bool) {
	if !c.IsUnique() {
		return nil, false
	}
	return &c.b.value, true
}

// MakeUnique performs copy-on-write: if c is not already the unique handle
// to its box, it clones the payload into a fresh box, drops the old box
// exactly as Drop would, and rebinds c to the fresh box. Returns a mutable
// view of the (now unique) payload (SPEC_FULL.md §4.1's make_unique).
func MakeUnique[T interface {
	Tracer
	Clone() T
}](c *Cc[T]) *T {
	if c.b != nil && c.IsUnique() {
		return &c.b.value
	}
	fresh := c.b.value.Clone()
	old := c.b
	replacement := NewIn(old.collector, fresh)
	c.b = replacement.b
	old.dropEdge()
	return &c.b.value
}
