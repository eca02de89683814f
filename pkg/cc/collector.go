package cc

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultThreshold is the candidate-buffer length that triggers an
// automatic CollectCycles call. Chosen as a small power of two in the
// 1-256 range spec.md §6 suggests; resolves spec.md §9's "exact default
// threshold" Open Question.
const DefaultThreshold = 64

// Collector is the process-wide (or, via NewIn, explicit) registry of
// candidate boxes plus the trial-deletion algorithm (spec.md §2's
// "Collector"). The zero value is not usable; construct with NewCollector.
//
// A Collector is not safe for concurrent use from multiple goroutines: its
// counts and colours are not atomic and its buffer has no synchronisation
// (spec.md §5). Give each goroutine that needs independent collection its
// own Collector from NewCollector, and allocate its boxes there with NewIn.
type Collector struct {
	ID        uuid.UUID
	buffer    []boxPtr
	threshold int
	stats     Stats
	guard     traceGuard

	// GuardTrace enables the mutation-during-trace re-entrancy check
	// (spec.md §9's "runtime flag on the collector" option). Defaults to
	// true; see guard.go.
	GuardTrace bool

	log *logrus.Entry
}

var defaultCollector = NewCollector()

// NewCollector constructs a Collector, applying any Options given.
// Grounded on pkg/memory/options.go's (Jekaa-go-mvcc-map) functional-option
// constructor pattern, adapted from that repo's log/slog to logrus.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		ID:         uuid.New(),
		threshold:  DefaultThreshold,
		GuardTrace: true,
	}
	c.log = logrus.WithField("prefix", "cc").WithField("collector", c.ID)
	for _, opt := range opts {
		opt(c)
	}
	c.guard.enabled = c.GuardTrace
	return c
}

// Option configures a Collector at construction time.
type Option func(*Collector)

// WithThreshold sets the initial candidate-buffer threshold.
func WithThreshold(n int) Option {
	return func(c *Collector) { c.threshold = n }
}

// WithLogger overrides the collector's logrus entry.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Collector) { c.log = log }
}

// WithGuardTrace overrides the default mutation-during-trace guard setting.
func WithGuardTrace(enabled bool) Option {
	return func(c *Collector) { c.GuardTrace = enabled; c.guard.enabled = enabled }
}

// WithID overrides the collector's diagnostic identifier.
func WithID(id uuid.UUID) Option {
	return func(c *Collector) { c.ID = id }
}

// SetThreshold configures the candidate-buffer length that triggers an
// automatic collection (spec.md §6's set_threshold). Rejects a non-positive
// value: the one input this package validates, since accepting one would
// make every possible_root call collect synchronously.
func (c *Collector) SetThreshold(n int) error {
	if n <= 0 {
		return ErrInvalidThreshold
	}
	c.threshold = n
	return nil
}

// GetThreshold returns the current automatic-collection threshold
// (spec.md §6's get_threshold).
func (c *Collector) GetThreshold() int {
	return c.threshold
}

// NumberOfRootsBuffered reports the current candidate-buffer length
// (spec.md §6's number_of_roots_buffered).
func (c *Collector) NumberOfRootsBuffered() int {
	return len(c.buffer)
}

// Stats returns a snapshot of the collector's running counters.
func (c *Collector) Stats() Stats {
	return c.stats
}

// possibleRoot is spec.md §4.1's possible_root(box).
func (c *Collector) possibleRoot(b boxPtr) {
	h := b.hdr()
	if h.colour == Green {
		return
	}
	h.colour = Purple
	if !h.buffered {
		h.buffered = true
		c.buffer = append(c.buffer, b)
		c.stats.noteBuffered(len(c.buffer))
		if len(c.buffer) >= c.threshold {
			c.CollectCycles()
		}
	}
}

// release is spec.md §4.1's release(box).
func (c *Collector) release(b boxPtr) {
	b.trace(func(t boxPtr) {
		t.dropEdge()
	})
	h := b.hdr()
	h.colour = Black
	if !h.buffered {
		b.reclaim()
	}
}

// CollectCycles runs the three-phase trial-deletion algorithm over the
// current candidate buffer (spec.md §4.2, §6's collect_cycles()).
func (c *Collector) CollectCycles() {
	c.log.Debug("collect_cycles: starting, buffer depth ", len(c.buffer))
	c.markRootsPhase()
	c.scanPhase()
	reclaimedBefore := c.stats.PayloadsReclaimed
	c.collectPhase()
	reclaimed := c.stats.PayloadsReclaimed - reclaimedBefore
	if reclaimed > 0 {
		c.stats.CyclesReclaimed += reclaimed
	}
	c.stats.noteCollectionRun()
	c.log.Info("collect_cycles: finished, reclaimed ", reclaimed, " boxes")
}

// markRootsPhase is spec.md §4.2's Phase I — mark_roots.
func (c *Collector) markRootsPhase() {
	old := c.buffer
	kept := old[:0]
	for _, b := range old {
		h := b.hdr()
		if h.colour == Purple && h.strong > 0 {
			kept = append(kept, b)
			markGray(b)
			continue
		}
		h.buffered = false
		if h.colour == Black && h.strong == 0 {
			b.reclaim()
		}
	}
	c.buffer = kept
}

// scanPhase is spec.md §4.2's Phase II — scan.
func (c *Collector) scanPhase() {
	for _, b := range c.buffer {
		scan(b)
	}
}

// collectPhase is spec.md §4.2's Phase III — collect_white. buffered is
// cleared immediately before collectWhite runs on that same root, following
// the original crate's collect_roots (DESIGN.md's Open Question
// resolution), not after as spec.md's prose order would otherwise suggest.
func (c *Collector) collectPhase() {
	buf := c.buffer
	c.buffer = nil
	for _, b := range buf {
		b.hdr().buffered = false
		collectWhite(b)
	}
}
