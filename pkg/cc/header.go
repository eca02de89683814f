package cc

// header is the collector-visible part of a managed box: the counts and
// colour every box carries regardless of its payload type T. It is kept
// separate from the payload so the collector can manipulate heterogeneous
// boxes through the boxPtr interface without caring what T is.
type header struct {
	strong int
	weak   int
	colour Colour

	// buffered is true iff this box currently sits in its collector's
	// candidate buffer.
	buffered bool

	// crc is scratch state used only during trial deletion (spec.md §4.2):
	// strong count minus the internal in-edges observed from within a
	// suspected cycle. Meaningless outside a collection.
	crc int

	// crcInit guards the lazy first-touch initialisation of crc (crc is
	// conceptually "strong until first touched this collection"); see
	// DESIGN.md's Open Question resolution for why this can't simply be
	// tied to the colour transition to Gray.
	crcInit bool

	// tracing is set for the duration of a single trace() call when the
	// owning collector's mutation-during-trace guard is enabled.
	tracing bool
}

// ensureCRC lazily seeds crc from strong the first time this box is touched
// during a collection, regardless of whether the touch is the box's own
// mark_gray entry or an incoming edge decrement from a parent.
func (h *header) ensureCRC() {
	if !h.crcInit {
		h.crc = h.strong
		h.crcInit = true
	}
}

// resetScratch clears the per-collection scratch fields once a box returns
// to Black, so the next collection's lazy crc init starts clean.
func (h *header) resetScratch() {
	h.crcInit = false
	h.crc = 0
}
