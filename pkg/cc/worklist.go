package cc

// The three phases below are Bacon & Rajan's recursive mark_gray/scan/
// collect_white converted to explicit worklists, per spec.md §4.2's and
// §9's instruction ("implementations should convert to an explicit
// worklist to avoid native-stack overflow on deep heaps... correctness is
// preserved because each phase's effect on a given box depends only on
// that box's per-phase colour state, not on call order"). Each function
// below is the worklist form of one spec.md pseudocode routine; see
// DESIGN.md for the hand-verification against spec.md §8's six scenarios.

// markGray is the worklist form of spec.md §4.2's mark_gray(b).
func markGray(root boxPtr) {
	stack := []boxPtr{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		b := stack[n]
		stack = stack[:n]

		h := b.hdr()
		if h.colour == Gray {
			continue
		}
		h.ensureCRC()

		b.trace(func(t boxPtr) {
			th := t.hdr()
			th.ensureCRC()
			th.crc--
			stack = append(stack, t)
		})
		// Painted after tracing, so a Trace that clones and drops its own
		// handle (recolouring the box) cannot re-queue it forever.
		h.colour = Gray
	}
}

// scan is the worklist form of spec.md §4.2's scan(b).
func scan(root boxPtr) {
	stack := []boxPtr{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		b := stack[n]
		stack = stack[:n]

		h := b.hdr()
		if h.colour != Gray {
			continue
		}
		if h.crc > 0 {
			scanBlack(b)
			continue
		}
		h.colour = White
		b.trace(func(t boxPtr) {
			stack = append(stack, t)
		})
	}
}

// scanBlack is the worklist form of spec.md §4.2's scan_black(b). The
// increment of a target's crc always runs; only the recursive descent is
// gated on the target not already being Black — see DESIGN.md's Open
// Question resolution for why the gating matters for correctness.
func scanBlack(root boxPtr) {
	stack := []boxPtr{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		b := stack[n]
		stack = stack[:n]

		h := b.hdr()
		if h.colour == Black {
			continue
		}
		h.colour = Black
		h.resetScratch()

		b.trace(func(t boxPtr) {
			th := t.hdr()
			th.crc++
			if th.colour != Black {
				stack = append(stack, t)
			}
		})
	}
}

// collectWhite is the worklist form of spec.md §4.2's collect_white(b). It
// records visitation order during the discovery pass and reclaims in
// reverse order, so that a node's payload (and thus its Trace method) is
// still intact while its children are being discovered, matching the
// recursive source's "recurse into children, then free own payload".
func collectWhite(root boxPtr) {
	var order []boxPtr
	stack := []boxPtr{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		b := stack[n]
		stack = stack[:n]

		h := b.hdr()
		if h.colour != White || h.buffered {
			continue
		}
		h.colour = Black
		order = append(order, b)
		b.trace(func(t boxPtr) {
			stack = append(stack, t)
		})
	}

	for i := len(order) - 1; i >= 0; i-- {
		order[i].reclaim()
	}
}
