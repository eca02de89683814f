package cc

// Stats accumulates collection counters for a Collector. Read-only from the
// caller's perspective; it never feeds back into the algorithm. Adapted
// from pkg/memory/symmetric.go's SymmetricStats in the teacher repo, with
// the counters re-scoped from symmetric-RC bookkeeping to this collector's
// own phases.
type Stats struct {
	BoxesCreated       int
	PayloadsReclaimed  int
	HeadersFreed       int
	CollectionsRun     int
	CandidatesBuffered int
	PeakBufferDepth    int
	CyclesReclaimed    int
}

func (s *Stats) noteBoxCreated()       { s.BoxesCreated++ }
func (s *Stats) notePayloadReclaimed() { s.PayloadsReclaimed++ }
func (s *Stats) noteHeaderFreed()      { s.HeadersFreed++ }
func (s *Stats) noteCollectionRun()    { s.CollectionsRun++ }

func (s *Stats) noteBuffered(depth int) {
	s.CandidatesBuffered++
	if depth > s.PeakBufferDepth {
		s.PeakBufferDepth = depth
	}
}
