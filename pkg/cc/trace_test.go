package cc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ccgc/pkg/cc"
)

// slotHolder exercises TraceOption: a payload with a single optional edge.
type slotHolder struct {
	name    string
	slot    cc.Cc[*node]
	present bool
}

func (s *slotHolder) Trace(sink func(cc.AnyHandle)) {
	cc.TraceOption[cc.Cc[*node]](s.slot, s.present, sink)
}

func (s *slotHolder) Finalize() {}

// mapHolder exercises TraceMap: a payload whose edges live in a map.
type mapHolder struct {
	edges map[string]cc.Cc[*node]
}

func (m *mapHolder) Trace(sink func(cc.AnyHandle)) {
	cc.TraceMap[string, cc.Cc[*node]](m.edges, sink)
}

func TestTraceOptionReportsOnlyWhenPresent(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()

	child := cc.NewIn(collector, &node{name: "child", finalize: &destroyed})
	holder := cc.NewIn(collector, &slotHolder{name: "holder", slot: child.Clone(), present: true})

	var seen int
	holder.Value().Trace(func(cc.AnyHandle) { seen++ })
	require.Equal(1, seen)

	holder.Value().present = false
	seen = 0
	holder.Value().Trace(func(cc.AnyHandle) { seen++ })
	require.Equal(0, seen, "TraceOption must not report an edge when present is false")

	holder.Value().slot.Drop()
	holder.Drop()
	child.Drop()
}

func TestTraceMapReportsEveryEdgeOnce(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()

	a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
	b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
	holder := &mapHolder{edges: map[string]cc.Cc[*node]{
		"a": a.Clone(),
		"b": b.Clone(),
	}}
	h := cc.NewIn(collector, holder)

	var seen int
	h.Value().Trace(func(cc.AnyHandle) { seen++ })
	require.Equal(2, seen)

	// h's map holds one clone each of a and b; dropping h releases those
	// clones via the traced edge set, leaving a and b's own handles as the
	// last reference standing. Those decrements buffer a and b as
	// candidates, so their final Drops leave the payloads to the collector.
	h.Drop()
	require.Empty(destroyed)

	a.Drop()
	b.Drop()
	collector.CollectCycles()
	require.ElementsMatch([]string{"a", "b"}, destroyed)
}

func TestTraceSliceSkipsNoEdgesWhenEmpty(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()
	n := cc.NewIn(collector, &node{name: "solo", finalize: &destroyed})

	var seen int
	n.Value().Trace(func(cc.AnyHandle) { seen++ })
	require.Equal(0, seen)

	n.Drop()
	require.Equal([]string{"solo"}, destroyed)
}
