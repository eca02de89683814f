package cc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ccgc/pkg/cc"
)

// node is a small test payload mirroring the Owner/Gadget shape from the
// original crate's own doctest (original_source/src/lib.rs): a value that
// can hold zero or more outgoing managed edges and records whether its
// Finalize ran.
type node struct {
	name     string
	edges    []cc.Cc[*node]
	finalize *[]string
}

func (n *node) Trace(sink func(cc.AnyHandle)) {
	cc.TraceSlice[cc.Cc[*node]](n.edges, sink)
}

func (n *node) Finalize() {
	*n.finalize = append(*n.finalize, n.name)
}

func link(from, to cc.Cc[*node]) {
	from.Value().edges = append(from.Value().edges, to.Clone())
}

func TestScenarios(t *testing.T) {
	t.Run("self-loop", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		link(a, a)
		a.Drop()

		collector.CollectCycles()

		require.Equal([]string{"a"}, destroyed)
		require.Equal(0, collector.NumberOfRootsBuffered())
	})

	t.Run("two-node cycle with external hold", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
		link(a, b)
		link(b, a)
		b.Drop()

		collector.CollectCycles()

		require.Empty(destroyed)
		require.Equal(0, collector.NumberOfRootsBuffered())
		require.Equal(2, a.StrongCount())
	})

	t.Run("two-node cycle, no external hold", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
		link(a, b)
		link(b, a)
		b.Drop()
		a.Drop()

		collector.CollectCycles()

		require.ElementsMatch([]string{"a", "b"}, destroyed)
		require.Equal(0, collector.NumberOfRootsBuffered())
	})

	t.Run("cycle plus dangling acyclic child", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
		c := cc.NewIn(collector, &node{name: "c", finalize: &destroyed})
		link(a, b)
		link(b, a)
		link(b, c)
		b.Drop()
		a.Drop()
		c.Drop()

		collector.CollectCycles()

		require.ElementsMatch([]string{"a", "b", "c"}, destroyed)
		require.Equal(0, collector.NumberOfRootsBuffered())
	})

	t.Run("green short-circuit", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		leaf := cc.NewIn(collector, cc.Leaf[string]{Value: "leaf"})
		require.Equal(0, collector.NumberOfRootsBuffered())
		leaf.Drop()
		require.Equal(0, collector.NumberOfRootsBuffered())
		_ = destroyed // Leaf has no Finalizer; nothing to assert here.
	})

	t.Run("weak survives payload", func(t *testing.T) {
		require := require.New(t)
		var destroyed []string
		collector := cc.NewCollector()

		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		weak := a.Downgrade()
		a.Drop()

		require.Equal([]string{"a"}, destroyed)
		_, ok := weak.Upgrade()
		require.False(ok)

		weak.Drop()
	})
}

func TestIdempotence(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()

	a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
	b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
	a.Value().edges = append(a.Value().edges, b.Clone())
	b.Value().edges = append(b.Value().edges, a.Clone())
	b.Drop()
	a.Drop()

	collector.CollectCycles()
	require.Len(destroyed, 2)

	collector.CollectCycles()
	require.Len(destroyed, 2, "second collect_cycles call must not reclaim anything new")
}

func TestAcyclicReclamationNeedsNoCollection(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()

	root := cc.NewIn(collector, &node{name: "root", finalize: &destroyed})
	child := cc.NewIn(collector, &node{name: "child", finalize: &destroyed})

	// Transfer ownership of child into root's edge slice without cloning,
	// so child's strong count never rises above one: a plain acyclic
	// ownership chain, not a shared reference. Dropping root then cascades
	// straight through release() at every step, never buffering anything.
	root.Value().edges = append(root.Value().edges, child)

	root.Drop()

	require.ElementsMatch([]string{"root", "child"}, destroyed)
	require.Equal(0, collector.NumberOfRootsBuffered(), "a strictly acyclic chain must never buffer a candidate")
}

func TestSetThresholdRejectsNonPositive(t *testing.T) {
	require := require.New(t)
	collector := cc.NewCollector()

	require.Error(collector.SetThreshold(0))
	require.Error(collector.SetThreshold(-1))
	require.NoError(collector.SetThreshold(8))
	require.Equal(8, collector.GetThreshold())
}

func TestThresholdTriggersAutomaticCollection(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector(cc.WithThreshold(2))

	for i := 0; i < 2; i++ {
		a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
		b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
		a.Value().edges = append(a.Value().edges, b.Clone())
		b.Value().edges = append(b.Value().edges, a.Clone())
		b.Drop()
		a.Drop()
	}

	require.Equal(0, collector.NumberOfRootsBuffered(), "threshold of 2 should auto-collect as soon as each pair's two candidates are both buffered")
	require.Len(destroyed, 4)
}
