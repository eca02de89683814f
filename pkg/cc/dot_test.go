package cc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ccgc/pkg/cc"
)

func TestWriteDotProducesAGraphForBufferedCandidates(t *testing.T) {
	require := require.New(t)
	var destroyed []string
	collector := cc.NewCollector()

	a := cc.NewIn(collector, &node{name: "a", finalize: &destroyed})
	b := cc.NewIn(collector, &node{name: "b", finalize: &destroyed})
	link(a, b)
	link(b, a)
	b.Drop()

	var buf strings.Builder
	require.NoError(collector.WriteDot(&buf))

	out := buf.String()
	require.Contains(out, "digraph")
	require.Contains(out, "strong=")
	require.Contains(out, collector.ID.String())

	a.Drop()
}

func TestWriteDotOnEmptyBufferStillProducesAValidGraph(t *testing.T) {
	require := require.New(t)
	collector := cc.NewCollector()

	var buf strings.Builder
	require.NoError(collector.WriteDot(&buf))
	require.Contains(buf.String(), "digraph")
}
