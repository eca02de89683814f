// Command ccdemo drives the cycle collector through spec.md §8's scenarios
// from a terminal, replacing the teacher repo's flag-based compiler front
// end (main.go) with a cobra CLI in the style
// _examples/voedger-voedger's go.mod and command layout use.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ccgc/pkg/cc"
)

var dotPath string

// node is a small self/mutually-referential payload used to build the
// demo scenarios: a list of outgoing handles.
type node struct {
	name  string
	edges []cc.Cc[*node]
}

func (n *node) Trace(sink func(cc.AnyHandle)) {
	cc.TraceSlice[cc.Cc[*node]](n.edges, sink)
}

func (n *node) Finalize() {
	fmt.Printf("destroyed %s\n", n.name)
}

func newNode(name string) cc.Cc[*node] {
	return cc.New[*node](&node{name: name})
}

func link(from, to cc.Cc[*node]) {
	from.Value().edges = append(from.Value().edges, to.Clone())
}

func runDemo(collector *cc.Collector, name string, build func()) {
	fmt.Printf("--- %s ---\n", name)
	build()
	collector.CollectCycles()
	stats := collector.Stats()
	fmt.Printf("stats: %+v\n", stats)
}

func main() {
	root := &cobra.Command{
		Use:   "ccdemo",
		Short: "Drive the cycle collector through example scenarios",
	}
	root.PersistentFlags().StringVar(&dotPath, "dot", "", "write a dependency-graph diagnostic to this path after each scenario")

	root.AddCommand(
		selfLoopCmd(),
		externallyHeldCycleCmd(),
		unheldCycleCmd(),
		cycleWithAcyclicChildCmd(),
	)

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("ccdemo failed")
		os.Exit(1)
	}
}

func withDot(collector *cc.Collector) {
	if dotPath == "" {
		return
	}
	f, err := os.Create(dotPath)
	if err != nil {
		logrus.WithError(err).Warn("could not open --dot path")
		return
	}
	defer f.Close()
	if err := collector.WriteDot(f); err != nil {
		logrus.WithError(err).Warn("could not write dot diagnostic")
	}
}

func selfLoopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-loop",
		Short: "spec.md §8 scenario 1: a self-referencing node",
		Run: func(cmd *cobra.Command, args []string) {
			collector := cc.NewCollector()
			runDemo(collector, "self-loop", func() {
				a := newNode("a")
				link(a, a)
				a.Drop()
			})
			withDot(collector)
		},
	}
}

func externallyHeldCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "externally-held-cycle",
		Short: "spec.md §8 scenario 2: a two-node cycle with an external hold",
		Run: func(cmd *cobra.Command, args []string) {
			collector := cc.NewCollector()
			runDemo(collector, "externally-held-cycle", func() {
				a := newNode("a")
				b := newNode("b")
				link(a, b)
				link(b, a)
				b.Drop()
				// a is deliberately not dropped: held externally.
			})
			withDot(collector)
		},
	}
}

func unheldCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unheld-cycle",
		Short: "spec.md §8 scenario 3: a two-node cycle with no external hold",
		Run: func(cmd *cobra.Command, args []string) {
			collector := cc.NewCollector()
			runDemo(collector, "unheld-cycle", func() {
				a := newNode("a")
				b := newNode("b")
				link(a, b)
				link(b, a)
				b.Drop()
				a.Drop()
			})
			withDot(collector)
		},
	}
}

func cycleWithAcyclicChildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle-with-acyclic-child",
		Short: "spec.md §8 scenario 4: a cycle plus a dangling acyclic child",
		Run: func(cmd *cobra.Command, args []string) {
			collector := cc.NewCollector()
			runDemo(collector, "cycle-with-acyclic-child", func() {
				a := newNode("a")
				b := newNode("b")
				c := newNode("c")
				link(a, b)
				link(b, a)
				link(b, c)
				b.Drop()
				a.Drop()
				c.Drop()
			})
			withDot(collector)
		},
	}
}
