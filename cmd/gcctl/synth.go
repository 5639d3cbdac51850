package main

import (
	"math/rand"

	"github.com/duskforge/triad/gc"
)

// node is a synthetic managed object used to exercise the collector from
// the command line. It carries a handful of outgoing references so graphs
// built by buildGraph have realistic fan-out for walk and stats to report
// on.
type node struct {
	gc.Object
	id   int
	refs []*node
}

func newNode(c *gc.Collector, id int) *node {
	return gc.Spawn(c, &node{id: id})
}

func (n *node) GCMark(c *gc.Collector) {
	for i := range n.refs {
		gc.MarkRef(c, &n.refs[i])
	}
}

func (n *node) GCDestroy() {}

func (n *node) GCSize() uintptr { return 32 + uintptr(len(n.refs))*8 }

func (n *node) GCReferences() []*gc.Object {
	out := make([]*gc.Object, 0, len(n.refs))
	for _, r := range n.refs {
		if r != nil {
			out = append(out, &r.Object)
		}
	}
	return out
}

func link(c *gc.Collector, from, to *node) {
	from.refs = append(from.refs, to)
	c.WriteBarrier(&from.Object, &to.Object)
}

// buildGraph spawns numNodes synthetic objects, roots the first as a soft
// root, and wires up to edgesPerNode random forward references per node so
// the graph has both reachable and unreachable garbage once a cycle runs.
func buildGraph(c *gc.Collector, numNodes, edgesPerNode int, seed int64) []*node {
	rng := rand.New(rand.NewSource(seed))
	nodes := make([]*node, numNodes)
	for i := 0; i < numNodes; i++ {
		nodes[i] = newNode(c, i)
	}
	if numNodes == 0 {
		return nodes
	}
	c.AddSoftRoot(&nodes[0].Object)

	// Only wire a random subset of nodes reachable from the root so a
	// fraction of the graph is genuine garbage for Sweep to reclaim.
	reachable := numNodes/2 + 1
	if reachable > numNodes {
		reachable = numNodes
	}
	for i := 0; i < reachable; i++ {
		for e := 0; e < edgesPerNode; e++ {
			j := rng.Intn(reachable)
			if j == i {
				continue
			}
			link(c, nodes[i], nodes[j])
		}
	}
	return nodes
}
