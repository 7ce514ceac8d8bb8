package navgraph

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wayfind/geom"
)

// NodeSnapshot is the serialized form of a Node.
type NodeSnapshot[S geom.Scalar] struct {
	ID     string `yaml:"id"`
	Center [3]S   `yaml:"center"`
	Cost   S      `yaml:"cost"`
}

// EdgeSnapshot is the serialized form of an Edge.
type EdgeSnapshot[S geom.Scalar] struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Cost     S        `yaml:"cost"`
	Portal   *[2][3]S `yaml:"portal,omitempty"`
	Directed bool     `yaml:"directed,omitempty"`
}

// Snapshot is a deterministic, order-stable key-value image of a Graph:
// nodes sorted by ID, edges sorted by (From, To). Two snapshots of the
// same graph are identical, which makes persistence round-trips and
// golden-file comparison exact.
type Snapshot[S geom.Scalar] struct {
	Tolerance S                 `yaml:"tolerance"`
	Nodes     []NodeSnapshot[S] `yaml:"nodes"`
	Edges     []EdgeSnapshot[S] `yaml:"edges"`
}

// Snapshot captures the graph's current state.
// Complexity: O(V log V + E log E).
func (g *Graph[S]) Snapshot() Snapshot[S] {
	snap := Snapshot[S]{
		Tolerance: g.tolerance,
		Nodes:     make([]NodeSnapshot[S], 0, len(g.nodes)),
		Edges:     make([]EdgeSnapshot[S], 0, len(g.edges)),
	}
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		snap.Nodes = append(snap.Nodes, NodeSnapshot[S]{
			ID:     n.ID,
			Center: n.Center.Array(),
			Cost:   n.Cost,
		})
	}
	for _, e := range g.edges {
		es := EdgeSnapshot[S]{
			From:     e.From,
			To:       e.To,
			Cost:     e.Cost,
			Directed: e.Directed,
		}
		if e.Portal != nil {
			es.Portal = &[2][3]S{e.Portal.A.Array(), e.Portal.B.Array()}
		}
		snap.Edges = append(snap.Edges, es)
	}
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].From != snap.Edges[j].From {
			return snap.Edges[i].From < snap.Edges[j].From
		}

		return snap.Edges[i].To < snap.Edges[j].To
	})

	return snap
}

// FromSnapshot rebuilds a Graph from a snapshot, re-running the full
// construction validation; a hand-edited snapshot with negative costs or
// dangling references fails exactly like a bad build.
func FromSnapshot[S geom.Scalar](snap Snapshot[S]) (*Graph[S], error) {
	var opts []Option[S]
	if snap.Tolerance != 0 {
		opts = append(opts, WithTolerance(snap.Tolerance))
	}
	g, err := NewGraph(opts...)
	if err != nil {
		return nil, err
	}
	for _, ns := range snap.Nodes {
		if err = g.AddNode(Node[S]{
			ID:     ns.ID,
			Center: geom.FromArray(ns.Center),
			Cost:   ns.Cost,
		}); err != nil {
			return nil, fmt.Errorf("navgraph: snapshot node %q: %w", ns.ID, err)
		}
	}
	for _, es := range snap.Edges {
		e := Edge[S]{From: es.From, To: es.To, Cost: es.Cost, Directed: es.Directed}
		if es.Portal != nil {
			portal := geom.Seg(geom.FromArray(es.Portal[0]), geom.FromArray(es.Portal[1]))
			e.Portal = &portal
		}
		if err = g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("navgraph: snapshot edge %s→%s: %w", es.From, es.To, err)
		}
	}

	return g, nil
}

// Encode renders the snapshot as YAML; field order follows the struct and
// is stable across runs.
func (s Snapshot[S]) Encode() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeSnapshot parses a YAML snapshot produced by Encode.
func DecodeSnapshot[S geom.Scalar](data []byte) (Snapshot[S], error) {
	var snap Snapshot[S]
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot[S]{}, fmt.Errorf("navgraph: decode snapshot: %w", err)
	}

	return snap, nil
}
