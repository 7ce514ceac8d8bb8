package navgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

func mustGraph(t *testing.T, opts ...navgraph.Option[float64]) *navgraph.Graph[float64] {
	t.Helper()
	g, err := navgraph.NewGraph(opts...)
	require.NoError(t, err)

	return g
}

func addNode(t *testing.T, g *navgraph.Graph[float64], id string, x, y float64) {
	t.Helper()
	require.NoError(t, g.AddNode(navgraph.Node[float64]{ID: id, Center: geom.V3(x, y, 0)}))
}

// TestAddNode_Validation covers ID and position duplicate rejection.
func TestAddNode_Validation(t *testing.T) {
	g := mustGraph(t, navgraph.WithTolerance(0.5))

	require.ErrorIs(t, g.AddNode(navgraph.Node[float64]{ID: ""}), navgraph.ErrEmptyNodeID)

	addNode(t, g, "a", 0, 0)
	err := g.AddNode(navgraph.Node[float64]{ID: "a", Center: geom.V3(9.0, 9.0, 0.0)})
	require.ErrorIs(t, err, navgraph.ErrDuplicateNode)

	// Another node within tolerance of "a".
	err = g.AddNode(navgraph.Node[float64]{ID: "b", Center: geom.V3(0.3, 0.0, 0.0)})
	require.ErrorIs(t, err, navgraph.ErrDuplicateNode)

	// Outside tolerance is fine.
	require.NoError(t, g.AddNode(navgraph.Node[float64]{ID: "c", Center: geom.V3(2.0, 0.0, 0.0)}))
	require.Equal(t, 2, g.NodeCount())
}

// TestWithTolerance_Invalid rejects negative tolerances at construction.
func TestWithTolerance_Invalid(t *testing.T) {
	_, err := navgraph.NewGraph(navgraph.WithTolerance(-1.0))
	require.ErrorIs(t, err, navgraph.ErrBadTolerance)
}

// TestAddEdge_Validation walks the validation order: dangling endpoints,
// self-loops, then cost checks.
func TestAddEdge_Validation(t *testing.T) {
	g := mustGraph(t)
	addNode(t, g, "a", 0, 0)
	addNode(t, g, "b", 1, 0)

	cases := []struct {
		name string
		edge navgraph.Edge[float64]
		err  error
	}{
		{"DanglingFrom", navgraph.Edge[float64]{From: "x", To: "b", Cost: 1}, navgraph.ErrDanglingEdge},
		{"DanglingTo", navgraph.Edge[float64]{From: "a", To: "x", Cost: 1}, navgraph.ErrDanglingEdge},
		{"SelfLoop", navgraph.Edge[float64]{From: "a", To: "a", Cost: 1}, navgraph.ErrSelfLoop},
		{"NegativeCost", navgraph.Edge[float64]{From: "a", To: "b", Cost: -0.5}, navgraph.ErrNegativeCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, g.AddEdge(tc.edge), tc.err)
		})
	}

	// Failures left the graph untouched.
	require.Zero(t, g.EdgeCount())

	// Zero cost is permitted, negative is not.
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 0}))
	require.Equal(t, 1, g.EdgeCount())
}

// TestNeighbors_UndirectedMirroring ensures undirected edges are visible
// from both endpoints, normalized to leave the queried node.
func TestNeighbors_UndirectedMirroring(t *testing.T) {
	g := mustGraph(t)
	addNode(t, g, "a", 0, 0)
	addNode(t, g, "b", 1, 0)
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 2}))

	fromA, err := g.Neighbors("a")
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	require.Equal(t, "a", fromA[0].From)
	require.Equal(t, "b", fromA[0].To)

	fromB, err := g.Neighbors("b")
	require.NoError(t, err)
	require.Len(t, fromB, 1)
	require.Equal(t, "b", fromB[0].From)
	require.Equal(t, "a", fromB[0].To)

	_, err = g.Neighbors("zzz")
	require.ErrorIs(t, err, navgraph.ErrNodeNotFound)
}

// TestNeighbors_DirectedOneWay ensures a directed edge never shows up in
// the destination's adjacency.
func TestNeighbors_DirectedOneWay(t *testing.T) {
	g := mustGraph(t)
	addNode(t, g, "a", 0, 0)
	addNode(t, g, "b", 1, 0)
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 1, Directed: true}))

	fromA, err := g.Neighbors("a")
	require.NoError(t, err)
	require.Len(t, fromA, 1)

	fromB, err := g.Neighbors("b")
	require.NoError(t, err)
	require.Empty(t, fromB)
}

// TestDeterministicAccessors checks sorted NodeIDs and Edges regardless of
// insertion order.
func TestDeterministicAccessors(t *testing.T) {
	g := mustGraph(t)
	for _, id := range []string{"c", "a", "b"} {
		addNode(t, g, id, float64(len(id)), 0)
	}
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "c", To: "a", Cost: 1}))
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 1}))

	require.Equal(t, []string{"a", "b", "c"}, g.NodeIDs())

	edges := g.Edges()
	require.Equal(t, "a", edges[0].From)
	require.Equal(t, "c", edges[1].From)
}

// TestSnapshot_RoundTrip serializes a graph with portals and restores an
// identical one: same IDs, edges, costs, tolerance.
func TestSnapshot_RoundTrip(t *testing.T) {
	g := mustGraph(t, navgraph.WithTolerance(0.01))
	addNode(t, g, "t0", 0, 0)
	addNode(t, g, "t1", 1, 0)
	portal := geom.Seg(geom.V3(0.5, -1.0, 0.0), geom.V3(0.5, 1.0, 0.0))
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "t0", To: "t1", Cost: 1, Portal: &portal}))

	data, err := g.Snapshot().Encode()
	require.NoError(t, err)

	snap, err := navgraph.DecodeSnapshot[float64](data)
	require.NoError(t, err)
	restored, err := navgraph.FromSnapshot(snap)
	require.NoError(t, err)

	require.Equal(t, g.NodeIDs(), restored.NodeIDs())
	require.Equal(t, g.Edges(), restored.Edges())
	require.Equal(t, g.Tolerance(), restored.Tolerance())

	// Determinism: two encodings of the same graph are byte-identical.
	again, err := restored.Snapshot().Encode()
	require.NoError(t, err)
	require.Equal(t, data, again)
}

// TestFromSnapshot_Invalid re-runs build validation on restore.
func TestFromSnapshot_Invalid(t *testing.T) {
	snap := navgraph.Snapshot[float64]{
		Nodes: []navgraph.NodeSnapshot[float64]{{ID: "a"}, {ID: "b"}},
		Edges: []navgraph.EdgeSnapshot[float64]{{From: "a", To: "ghost", Cost: 1}},
	}
	_, err := navgraph.FromSnapshot(snap)
	require.ErrorIs(t, err, navgraph.ErrDanglingEdge)

	snap.Edges = []navgraph.EdgeSnapshot[float64]{{From: "a", To: "b", Cost: -3}}
	_, err = navgraph.FromSnapshot(snap)
	require.ErrorIs(t, err, navgraph.ErrNegativeCost)
}
