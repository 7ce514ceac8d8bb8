package navnet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
	"github.com/katalvlaran/wayfind/navnet"
)

// diamond: two routes from hub to rim, the one through c cheaper. Link
// costs dominate the straight-line distances, so the fixture stays valid
// for the metric heuristic too.
//
//	hub --1-- a --1-- rim
//	hub --1-- c --0.8-- rim
func diamond(t *testing.T, metric bool) *navnet.Net[float64] {
	t.Helper()
	nodes := []navnet.Node[float64]{
		{ID: "hub", Position: geom.V3[float64](0, 0, 0)},
		{ID: "a", Position: geom.V3[float64](0.5, 0.5, 0)},
		{ID: "c", Position: geom.V3[float64](0.5, -0.5, 0)},
		{ID: "rim", Position: geom.V3[float64](1, 0, 0)},
	}
	links := []navnet.Link[float64]{
		{From: "hub", To: "a", Cost: 1},
		{From: "a", To: "rim", Cost: 1},
		{From: "hub", To: "c", Cost: 1},
		{From: "c", To: "rim", Cost: 0.8},
	}
	n, err := navnet.NewNet(nodes, links, navnet.Options[float64]{Metric: metric})
	require.NoError(t, err)

	return n
}

func TestNewNet_Validation(t *testing.T) {
	nodes := []navnet.Node[float64]{
		{ID: "a", Position: geom.V3[float64](0, 0, 0)},
		{ID: "b", Position: geom.V3[float64](1, 0, 0)},
	}

	_, err := navnet.NewNet[float64](nil, nil, navnet.DefaultOptions[float64]())
	require.ErrorIs(t, err, navnet.ErrNoNodes)

	dup := append(append([]navnet.Node[float64](nil), nodes...),
		navnet.Node[float64]{ID: "a", Position: geom.V3[float64](2, 0, 0)})
	_, err = navnet.NewNet(dup, nil, navnet.DefaultOptions[float64]())
	require.ErrorIs(t, err, navgraph.ErrDuplicateNode)

	_, err = navnet.NewNet(nodes,
		[]navnet.Link[float64]{{From: "a", To: "ghost", Cost: 1}},
		navnet.DefaultOptions[float64]())
	require.ErrorIs(t, err, navgraph.ErrDanglingEdge)

	_, err = navnet.NewNet(nodes,
		[]navnet.Link[float64]{{From: "a", To: "b", Cost: -1}},
		navnet.DefaultOptions[float64]())
	require.ErrorIs(t, err, navgraph.ErrNegativeCost)
}

func TestNet_FindPath(t *testing.T) {
	for _, metric := range []bool{false, true} {
		n := diamond(t, metric)

		route, err := n.FindPath("hub", "rim", astar.DefaultOptions[float64]())
		require.NoError(t, err)
		require.Equal(t, []string{"hub", "c", "rim"}, route.IDs)
		require.InDelta(t, 1.8, route.Cost, 1e-12)
		require.Len(t, route.Points, 3)
		require.True(t, route.Points[1].SameAs(geom.V3[float64](0.5, -0.5, 0)))
	}
}

func TestNet_FindPath_Directed(t *testing.T) {
	nodes := []navnet.Node[float64]{
		{ID: "a", Position: geom.V3[float64](0, 0, 0)},
		{ID: "b", Position: geom.V3[float64](1, 0, 0)},
	}
	links := []navnet.Link[float64]{{From: "a", To: "b", Cost: 1, Directed: true}}
	n, err := navnet.NewNet(nodes, links, navnet.DefaultOptions[float64]())
	require.NoError(t, err)

	route, err := n.FindPath("a", "b", astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, route.IDs)

	_, err = n.FindPath("b", "a", astar.DefaultOptions[float64]())
	require.ErrorIs(t, err, astar.ErrUnreachable)
}

func TestNet_ClosestNode(t *testing.T) {
	n := diamond(t, false)

	id, err := n.ClosestNode(geom.V3[float64](0.45, -0.45, 0))
	require.NoError(t, err)
	require.Equal(t, "c", id)
}
