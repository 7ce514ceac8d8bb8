package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/config"
	"github.com/katalvlaran/wayfind/engine"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// twoIslands builds a-b and c-d with no connection in between.
func twoIslands(t *testing.T) *navgraph.Graph[float64] {
	t.Helper()
	g, err := navgraph.NewGraph[float64]()
	require.NoError(t, err)
	for id, x := range map[string]float64{"a": 0, "b": 1, "c": 5, "d": 6} {
		require.NoError(t, g.AddNode(navgraph.Node[float64]{ID: id, Center: geom.V3(x, 0, 0)}))
	}
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 1}))
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "c", To: "d", Cost: 1}))

	return g
}

func TestNewPlanner_Validation(t *testing.T) {
	g := twoIslands(t)

	_, err := engine.NewPlanner[float64](nil, config.Default())
	require.ErrorIs(t, err, engine.ErrNilGraph)

	bad := config.Default()
	bad.Precision = "float16"
	_, err = engine.NewPlanner(g, bad)
	require.ErrorIs(t, err, config.ErrBadPrecision)

	narrow := config.Default()
	narrow.Precision = "float32"
	_, err = engine.NewPlanner(g, narrow)
	require.ErrorIs(t, err, engine.ErrPrecisionMismatch)
}

func TestPlanner_FindPathAndBridges(t *testing.T) {
	p, err := engine.NewPlanner(twoIslands(t), config.Default())
	require.NoError(t, err)
	ctx := context.Background()

	res, err := p.FindPath(ctx, engine.Query{From: "a", To: "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, res.Path)

	_, err = p.FindPath(ctx, engine.Query{From: "a", To: "d"})
	require.ErrorIs(t, err, astar.ErrUnreachable)

	connected, err := p.AreConnected("a", "d")
	require.NoError(t, err)
	require.False(t, connected)

	id, err := p.AddBridge("b", "c", 2)
	require.NoError(t, err)

	connected, err = p.AreConnected("a", "d")
	require.NoError(t, err)
	require.True(t, connected)

	res, err = p.FindPath(ctx, engine.Query{From: "a", To: "d"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, res.Path)
	require.InDelta(t, 4.0, res.Cost, 1e-12)

	p.RemoveBridge(id)
	_, err = p.FindPath(ctx, engine.Query{From: "a", To: "d"})
	require.ErrorIs(t, err, astar.ErrUnreachable)

	ia, err := p.IslandOf("a")
	require.NoError(t, err)
	id2, err := p.IslandOf("d")
	require.NoError(t, err)
	require.NotEqual(t, ia, id2)
}

func TestPlanner_FindPaths(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		cfg := config.Default()
		cfg.Parallel = parallel
		cfg.Workers = 4
		p, err := engine.NewPlanner(twoIslands(t), cfg)
		require.NoError(t, err)

		queries := []engine.Query{
			{From: "a", To: "b"},
			{From: "a", To: "d"},
			{From: "c", To: "d"},
			{From: "b", To: "a"},
			{From: "ghost", To: "a"},
		}
		results := p.FindPaths(context.Background(), queries)
		require.Len(t, results, len(queries))

		// Results keep the input order and carry per-query errors.
		require.Equal(t, queries[0], results[0].Query)
		require.NoError(t, results[0].Err)
		require.Equal(t, []string{"a", "b"}, results[0].Result.Path)
		require.ErrorIs(t, results[1].Err, astar.ErrUnreachable)
		require.NoError(t, results[2].Err)
		require.NoError(t, results[3].Err)
		require.ErrorIs(t, results[4].Err, astar.ErrNodeNotFound)
	}
}

func TestPlanner_ParallelQueriesAfterBridge(t *testing.T) {
	cfg := config.Default()
	cfg.Parallel = true
	cfg.Workers = 8
	p, err := engine.NewPlanner(twoIslands(t), cfg)
	require.NoError(t, err)

	_, err = p.AddBridge("b", "c", 2)
	require.NoError(t, err)

	// After a merge the island labels resolve through the union-find
	// forest. A batch of identical cross-island queries hammers that
	// lookup from every worker at once; the resolution must stay
	// read-only so the workers can share the planner's read lock.
	queries := make([]engine.Query, 64)
	for i := range queries {
		queries[i] = engine.Query{From: "a", To: "d"}
	}
	for _, r := range p.FindPaths(context.Background(), queries) {
		require.NoError(t, r.Err)
		require.Equal(t, []string{"a", "b", "c", "d"}, r.Result.Path)
		require.InDelta(t, 4.0, r.Result.Cost, 1e-12)
	}
}

func TestPlanner_AbstractCostsStayOptimal(t *testing.T) {
	g, err := navgraph.NewGraph[float64]()
	require.NoError(t, err)
	for id, pos := range map[string]geom.Vec3[float64]{
		"a": geom.V3[float64](0, 0, 0),
		"b": geom.V3[float64](0, 1, 0),
		"z": geom.V3[float64](10, 0, 0),
	} {
		require.NoError(t, g.AddNode(navgraph.Node[float64]{ID: id, Center: pos}))
	}
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "b", Cost: 1}))
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "b", To: "z", Cost: 1}))
	require.NoError(t, g.AddEdge(navgraph.Edge[float64]{From: "a", To: "z", Cost: 3}))

	// Link costs sit far below the node distances. Without a heuristic
	// the search must still return the cheapest detour, not the direct
	// hop a distance estimate would favor.
	p, err := engine.NewPlanner(g, config.Default())
	require.NoError(t, err)
	res, err := p.FindPath(context.Background(), engine.Query{From: "a", To: "z"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "z"}, res.Path)
	require.InDelta(t, 2.0, res.Cost, 1e-12)

	// A geometry-backed host opts back into the spatial estimate.
	p2, err := engine.NewPlanner(twoIslands(t), config.Default(),
		engine.WithStraightLineHeuristic[float64]())
	require.NoError(t, err)
	res, err = p2.FindPath(context.Background(), engine.Query{From: "a", To: "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, res.Path)
	require.InDelta(t, 1.0, res.Cost, 1e-12)
}

func TestPlanner_Rebuild(t *testing.T) {
	p, err := engine.NewPlanner(twoIslands(t), config.Default())
	require.NoError(t, err)

	require.ErrorIs(t, p.Rebuild(nil), engine.ErrNilGraph)

	// The rebuilt graph joins the islands natively.
	joined := twoIslands(t)
	require.NoError(t, joined.AddEdge(navgraph.Edge[float64]{From: "b", To: "c", Cost: 4}))
	require.NoError(t, p.Rebuild(joined))

	res, err := p.FindPath(context.Background(), engine.Query{From: "a", To: "d"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, res.Path)
	require.InDelta(t, 6.0, res.Cost, 1e-12)
}

func TestPlanner_SearchOptions(t *testing.T) {
	base := astar.DefaultOptions[float64]()
	base.StepBudget = 1
	p, err := engine.NewPlanner(twoIslands(t), config.Default(),
		engine.WithSearchOptions(base))
	require.NoError(t, err)

	// One expansion is not enough for a two-hop route.
	_, err = p.AddBridge("b", "c", 2)
	require.NoError(t, err)
	_, err = p.FindPath(context.Background(), engine.Query{From: "a", To: "d"})
	require.ErrorIs(t, err, astar.ErrTimeout)
}
