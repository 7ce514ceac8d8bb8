package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/grid"
	"github.com/katalvlaran/wayfind/island"
)

func TestParseMask(t *testing.T) {
	mask := grid.ParseMask([]string{
		".#",
		"..",
	})
	require.Equal(t, [][]bool{{true, false}, {true, true}}, mask)
}

func TestNewGrid_Validation(t *testing.T) {
	cases := []struct {
		name string
		mask [][]bool
		opts grid.Options[float64]
		want error
	}{
		{"empty", nil, grid.DefaultOptions[float64](), grid.ErrEmptyGrid},
		{"empty row", [][]bool{{}}, grid.DefaultOptions[float64](), grid.ErrEmptyGrid},
		{
			"non-rectangular",
			[][]bool{{true, true}, {true}},
			grid.DefaultOptions[float64](),
			grid.ErrNonRectangular,
		},
		{
			"costs shape mismatch",
			[][]bool{{true, true}},
			grid.Options[float64]{Costs: [][]float64{{1}}},
			grid.ErrNonRectangular,
		},
		{
			"custom without offsets",
			[][]bool{{true, true}},
			grid.Options[float64]{Conn: grid.ConnCustom},
			grid.ErrBadOffsets,
		},
		{
			"negative cell size",
			[][]bool{{true, true}},
			grid.Options[float64]{CellSize: -1},
			grid.ErrBadCellSize,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.NewGrid(tc.mask, tc.opts)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGrid_CellGeometry(t *testing.T) {
	g, err := grid.NewGrid(grid.ParseMask([]string{"..", ".."}), grid.Options[float64]{
		CellSize: 2,
		Origin:   geom.V3[float64](10, 20, 0),
	})
	require.NoError(t, err)

	require.True(t, g.CellCenter(0, 0).SameAs(geom.V3[float64](11, 21, 0)))
	require.True(t, g.CellCenter(1, 1).SameAs(geom.V3[float64](13, 23, 0)))

	x, y, ok := g.CellAt(geom.V3[float64](12.5, 22.5, 0))
	require.True(t, ok)
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)

	_, _, ok = g.CellAt(geom.V3[float64](9, 20, 0))
	require.False(t, ok)
	_, _, ok = g.CellAt(geom.V3[float64](15, 21, 0))
	require.False(t, ok)
}

func TestGrid_FindPathAroundObstacle(t *testing.T) {
	mask := grid.ParseMask([]string{
		"...",
		".#.",
		"...",
	})

	// Conn4 must walk around the blocked center: 4 steps.
	g4, err := grid.NewGrid(mask, grid.DefaultOptions[float64]())
	require.NoError(t, err)
	cells, cost, err := g4.FindPathCells(0, 1, 2, 1, astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Len(t, cells, 5)
	require.InDelta(t, 4.0, cost, 1e-9)
	for _, c := range cells {
		require.True(t, g4.Walkable(c.X, c.Y))
	}

	// Conn8 cuts the corners diagonally.
	g8, err := grid.NewGrid(mask, grid.Options[float64]{Conn: grid.Conn8})
	require.NoError(t, err)
	_, cost, err = g8.FindPathCells(0, 1, 2, 1, astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.InDelta(t, 2.8284271, cost, 1e-6)
}

func TestGrid_ManhattanMetric(t *testing.T) {
	g, err := grid.NewGrid(grid.ParseMask([]string{"....", "...."}),
		grid.Options[float64]{Metric: grid.Manhattan})
	require.NoError(t, err)

	cells, cost, err := g.FindPathCells(0, 0, 3, 1, astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Len(t, cells, 5)
	require.InDelta(t, 4.0, cost, 1e-9)
}

func TestGrid_CostMultipliers(t *testing.T) {
	// Two-lane corridor; the top middle cell is expensive, so the route
	// dips through the bottom lane.
	mask := grid.ParseMask([]string{"...", "..."})
	costs := [][]float64{
		{1, 10, 1},
		{1, 1, 1},
	}
	g, err := grid.NewGrid(mask, grid.Options[float64]{Costs: costs})
	require.NoError(t, err)

	cells, _, err := g.FindPathCells(0, 0, 2, 0, astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Equal(t, []grid.Cell[float64]{
		{X: 0, Y: 0, Cost: 1},
		{X: 0, Y: 1, Cost: 1},
		{X: 1, Y: 1, Cost: 1},
		{X: 2, Y: 1, Cost: 1},
		{X: 2, Y: 0, Cost: 1},
	}, cells)
}

func TestGrid_CustomOffsets(t *testing.T) {
	// A knight-move-only grid: (1,2) jumps.
	g, err := grid.NewGrid(grid.ParseMask([]string{"...", "...", "..."}),
		grid.Options[float64]{
			Conn:    grid.ConnCustom,
			Offsets: [][2]int{{1, 2}, {2, 1}, {-1, 2}, {2, -1}},
		})
	require.NoError(t, err)

	cells, _, err := g.FindPathCells(0, 0, 2, 1, astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Equal(t, 2, len(cells))

	// Offsets are directed: no way back.
	_, _, err = g.FindPathCells(2, 1, 0, 0, astar.DefaultOptions[float64]())
	require.ErrorIs(t, err, astar.ErrUnreachable)
}

func TestGrid_FindPathWorld(t *testing.T) {
	g, err := grid.NewGrid(grid.ParseMask([]string{"..", ".."}), grid.DefaultOptions[float64]())
	require.NoError(t, err)

	points, err := g.FindPath(geom.V3[float64](0.2, 0.2, 0), geom.V3[float64](1.7, 1.7, 0),
		astar.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.True(t, points[0].SameAs(geom.V3[float64](0.5, 0.5, 0)))
	require.True(t, points[len(points)-1].SameAs(geom.V3[float64](1.5, 1.5, 0)))

	_, err = g.FindPath(geom.V3[float64](-5, 0, 0), geom.V3[float64](1.7, 1.7, 0),
		astar.DefaultOptions[float64]())
	require.ErrorIs(t, err, grid.ErrUnwalkable)
}

// Two 2x2 blocks split by a wall: unreachable until a bridge joins
// them, then the path crosses exactly one bridge edge.
func TestGrid_IslandsAndBridge(t *testing.T) {
	g, err := grid.NewGrid(grid.ParseMask([]string{
		"..#..",
		"..#..",
	}), grid.DefaultOptions[float64]())
	require.NoError(t, err)

	mgr, err := island.NewManager(g.Graph())
	require.NoError(t, err)

	opts := astar.DefaultOptions[float64]()
	opts.Islands = mgr
	_, _, err = g.FindPathCells(0, 0, 4, 0, opts)
	require.ErrorIs(t, err, astar.ErrUnreachable)

	_, err = mgr.AddBridge("1,0", "3,0", 5)
	require.NoError(t, err)

	cells, cost, err := g.FindPathCells(0, 0, 4, 0, opts)
	require.NoError(t, err)
	require.Equal(t, []grid.Cell[float64]{
		{X: 0, Y: 0, Cost: 1},
		{X: 1, Y: 0, Cost: 1},
		{X: 3, Y: 0, Cost: 1},
		{X: 4, Y: 0, Cost: 1},
	}, cells)
	require.InDelta(t, 7.0, cost, 1e-9)
}
