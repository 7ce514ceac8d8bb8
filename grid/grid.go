package grid

import (
	"fmt"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Grid treats a rectangular walkability mask as a graph. It is
// immutable once built.
type Grid[S geom.Scalar] struct {
	width, height int
	walkable      [][]bool
	costs         [][]S
	cellSize      S
	origin        geom.Vec3[S]
	metric        Metric
	offsets       [][2]int
	directed      bool
	graph         *navgraph.Graph[S]
}

// NewGrid constructs a uniform grid from a non-empty, rectangular
// walkability mask. The mask is deep-copied. Every walkable cell
// becomes a node "x,y" at its world-space center; neighbors within the
// chosen connectivity link with an edge costing the center distance
// under the configured metric, scaled by the mean of the two cell
// multipliers.
//
// Custom offsets need not be symmetric; with ConnCustom the edges are
// directed along each offset.
//
// Complexity: O(W×H×d) time and memory.
func NewGrid[S geom.Scalar](walkable [][]bool, opts Options[S]) (*Grid[S], error) {
	if len(walkable) == 0 || len(walkable[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(walkable), len(walkable[0])
	for _, row := range walkable {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	if opts.Costs != nil {
		if len(opts.Costs) != h {
			return nil, ErrNonRectangular
		}
		for _, row := range opts.Costs {
			if len(row) != w {
				return nil, ErrNonRectangular
			}
		}
	}
	if opts.CellSize < 0 {
		return nil, ErrBadCellSize
	}

	g := &Grid[S]{
		width:    w,
		height:   h,
		walkable: make([][]bool, h),
		costs:    make([][]S, h),
		cellSize: opts.CellSize,
		origin:   opts.Origin,
		metric:   opts.Metric,
	}
	if g.cellSize == 0 {
		g.cellSize = 1
	}
	for y := 0; y < h; y++ {
		g.walkable[y] = append([]bool(nil), walkable[y]...)
		g.costs[y] = make([]S, w)
		for x := 0; x < w; x++ {
			g.costs[y][x] = 1
			if opts.Costs != nil && opts.Costs[y][x] > 0 {
				g.costs[y][x] = opts.Costs[y][x]
			}
		}
	}

	switch opts.Conn {
	case Conn8:
		g.offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	case ConnCustom:
		if len(opts.Offsets) == 0 {
			return nil, ErrBadOffsets
		}
		g.offsets = append([][2]int(nil), opts.Offsets...)
		g.directed = true
	default:
		g.offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	if err := g.buildGraph(); err != nil {
		return nil, err
	}

	return g, nil
}

// ParseMask converts rows of '.' (walkable) and '#' (blocked) into a
// walkability mask. Convenient for fixtures and examples.
func ParseMask(rows []string) [][]bool {
	mask := make([][]bool, len(rows))
	for y, row := range rows {
		mask[y] = make([]bool, len(row))
		for x, r := range row {
			mask[y][x] = r == '.'
		}
	}

	return mask
}

func (g *Grid[S]) buildGraph() error {
	gr, err := navgraph.NewGraph[S]()
	if err != nil {
		return err
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.walkable[y][x] {
				continue
			}
			if err = gr.AddNode(navgraph.Node[S]{
				ID:     cellID(x, y),
				Center: g.CellCenter(x, y),
				Cost:   g.costs[y][x],
			}); err != nil {
				return err
			}
		}
	}

	seen := make(map[[4]int]bool)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.walkable[y][x] {
				continue
			}
			for _, d := range g.offsets {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) || !g.walkable[ny][nx] {
					continue
				}
				key := pairOf(x, y, nx, ny, g.directed)
				if seen[key] {
					continue
				}
				seen[key] = true
				w := g.stepCost(x, y, nx, ny)
				w *= (g.costs[y][x] + g.costs[ny][nx]) / 2
				if err = gr.AddEdge(navgraph.Edge[S]{
					From:     cellID(x, y),
					To:       cellID(nx, ny),
					Cost:     w,
					Directed: g.directed,
				}); err != nil {
					return err
				}
			}
		}
	}
	g.graph = gr

	return nil
}

// stepCost measures the move between two cell centers under the
// configured metric.
func (g *Grid[S]) stepCost(x, y, nx, ny int) S {
	a, b := g.CellCenter(x, y), g.CellCenter(nx, ny)
	if g.metric == Manhattan {
		d := b.Sub(a)

		return geom.Abs(d.X) + geom.Abs(d.Y)
	}

	return geom.Distance(a, b)
}

// cellID formats the graph node ID of cell (x,y).
func cellID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// pairOf normalizes an edge key; undirected pairs collapse both
// orientations onto one key.
func pairOf(x, y, nx, ny int, directed bool) [4]int {
	if !directed && (nx < x || (nx == x && ny < y)) {
		x, y, nx, ny = nx, ny, x, y
	}

	return [4]int{x, y, nx, ny}
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (g *Grid[S]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Walkable reports whether (x,y) is inside the grid and walkable.
func (g *Grid[S]) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g.walkable[y][x]
}

// CellCenter returns the world-space center of cell (x,y).
func (g *Grid[S]) CellCenter(x, y int) geom.Vec3[S] {
	return g.origin.Add(geom.V3(
		(S(x)+0.5)*g.cellSize,
		(S(y)+0.5)*g.cellSize,
		0,
	))
}

// CellAt maps a world position to grid coordinates. ok is false when
// the position falls outside the grid.
func (g *Grid[S]) CellAt(p geom.Vec3[S]) (x, y int, ok bool) {
	d := p.Sub(g.origin)
	x, y = int(d.X/g.cellSize), int(d.Y/g.cellSize)
	if d.X < 0 || d.Y < 0 || !g.InBounds(x, y) {
		return 0, 0, false
	}

	return x, y, true
}

// Graph exposes the built connectivity graph for island managers and
// the engine.
func (g *Grid[S]) Graph() *navgraph.Graph[S] { return g.graph }

// FindPathCells finds the cheapest cell route between two coordinates.
func (g *Grid[S]) FindPathCells(fromX, fromY, toX, toY int, opts astar.Options[S]) ([]Cell[S], S, error) {
	if !g.Walkable(fromX, fromY) {
		return nil, 0, fmt.Errorf("%w: (%d,%d)", ErrUnwalkable, fromX, fromY)
	}
	if !g.Walkable(toX, toY) {
		return nil, 0, fmt.Errorf("%w: (%d,%d)", ErrUnwalkable, toX, toY)
	}
	if opts.Heuristic == nil {
		opts.Heuristic = g.heuristic(toX, toY)
	}

	res, err := astar.FindPath(g.graph, cellID(fromX, fromY), cellID(toX, toY), opts)
	if err != nil {
		return nil, 0, err
	}
	cells := make([]Cell[S], len(res.Path))
	for i, id := range res.Path {
		var x, y int
		if _, serr := fmt.Sscanf(id, "%d,%d", &x, &y); serr != nil {
			return nil, 0, serr
		}
		cells[i] = Cell[S]{X: x, Y: y, Cost: g.costs[y][x]}
	}

	return cells, res.Cost, nil
}

// FindPath finds a waypoint path between two world positions. Waypoints
// are the traversed cell centers; no portal refinement applies on a
// uniform grid.
func (g *Grid[S]) FindPath(from, to geom.Vec3[S], opts astar.Options[S]) ([]geom.Vec3[S], error) {
	fx, fy, ok := g.CellAt(from)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnwalkable, from)
	}
	tx, ty, ok := g.CellAt(to)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnwalkable, to)
	}

	cells, _, err := g.FindPathCells(fx, fy, tx, ty, opts)
	if err != nil {
		return nil, err
	}
	points := make([]geom.Vec3[S], len(cells))
	for i, c := range cells {
		points[i] = g.CellCenter(c.X, c.Y)
	}

	return points, nil
}

// heuristic builds the metric-appropriate distance estimate toward the
// target cell. Edge costs use the same metric, so the estimate never
// overestimates by the triangle inequality; cell multipliers below 1
// would break that and remain the caller's concern.
func (g *Grid[S]) heuristic(toX, toY int) astar.Heuristic[S] {
	goal := g.CellCenter(toX, toY)
	if g.metric == Manhattan {
		return func(id string) S {
			n, err := g.graph.Node(id)
			if err != nil {
				return 0
			}
			d := goal.Sub(n.Center)

			return geom.Abs(d.X) + geom.Abs(d.Y)
		}
	}

	return func(id string) S {
		n, err := g.graph.Node(id)
		if err != nil {
			return 0
		}

		return geom.Distance(n.Center, goal)
	}
}
