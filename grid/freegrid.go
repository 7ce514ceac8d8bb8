package grid

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/funnel"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// FreeGrid is a sparse set of axis-aligned rectangular cells on the XY
// plane. Cells whose bounds touch within tolerance connect through a
// portal spanning the shared boundary, so paths refine through the
// funnel instead of walking cell centers.
type FreeGrid[S geom.Scalar] struct {
	cells     []FreeCell[S]
	tolerance S
	graph     *navgraph.Graph[S]
}

// NewFreeGrid builds a free grid from explicit cells. Bounds must have
// positive extent on both axes; the list is deep-copied. Adjacency is
// detected pairwise: two cells link iff their rectangles share a
// boundary segment longer than tolerance.
//
// Complexity: O(n²) over the cell count; free grids are sparse by
// construction.
func NewFreeGrid[S geom.Scalar](cells []FreeCell[S], opts FreeOptions[S]) (*FreeGrid[S], error) {
	if len(cells) == 0 {
		return nil, ErrNoCells
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = geom.Eps[S]()
	}

	fg := &FreeGrid[S]{
		cells:     append([]FreeCell[S](nil), cells...),
		tolerance: tol,
	}
	for i := range fg.cells {
		c := &fg.cells[i]
		if c.Max.X-c.Min.X <= tol || c.Max.Y-c.Min.Y <= tol {
			return nil, fmt.Errorf("%w: cell %d", ErrBadBounds, i)
		}
		if c.Cost <= 0 {
			c.Cost = 1
		}
	}

	if err := fg.buildGraph(); err != nil {
		return nil, err
	}

	return fg, nil
}

func (fg *FreeGrid[S]) buildGraph() error {
	g, err := navgraph.NewGraph[S]()
	if err != nil {
		return err
	}
	for i, c := range fg.cells {
		if err = g.AddNode(navgraph.Node[S]{
			ID:     freeCellID(i),
			Center: c.Center(),
			Cost:   c.Cost,
		}); err != nil {
			return err
		}
	}

	for i := 0; i < len(fg.cells); i++ {
		for j := i + 1; j < len(fg.cells); j++ {
			portal, ok := fg.sharedBoundary(i, j)
			if !ok {
				continue
			}
			a, b := fg.cells[i], fg.cells[j]
			w := geom.Distance(a.Center(), b.Center()) * (a.Cost + b.Cost) / 2
			p := portal
			if err = g.AddEdge(navgraph.Edge[S]{
				From:   freeCellID(i),
				To:     freeCellID(j),
				Cost:   w,
				Portal: &p,
			}); err != nil {
				return err
			}
		}
	}
	fg.graph = g

	return nil
}

// sharedBoundary reports the boundary segment two cells share, if any.
// Vertical boundaries are checked first (a's right against b's left and
// vice versa), then horizontal ones.
func (fg *FreeGrid[S]) sharedBoundary(i, j int) (geom.Segment[S], bool) {
	a, b := fg.cells[i], fg.cells[j]
	tol := fg.tolerance

	// Vertical shared edge: touching X sides with overlapping Y spans.
	for _, x := range []S{a.Max.X, a.Min.X} {
		other := b.Min.X
		if x == a.Min.X {
			other = b.Max.X
		}
		if geom.Abs(x-other) > tol {
			continue
		}
		lo := max(a.Min.Y, b.Min.Y)
		hi := min(a.Max.Y, b.Max.Y)
		if hi-lo > tol {
			return geom.Seg(geom.V3(x, lo, a.Min.Z), geom.V3(x, hi, a.Min.Z)), true
		}
	}

	// Horizontal shared edge: touching Y sides with overlapping X spans.
	for _, y := range []S{a.Max.Y, a.Min.Y} {
		other := b.Min.Y
		if y == a.Min.Y {
			other = b.Max.Y
		}
		if geom.Abs(y-other) > tol {
			continue
		}
		lo := max(a.Min.X, b.Min.X)
		hi := min(a.Max.X, b.Max.X)
		if hi-lo > tol {
			return geom.Seg(geom.V3(lo, y, a.Min.Z), geom.V3(hi, y, a.Min.Z)), true
		}
	}

	return geom.Segment[S]{}, false
}

// freeCellID formats the graph node ID of cell i.
func freeCellID(i int) string {
	return strconv.Itoa(i)
}

// Center returns the midpoint of the cell's bounds.
func (c FreeCell[S]) Center() geom.Vec3[S] {
	return c.Min.Lerp(c.Max, 0.5)
}

// contains reports whether p lies inside the cell's XY bounds, within
// tolerance.
func (c FreeCell[S]) contains(p geom.Vec3[S], tol S) bool {
	return p.X >= c.Min.X-tol && p.X <= c.Max.X+tol &&
		p.Y >= c.Min.Y-tol && p.Y <= c.Max.Y+tol
}

// Cells returns the cell list.
func (fg *FreeGrid[S]) Cells() []FreeCell[S] { return fg.cells }

// Graph exposes the built connectivity graph for island managers and
// the engine.
func (fg *FreeGrid[S]) Graph() *navgraph.Graph[S] { return fg.graph }

// CellAt returns the index of the cell containing the world position.
// ok is false when no cell contains it.
func (fg *FreeGrid[S]) CellAt(p geom.Vec3[S]) (int, bool) {
	for i, c := range fg.cells {
		if c.contains(p, fg.tolerance) {
			return i, true
		}
	}

	return 0, false
}

// FindPathCells finds the cheapest cell route between two cell indices.
func (fg *FreeGrid[S]) FindPathCells(from, to int, opts astar.Options[S]) ([]int, S, error) {
	if from < 0 || from >= len(fg.cells) {
		return nil, 0, fmt.Errorf("%w: cell %d", ErrUnwalkable, from)
	}
	if to < 0 || to >= len(fg.cells) {
		return nil, 0, fmt.Errorf("%w: cell %d", ErrUnwalkable, to)
	}
	if opts.Heuristic == nil {
		h, err := astar.StraightLine(fg.graph, freeCellID(to))
		if err != nil {
			return nil, 0, err
		}
		opts.Heuristic = h
	}

	res, err := astar.FindPath(fg.graph, freeCellID(from), freeCellID(to), opts)
	if err != nil {
		return nil, 0, err
	}
	cells := make([]int, len(res.Path))
	for i, id := range res.Path {
		cells[i], _ = strconv.Atoi(id)
	}

	return cells, res.Cost, nil
}

// FindPath finds a funnel-refined waypoint path between two world
// positions. Both positions must lie inside a cell.
func (fg *FreeGrid[S]) FindPath(from, to geom.Vec3[S], opts astar.Options[S]) ([]geom.Vec3[S], error) {
	start, ok := fg.CellAt(from)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnwalkable, from)
	}
	end, ok := fg.CellAt(to)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnwalkable, to)
	}

	if from.SameAs(to) {
		return []geom.Vec3[S]{from}, nil
	}
	if start == end {
		return []geom.Vec3[S]{from, to}, nil
	}

	cells, _, err := fg.FindPathCells(start, end, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = freeCellID(c)
	}
	ch, err := funnel.ChannelFromPath(fg.graph, ids)
	if err != nil {
		return nil, err
	}

	return funnel.Refine(ch, from, to), nil
}
