// Package grid adapts two grid flavors to the wayfind core.
//
// The uniform grid treats a rectangular walkability mask as a graph:
// every walkable cell becomes a node at its world-space center, linked
// to its neighbors by Conn4, Conn8 or caller-supplied offsets. Paths
// walk cell centers; no portal refinement applies.
//
// The free grid handles sparse, variable-sized rectangular cells with
// explicit world bounds. Two cells connect iff their bounds share a
// boundary within tolerance; the shared boundary becomes a portal, so
// paths pull taut through the funnel refiner.
package grid

import (
	"errors"

	"github.com/katalvlaran/wayfind/geom"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a mask with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")

	// ErrBadCellSize indicates a non-positive cell size.
	ErrBadCellSize = errors.New("grid: cell size must be positive")

	// ErrBadOffsets indicates custom connectivity without offsets.
	ErrBadOffsets = errors.New("grid: custom connectivity requires at least one offset")

	// ErrUnwalkable indicates a query endpoint outside the walkable area.
	ErrUnwalkable = errors.New("grid: position is not on a walkable cell")

	// ErrNoCells indicates an empty free-grid cell list.
	ErrNoCells = errors.New("grid: cell list must be non-empty")

	// ErrBadBounds indicates a free-grid cell whose bounds are inverted
	// or degenerate.
	ErrBadBounds = errors.New("grid: cell bounds must have positive extent")
)

// Connectivity selects neighbor connectivity for the uniform grid.
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
	// ConnCustom uses the caller's Options.Offsets.
	ConnCustom
)

// Metric selects the distance measure for edge costs and the search
// heuristic alike, so the heuristic stays admissible under either.
type Metric int

const (
	// Euclidean is straight-line distance.
	Euclidean Metric = iota
	// Manhattan is axis-aligned distance.
	Manhattan
)

// Cell is one uniform-grid cell: coordinates and its traverse-cost
// multiplier.
type Cell[S geom.Scalar] struct {
	X, Y int
	Cost S
}

// Options tunes uniform grid construction.
type Options[S geom.Scalar] struct {
	// Conn chooses 4-, 8-directional or custom connectivity.
	Conn Connectivity

	// Offsets lists neighbor offsets for ConnCustom; ignored otherwise.
	Offsets [][2]int

	// Metric selects the distance measure for costs and heuristic.
	Metric Metric

	// CellSize is the world-space edge length of one cell; zero means 1.
	CellSize S

	// Origin is the world position of cell (0,0)'s minimum corner.
	Origin geom.Vec3[S]

	// Costs optionally gives per-cell traverse multipliers, same shape
	// as the walkability mask; nil means every cell costs 1.
	Costs [][]S
}

// DefaultOptions returns uniform grid defaults: Conn4, Euclidean
// heuristic, unit cells at the world origin.
func DefaultOptions[S geom.Scalar]() Options[S] {
	return Options[S]{}
}

// FreeCell is one sparse cell: an axis-aligned rectangle on the XY
// plane given by its minimum and maximum corners, plus a traverse-cost
// multiplier (zero means 1).
type FreeCell[S geom.Scalar] struct {
	Min, Max geom.Vec3[S]
	Cost     S
}

// FreeOptions tunes free grid construction.
type FreeOptions[S geom.Scalar] struct {
	// Tolerance bounds boundary matching between cells; zero falls back
	// to the width's default epsilon.
	Tolerance S
}
