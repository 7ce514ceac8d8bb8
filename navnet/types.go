// Package navnet adapts an arbitrary connectivity net - explicit nodes
// and links, no implied geometry - to the wayfind core. Link costs live
// in whatever space the caller defines, so search defaults to the zero
// heuristic; callers whose costs are metric (never below straight-line
// distance) opt in to the distance heuristic for a faster search.
//
// Errors (sentinel):
//
//	ErrNoNodes - empty node list.
//
// Construction also surfaces the navgraph sentinels (duplicate node,
// dangling link, negative cost) wrapped with the offending element.
package navnet

import (
	"errors"

	"github.com/katalvlaran/wayfind/geom"
)

// ErrNoNodes indicates an empty node list.
var ErrNoNodes = errors.New("navnet: node list must be non-empty")

// Node is one addressable point of the net.
type Node[S geom.Scalar] struct {
	// ID is the caller's stable identifier, unique within the net.
	ID string

	// Position anchors the node in space; waypoints and the optional
	// metric heuristic read it.
	Position geom.Vec3[S]
}

// Link connects two nodes. Undirected links are traversable both ways.
type Link[S geom.Scalar] struct {
	From, To string
	Cost     S
	Directed bool
}

// Options tunes net construction.
type Options[S geom.Scalar] struct {
	// Tolerance for coincident-position rejection; zero falls back to
	// the width's default epsilon.
	Tolerance S

	// Metric declares that link costs dominate straight-line distance,
	// enabling the distance heuristic. Leave false for abstract costs.
	Metric bool
}

// DefaultOptions returns net defaults: epsilon tolerance, abstract
// (non-metric) costs.
func DefaultOptions[S geom.Scalar]() Options[S] {
	return Options[S]{}
}

// Route is a found path through the net: the node IDs in travel order,
// their positions, and the accumulated link cost.
type Route[S geom.Scalar] struct {
	IDs    []string
	Points []geom.Vec3[S]
	Cost   S
}
