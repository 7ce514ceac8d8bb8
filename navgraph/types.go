// Package navgraph defines the weighted connectivity graph every spatial
// adapter builds into and every search runs over.
//
// A Graph owns immutable Nodes (identifier plus geometric payload) and
// validated Edges (non-negative finite cost, optional portal segment,
// optional direction). Construction-time validation is strict: degenerate
// or inconsistent input fails the mutating call and leaves the graph
// untouched, so a search can never observe a partially corrupt graph.
//
// Errors:
//
//	ErrEmptyNodeID    - node ID is the empty string.
//	ErrDuplicateNode  - node ID already present, or another node sits at
//	                    the same position within the graph tolerance.
//	ErrNodeNotFound   - requested node does not exist.
//	ErrDanglingEdge   - edge references a node the graph does not hold.
//	ErrSelfLoop       - edge connects a node to itself.
//	ErrNegativeCost   - edge cost is negative.
//	ErrNonFiniteCost  - edge cost is NaN or infinite.
//	ErrBadTolerance   - tolerance option is negative or non-finite.
package navgraph

import (
	"errors"

	"github.com/katalvlaran/wayfind/geom"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrEmptyNodeID indicates a node with an empty identifier.
	ErrEmptyNodeID = errors.New("navgraph: node ID is empty")

	// ErrDuplicateNode indicates an ID collision or two nodes closer than
	// the graph tolerance.
	ErrDuplicateNode = errors.New("navgraph: duplicate node")

	// ErrNodeNotFound indicates an operation referenced a missing node.
	ErrNodeNotFound = errors.New("navgraph: node not found")

	// ErrDanglingEdge indicates an edge endpoint that is not in the graph.
	ErrDanglingEdge = errors.New("navgraph: edge references unknown node")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("navgraph: self-loop not allowed")

	// ErrNegativeCost indicates a negative edge cost.
	ErrNegativeCost = errors.New("navgraph: negative edge cost")

	// ErrNonFiniteCost indicates a NaN or infinite edge cost.
	ErrNonFiniteCost = errors.New("navgraph: non-finite edge cost")

	// ErrBadTolerance indicates an invalid tolerance option.
	ErrBadTolerance = errors.New("navgraph: tolerance must be finite and non-negative")
)

// Node is a navigable region at precision S: an opaque identifier, the
// region's representative world position (triangle centroid, cell center,
// or a caller point) and a traversal-cost multiplier. Nodes are immutable
// once added.
type Node[S geom.Scalar] struct {
	// ID uniquely identifies this node within its Graph. Adapters keep IDs
	// stable across rebuilds and snapshots.
	ID string

	// Center is the node's representative world-space position.
	Center geom.Vec3[S]

	// Cost is the traversal-cost multiplier for this region. Zero is
	// treated as the default of 1.
	Cost S
}

// Edge connects two nodes with a traversal cost. For representations with
// continuous interior geometry it also carries the shared portal segment
// the refiner pulls the path through.
type Edge[S geom.Scalar] struct {
	// From and To are the endpoint node IDs.
	From string
	To   string

	// Cost is the non-negative, finite traversal cost From→To.
	Cost S

	// Portal is the shared boundary segment between the two regions, nil
	// when the representation has no continuous geometry (pure grids, nets).
	Portal *geom.Segment[S]

	// Directed marks a one-way link; undirected edges are traversable both
	// ways and reported from both endpoints by Neighbors.
	Directed bool
}

// Option configures a Graph before use.
type Option[S geom.Scalar] func(*Graph[S]) error

// WithTolerance sets the coordinate-deduplication tolerance: two nodes
// whose centers are within tol of each other are rejected as duplicates.
// The default of 0 only rejects exact ID collisions.
func WithTolerance[S geom.Scalar](tol S) Option[S] {
	return func(g *Graph[S]) error {
		if tol < 0 || !geom.Finite(tol) {
			return ErrBadTolerance
		}
		g.tolerance = tol

		return nil
	}
}
