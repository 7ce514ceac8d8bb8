// Package mesh adapts a triangulated navigation mesh to the wayfind
// core: each triangle becomes a graph node, triangles sharing an edge
// within tolerance are connected through a portal, and queries run
// point-to-point with funnel refinement.
//
// Triangulation itself is out of scope; the caller supplies vertices and
// triangles from an external geometry collaborator.
//
// Errors (sentinel):
//
//	ErrNoGeometry          - empty vertex or triangle list.
//	ErrIndexOutOfBounds    - a triangle references a missing vertex.
//	ErrDegenerateTriangle  - a triangle's area is at or below tolerance.
//	ErrDuplicateVertex     - two vertices coincide within tolerance.
//	ErrTriangleNotFound    - a triangle index is out of range.
package mesh

import (
	"errors"

	"github.com/katalvlaran/wayfind/geom"
)

// Sentinel errors for mesh construction and queries.
var (
	// ErrNoGeometry indicates an empty vertex or triangle list.
	ErrNoGeometry = errors.New("mesh: vertices and triangles must be non-empty")

	// ErrIndexOutOfBounds indicates a triangle vertex index past the
	// vertex list.
	ErrIndexOutOfBounds = errors.New("mesh: triangle vertex index out of bounds")

	// ErrDegenerateTriangle indicates a zero-area triangle (within
	// tolerance).
	ErrDegenerateTriangle = errors.New("mesh: degenerate triangle")

	// ErrDuplicateVertex indicates two vertices within tolerance of each
	// other.
	ErrDuplicateVertex = errors.New("mesh: duplicate vertex")

	// ErrTriangleNotFound indicates a triangle index out of range.
	ErrTriangleNotFound = errors.New("mesh: triangle index out of range")
)

// Triangle lists the three vertex indices of one mesh triangle.
type Triangle struct {
	A, B, C uint32
}

// Tri constructs a Triangle from three indices.
func Tri(a, b, c uint32) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Indices returns the vertex indices in declaration order.
func (t Triangle) Indices() [3]uint32 {
	return [3]uint32{t.A, t.B, t.C}
}

// PathMode selects how FindPath renders the triangle sequence into
// waypoints.
type PathMode int

const (
	// PathSmooth pulls the path taut through portals (funnel); shortest.
	PathSmooth PathMode = iota

	// PathMidpoints walks portal midpoints; cheap and stable.
	PathMidpoints

	// PathNodes walks triangle centroids; the raw graph path.
	PathNodes
)

// CostFunc overrides the default edge cost (centroid distance) between
// two adjacent areas during construction.
type CostFunc[S geom.Scalar] func(a, b Area[S]) S

// Options tunes mesh construction.
type Options[S geom.Scalar] struct {
	// Tolerance bounds coordinate deduplication, degenerate-area
	// rejection, and portal matching. Zero falls back to the width's
	// default epsilon.
	Tolerance S

	// Cost overrides the default centroid-distance edge cost.
	Cost CostFunc[S]
}

// DefaultOptions returns mesh defaults: the width's epsilon tolerance
// and centroid-distance costs.
func DefaultOptions[S geom.Scalar]() Options[S] {
	return Options[S]{}
}

// Area describes one navigable triangle: its index, surface size, cost
// factor, centroid and bounding radius. Mirrors the per-node metadata
// the connectivity graph carries.
type Area[S geom.Scalar] struct {
	// Triangle is the index into the mesh's triangle list.
	Triangle int

	// Size is the triangle's surface area.
	Size S

	// Cost is the traverse-cost factor: big values mark areas that are
	// hard to cross. Defaults to 1.
	Cost S

	// Center is the triangle centroid.
	Center geom.Vec3[S]

	// Radius is the radius of the sphere containing the triangle, with
	// RadiusSqr its squared version for cheap rejection tests.
	Radius    S
	RadiusSqr S
}
