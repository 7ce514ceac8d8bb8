// Package funnel tightens a node path into the shortest taut polyline
// that stays inside the navigable corridor (string pulling).
//
// A Channel is the ordered sequence of portals (shared boundary segments
// between consecutive regions) that the raw graph path crosses. Refine
// sweeps the funnel across the portals on the horizontal plane: the left
// and right funnel edges narrow with each portal, and whenever a new
// candidate would cross over to the wrong side, the opposite funnel point
// becomes a committed waypoint and the funnel restarts from it.
//
// Errors (sentinel):
//
//	ErrBrokenPath    - consecutive path nodes share no edge.
//	ErrMissingPortal - an edge on the path carries no portal geometry;
//	                   the representation has no continuous interior and
//	                   the refiner does not apply.
package funnel

import "errors"

// Sentinel errors for channel extraction.
var (
	// ErrBrokenPath indicates two consecutive path nodes with no edge
	// between them.
	ErrBrokenPath = errors.New("funnel: consecutive path nodes share no edge")

	// ErrMissingPortal indicates a path edge without portal geometry.
	ErrMissingPortal = errors.New("funnel: path edge carries no portal")
)
