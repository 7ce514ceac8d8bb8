// Package engine bundles a connectivity graph and its island manager
// behind one concurrency-safe facade. Read queries (path search,
// island lookups) run concurrently under a read lock; mutations
// (rebuild, bridge changes) take the write lock and therefore quiesce
// readers first.
package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/geom"
)

// Sentinel errors for planner construction.
var (
	// ErrNilGraph indicates a nil graph passed to the planner.
	ErrNilGraph = errors.New("engine: graph must not be nil")

	// ErrPrecisionMismatch indicates the configured precision does not
	// match the planner's scalar width.
	ErrPrecisionMismatch = errors.New("engine: configured precision does not match scalar width")
)

// Query names one path request by endpoint node IDs.
type Query struct {
	From, To string
}

// QueryResult pairs a query with its outcome; Err carries the search
// sentinel when the query failed.
type QueryResult[S geom.Scalar] struct {
	Query  Query
	Result astar.Result[S]
	Err    error
}

// Option tunes planner construction.
type Option[S geom.Scalar] func(*Planner[S])

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger[S geom.Scalar](log *zap.Logger) Option[S] {
	return func(p *Planner[S]) {
		p.log = log
	}
}

// WithStraightLineHeuristic makes queries default to the straight-line
// distance estimate toward their target. Only opt in when every edge
// cost is at least the distance between its endpoints; on abstract
// graphs whose costs undercut geometry the estimate overshoots and the
// search may return non-cheapest routes. The zero default is optimal
// everywhere.
func WithStraightLineHeuristic[S geom.Scalar]() Option[S] {
	return func(p *Planner[S]) {
		p.spatial = true
	}
}

// WithSearchOptions sets the base search options every query starts
// from (step budget, edge filter); the planner still fills in context,
// heuristic and island guide per query.
func WithSearchOptions[S geom.Scalar](opts astar.Options[S]) Option[S] {
	return func(p *Planner[S]) {
		p.search = opts
	}
}
