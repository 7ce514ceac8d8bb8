// Package astar provides heuristic best-first (A*) shortest-path search
// over a navgraph.Graph.
//
// With the default zero heuristic the search degrades to plain Dijkstra,
// which is the right choice for abstract nets where no admissible spatial
// estimate exists. Geometric adapters pass a straight-line heuristic,
// which never overestimates and keeps results optimal.
//
// Errors (sentinel):
//
//	ErrNilGraph       - the graph pointer is nil.
//	ErrEmptyEndpoint  - the source or target ID is empty.
//	ErrNodeNotFound   - the source or target node is absent.
//	ErrUnreachable    - no path exists; expected and recoverable.
//	ErrTimeout        - step budget or deadline exhausted; caller may retry
//	                    with a relaxed budget.
//	ErrCancelled      - the query context was cancelled.
package astar

import (
	"context"
	"errors"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Sentinel errors returned by FindPath.
var (
	// ErrNilGraph indicates a nil *navgraph.Graph was supplied.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrEmptyEndpoint indicates an empty source or target ID.
	ErrEmptyEndpoint = errors.New("astar: source and target IDs must be non-empty")

	// ErrNodeNotFound indicates the source or target node is not in the graph.
	ErrNodeNotFound = errors.New("astar: endpoint node not found")

	// ErrUnreachable indicates no path exists between source and target.
	// This failure is per-query; graph and island state are unchanged.
	ErrUnreachable = errors.New("astar: target is unreachable")

	// ErrTimeout indicates the step budget or context deadline ran out
	// before the target was settled.
	ErrTimeout = errors.New("astar: search budget exhausted")

	// ErrCancelled indicates the query context was cancelled mid-search.
	ErrCancelled = errors.New("astar: search cancelled")
)

// Heuristic estimates the remaining cost from a node to the target. It
// must be admissible (never overestimate) for the search to stay optimal.
type Heuristic[S geom.Scalar] func(id string) S

// IslandGuide is the slice of the island manager the search consults: a
// same-island fast check before expanding anything, and the temporary
// bridge edges that augment native adjacency. island.Manager implements it.
type IslandGuide[S geom.Scalar] interface {
	// AreConnected reports whether two nodes share an island under the
	// current connectivity, bridges included.
	AreConnected(a, b string) (bool, error)

	// BridgeEdges returns active bridge edges leaving id, normalized so
	// that edge.From == id.
	BridgeEdges(id string) []*navgraph.Edge[S]
}

// Options tunes a single FindPath call. The zero value of every field is
// a valid default; DefaultOptions spells the defaults out.
type Options[S geom.Scalar] struct {
	// Heuristic estimates remaining cost; nil means the zero heuristic
	// (pure Dijkstra ordering).
	Heuristic Heuristic[S]

	// Ctx allows cancellation and deadlines, checked between frontier
	// expansions. nil means context.Background().
	Ctx context.Context

	// StepBudget caps frontier expansions; 0 disables the cap. Exceeding
	// the budget surfaces ErrTimeout.
	StepBudget int

	// Islands, when set, short-circuits cross-island queries to
	// ErrUnreachable without search and merges bridge edges into
	// adjacency during relaxation.
	Islands IslandGuide[S]

	// EdgeFilter, when set, skips edges it returns false for.
	EdgeFilter func(e *navgraph.Edge[S]) bool

	// EdgeCost, when set, overrides the stored edge cost; adapters use it
	// to fold per-region cost multipliers in at query time. Must stay
	// non-negative.
	EdgeCost func(e *navgraph.Edge[S]) S
}

// DefaultOptions returns the zero-heuristic, unbounded defaults.
func DefaultOptions[S geom.Scalar]() Options[S] {
	return Options[S]{
		Ctx: context.Background(),
	}
}

// StraightLine builds the admissible straight-line-distance heuristic
// toward the given target node of g.
func StraightLine[S geom.Scalar](g *navgraph.Graph[S], target string) (Heuristic[S], error) {
	goal, err := g.Node(target)
	if err != nil {
		return nil, err
	}

	return func(id string) S {
		n, nerr := g.Node(id)
		if nerr != nil {
			return 0
		}

		return geom.Distance(n.Center, goal.Center)
	}, nil
}

// Result is the outcome of a search: the node sequence from source to
// target inclusive, its accumulated cost, and the number of frontier
// expansions performed (zero for the trivial path and for the island
// fast-check rejection).
type Result[S geom.Scalar] struct {
	Path  []string
	Cost  S
	Steps int
}
