// A* over a navgraph: lazy-decrease-key binary heap, closed set, and a
// deterministic tie-break (equal f prefers smaller h, then the entry
// pushed later), so equal-cost graphs always produce the same path.
package astar

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// FindPath runs best-first search from source to target over g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source and target must be non-empty (ErrEmptyEndpoint).
//  3. both endpoints must exist in g (ErrNodeNotFound).
//
// source == target returns a single-node, zero-cost result without
// running search. When Options.Islands is set and the endpoints lie on
// different islands with no bridge joining them, the call fails with
// ErrUnreachable at zero expansions.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func FindPath[S geom.Scalar](g *navgraph.Graph[S], source, target string, opts Options[S]) (Result[S], error) {
	if g == nil {
		return Result[S]{}, ErrNilGraph
	}
	if source == "" || target == "" {
		return Result[S]{}, ErrEmptyEndpoint
	}
	if !g.HasNode(source) {
		return Result[S]{}, fmt.Errorf("%w: source %q", ErrNodeNotFound, source)
	}
	if !g.HasNode(target) {
		return Result[S]{}, fmt.Errorf("%w: target %q", ErrNodeNotFound, target)
	}

	// Trivial path: start and end coincide.
	if source == target {
		return Result[S]{Path: []string{source}}, nil
	}

	// Same-island fast check: refuse cross-island queries before paying
	// for a full frontier sweep.
	if opts.Islands != nil {
		connected, err := opts.Islands.AreConnected(source, target)
		if err != nil {
			return Result[S]{}, fmt.Errorf("astar: island check: %w", err)
		}
		if !connected {
			return Result[S]{}, fmt.Errorf("%w: %q and %q are on different islands", ErrUnreachable, source, target)
		}
	}

	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}

	r := &runner[S]{
		g:      g,
		opts:   opts,
		target: target,
		gScore: map[string]S{source: 0},
		prev:   make(map[string]string),
		closed: make(map[string]bool),
	}
	heap.Init(&r.pq)
	h0 := r.estimate(source)
	heap.Push(&r.pq, &frontierItem[S]{id: source, f: h0, h: h0})

	return r.process()
}

// runner holds the mutable state of one search.
type runner[S geom.Scalar] struct {
	g      *navgraph.Graph[S]
	opts   Options[S]
	target string

	gScore map[string]S
	prev   map[string]string
	closed map[string]bool
	pq     frontierPQ[S]
	seq    uint64
	steps  int
}

// estimate applies the heuristic, or zero when none is configured.
func (r *runner[S]) estimate(id string) S {
	if r.opts.Heuristic == nil {
		return 0
	}

	return r.opts.Heuristic(id)
}

// process is the main loop: settle the cheapest frontier entry, stop on
// the target, relax its neighbors, repeat until the frontier drains.
func (r *runner[S]) process() (Result[S], error) {
	for r.pq.Len() > 0 {
		// Cancellation and budget checks sit between expansions so a
		// rejected query never settles a node past its allowance.
		select {
		case <-r.opts.Ctx.Done():
			return Result[S]{Steps: r.steps}, r.ctxError()
		default:
		}
		if r.opts.StepBudget > 0 && r.steps >= r.opts.StepBudget {
			return Result[S]{Steps: r.steps}, fmt.Errorf("%w: %d expansions", ErrTimeout, r.steps)
		}

		item := heap.Pop(&r.pq).(*frontierItem[S])
		if r.closed[item.id] {
			continue // stale lazy-decrease-key entry
		}
		r.closed[item.id] = true
		r.steps++

		if item.id == r.target {
			return Result[S]{
				Path:  r.reconstruct(),
				Cost:  r.gScore[item.id],
				Steps: r.steps,
			}, nil
		}

		if err := r.relax(item.id); err != nil {
			return Result[S]{Steps: r.steps}, err
		}
	}

	return Result[S]{Steps: r.steps}, fmt.Errorf("%w: no route to %q", ErrUnreachable, r.target)
}

// relax improves tentative costs through every edge leaving u, native
// adjacency first, then active bridges.
func (r *runner[S]) relax(u string) error {
	native, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("astar: neighbors of %q: %w", u, err)
	}
	r.relaxEdges(u, native)
	if r.opts.Islands != nil {
		r.relaxEdges(u, r.opts.Islands.BridgeEdges(u))
	}

	return nil
}

func (r *runner[S]) relaxEdges(u string, edges []*navgraph.Edge[S]) {
	for _, e := range edges {
		if r.closed[e.To] {
			continue
		}
		if r.opts.EdgeFilter != nil && !r.opts.EdgeFilter(e) {
			continue
		}
		cost := e.Cost
		if r.opts.EdgeCost != nil {
			cost = r.opts.EdgeCost(e)
		}
		tentative := r.gScore[u] + cost
		if best, seen := r.gScore[e.To]; seen && tentative >= best {
			continue
		}
		r.gScore[e.To] = tentative
		r.prev[e.To] = u
		h := r.estimate(e.To)
		r.seq++
		heap.Push(&r.pq, &frontierItem[S]{id: e.To, f: tentative + h, h: h, seq: r.seq})
	}
}

// reconstruct walks the predecessor chain back from the target.
func (r *runner[S]) reconstruct() []string {
	var rev []string
	for at := r.target; at != ""; at = r.prev[at] {
		rev = append(rev, at)
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}

	return path
}

func (r *runner[S]) ctxError() error {
	err := r.opts.Ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrCancelled, err)
}

// frontierItem is one heap entry: node, f = g + h, the h part for
// tie-breaking, and a push sequence number for full determinism.
type frontierItem[S geom.Scalar] struct {
	id  string
	f   S
	h   S
	seq uint64
}

// frontierPQ is a min-heap over f with smaller-h, then later-push
// tie-breaks; the lazy-decrease-key pattern leaves stale entries in the
// heap and skips them via the closed set.
type frontierPQ[S geom.Scalar] []*frontierItem[S]

func (pq frontierPQ[S]) Len() int { return len(pq) }

func (pq frontierPQ[S]) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}

	return pq[i].seq > pq[j].seq
}

func (pq frontierPQ[S]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontierPQ[S]) Push(x any) { *pq = append(*pq, x.(*frontierItem[S])) }

func (pq *frontierPQ[S]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
