package navgraph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/wayfind/geom"
)

// Graph is the in-memory connectivity graph at precision S.
//
// Nodes and edges are added during a build pass and read-only afterwards;
// the engine package wraps a Graph in a reader/writer discipline, so the
// graph itself carries no locking. All list accessors return data in a
// deterministic (sorted or insertion) order, which snapshots and search
// tie-breaking rely on.
type Graph[S geom.Scalar] struct {
	tolerance S

	nodes     map[string]*Node[S]
	adjacency map[string][]*Edge[S] // normalized: every stored edge has From == owner
	edges     []*Edge[S]            // canonical edges in insertion order

	// buckets indexes node positions quantized by tolerance for duplicate
	// detection; unused when tolerance is zero.
	buckets map[[3]int64][]string
}

// NewGraph creates an empty Graph with the given options.
// Complexity: O(1).
func NewGraph[S geom.Scalar](opts ...Option[S]) (*Graph[S], error) {
	g := &Graph[S]{
		nodes:     make(map[string]*Node[S]),
		adjacency: make(map[string][]*Edge[S]),
		buckets:   make(map[[3]int64][]string),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Tolerance returns the coordinate-deduplication tolerance.
func (g *Graph[S]) Tolerance() S { return g.tolerance }

// NodeCount returns the number of nodes.
func (g *Graph[S]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of canonical edges (an undirected edge
// counts once).
func (g *Graph[S]) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id exists in the graph.
func (g *Graph[S]) HasNode(id string) bool {
	_, ok := g.nodes[id]

	return ok
}

// Node returns the node with the given id.
func (g *Graph[S]) Node(id string) (*Node[S], error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return n, nil
}

// NodeIDs returns all node IDs in sorted order.
// Complexity: O(V log V).
func (g *Graph[S]) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Edges returns a copy of the canonical edges sorted by (From, To).
// Complexity: O(E log E).
func (g *Graph[S]) Edges() []Edge[S] {
	out := make([]Edge[S], len(g.edges))
	for i, e := range g.edges {
		out[i] = *e
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// Neighbors returns the edges leaving id, each normalized so that
// edge.From == id (undirected edges are mirrored on both endpoints).
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph[S]) Neighbors(id string) ([]*Edge[S], error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return g.adjacency[id], nil
}

// AddNode inserts a node. It fails with ErrEmptyNodeID on a blank ID and
// with ErrDuplicateNode when the ID is taken or another node sits within
// the graph tolerance of the same position. The graph is unchanged on
// failure.
func (g *Graph[S]) AddNode(n Node[S]) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("%w: id %q", ErrDuplicateNode, n.ID)
	}
	if n.Cost == 0 {
		n.Cost = 1
	}
	if g.tolerance > 0 {
		if near, ok := g.nearby(n.Center); ok {
			return fmt.Errorf("%w: %q is within tolerance of %q", ErrDuplicateNode, n.ID, near)
		}
		g.buckets[g.bucketOf(n.Center)] = append(g.buckets[g.bucketOf(n.Center)], n.ID)
	}
	g.nodes[n.ID] = &n

	return nil
}

// AddEdge inserts a validated edge. Validation order:
//  1. both endpoints exist (ErrDanglingEdge),
//  2. no self-loop (ErrSelfLoop),
//  3. cost is finite (ErrNonFiniteCost) and non-negative (ErrNegativeCost).
//
// Undirected edges are mirrored into both adjacency lists. The graph is
// unchanged on failure.
func (g *Graph[S]) AddEdge(e Edge[S]) error {
	if err := g.validateEdge(&e); err != nil {
		return err
	}

	stored := e
	g.edges = append(g.edges, &stored)
	g.adjacency[e.From] = append(g.adjacency[e.From], &stored)
	if !e.Directed {
		mirror := e
		mirror.From, mirror.To = e.To, e.From
		g.adjacency[mirror.From] = append(g.adjacency[mirror.From], &mirror)
	}

	return nil
}

// ValidateEdge checks an edge against this graph without inserting it.
// The island manager uses the same rules before accepting a bridge.
func (g *Graph[S]) ValidateEdge(e Edge[S]) error {
	return g.validateEdge(&e)
}

func (g *Graph[S]) validateEdge(e *Edge[S]) error {
	if !g.HasNode(e.From) {
		return fmt.Errorf("%w: from %q", ErrDanglingEdge, e.From)
	}
	if !g.HasNode(e.To) {
		return fmt.Errorf("%w: to %q", ErrDanglingEdge, e.To)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: %q", ErrSelfLoop, e.From)
	}
	if !geom.Finite(e.Cost) {
		return fmt.Errorf("%w: %s→%s", ErrNonFiniteCost, e.From, e.To)
	}
	if e.Cost < 0 {
		return fmt.Errorf("%w: %s→%s cost=%v", ErrNegativeCost, e.From, e.To, e.Cost)
	}

	return nil
}

// bucketOf quantizes a position by the graph tolerance.
func (g *Graph[S]) bucketOf(p geom.Vec3[S]) [3]int64 {
	t := g.tolerance

	return [3]int64{
		int64(p.X / t),
		int64(p.Y / t),
		int64(p.Z / t),
	}
}

// nearby scans the 27 buckets around p for a node within tolerance.
func (g *Graph[S]) nearby(p geom.Vec3[S]) (string, bool) {
	base := g.bucketOf(p)
	limit := g.tolerance * g.tolerance
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				key := [3]int64{base[0] + dx, base[1] + dy, base[2] + dz}
				for _, id := range g.buckets[key] {
					if geom.SqrDistance(g.nodes[id].Center, p) <= limit {
						return id, true
					}
				}
			}
		}
	}

	return "", false
}
