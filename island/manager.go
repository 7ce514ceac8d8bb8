package island

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Bridge is a temporary connector edge between two islands.
type Bridge[S geom.Scalar] struct {
	ID   BridgeID
	From string
	To   string
	Cost S
}

// Manager owns the island partition of one graph plus the active bridge
// set. Mutating calls (Rebuild, AddBridge, RemoveBridge, Refresh) need
// exclusive access. The query methods never write, so once mutations
// are quiesced and any pending re-split is settled with Refresh, they
// may run concurrently with each other; the engine package enforces
// this with its reader/writer lock.
type Manager[S geom.Scalar] struct {
	g *navgraph.Graph[S]

	// membership maps node ID → island label; parent is a union-find
	// forest over labels so AddBridge can merge islands without touching
	// every member.
	membership map[string]ID
	parent     map[ID]ID

	bridges    map[BridgeID]*Bridge[S]
	nextBridge BridgeID

	// dirty forces a full recompute on the next query; set by
	// RemoveBridge, where an incremental split would be required.
	dirty bool
}

// NewManager creates a Manager and computes the partition of g.
func NewManager[S geom.Scalar](g *navgraph.Graph[S]) (*Manager[S], error) {
	m := &Manager[S]{
		bridges: make(map[BridgeID]*Bridge[S]),
	}
	if err := m.Rebuild(g); err != nil {
		return nil, err
	}

	return m, nil
}

// Rebuild recomputes connected components for g. Call it whenever native
// edges change. Bridges survive a rebuild only while both endpoints still
// exist in the new graph; the rest are dropped silently, matching the
// rebuild-on-change lifecycle.
//
// Complexity: O(V + E) flood fill plus O(V log V) for deterministic labels.
func (m *Manager[S]) Rebuild(g *navgraph.Graph[S]) error {
	if g == nil {
		return ErrNilGraph
	}
	m.g = g
	for id, b := range m.bridges {
		if !g.HasNode(b.From) || !g.HasNode(b.To) {
			delete(m.bridges, id)
		}
	}
	m.recompute()

	return nil
}

// IslandOf returns the island of the given node, recomputing the
// partition first if a bridge removal left it stale.
func (m *Manager[S]) IslandOf(id string) (ID, error) {
	if m.g == nil {
		return None, ErrNilGraph
	}
	if m.dirty {
		m.recompute()
	}
	label, ok := m.membership[id]
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return m.find(label), nil
}

// AreConnected reports whether a and b are mutually reachable under
// current connectivity, active bridges included.
func (m *Manager[S]) AreConnected(a, b string) (bool, error) {
	ia, err := m.IslandOf(a)
	if err != nil {
		return false, err
	}
	ib, err := m.IslandOf(b)
	if err != nil {
		return false, err
	}

	return ia == ib, nil
}

// AddBridge injects a temporary edge between two nodes and merges their
// islands' reachability immediately with an incremental union, no full
// rebuild. Endpoints must exist (ErrInvalidEndpoint) and the cost must be
// finite and non-negative (ErrNegativeCost).
func (m *Manager[S]) AddBridge(a, b string, cost S) (BridgeID, error) {
	if m.g == nil {
		return 0, ErrNilGraph
	}
	if !m.g.HasNode(a) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEndpoint, a)
	}
	if !m.g.HasNode(b) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEndpoint, b)
	}
	if cost < 0 || !geom.Finite(cost) {
		return 0, fmt.Errorf("%w: %v", ErrNegativeCost, cost)
	}
	if m.dirty {
		m.recompute()
	}

	m.nextBridge++
	id := m.nextBridge
	m.bridges[id] = &Bridge[S]{ID: id, From: a, To: b, Cost: cost}
	m.union(m.membership[a], m.membership[b])

	return id, nil
}

// RemoveBridge removes a bridge by ID. Unknown IDs are a no-op, so the
// call is idempotent. Removal may re-split islands, which is resolved
// lazily: the partition is marked dirty and the next query recomputes it.
func (m *Manager[S]) RemoveBridge(id BridgeID) {
	if _, ok := m.bridges[id]; !ok {
		return
	}
	delete(m.bridges, id)
	m.dirty = true
}

// Refresh resolves a pending lazy re-split right away. Hosts that share
// a manager across goroutines call it after RemoveBridge, while they
// still hold their write lock, so later read-side queries never mutate
// the partition.
func (m *Manager[S]) Refresh() {
	if m.dirty {
		m.recompute()
	}
}

// Bridges returns the active bridges sorted by ID.
func (m *Manager[S]) Bridges() []Bridge[S] {
	out := make([]Bridge[S], 0, len(m.bridges))
	for _, b := range m.bridges {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// BridgeEdges returns the bridge edges leaving id, normalized so that
// edge.From == id. Search merges these into native adjacency.
func (m *Manager[S]) BridgeEdges(id string) []*navgraph.Edge[S] {
	var out []*navgraph.Edge[S]
	for _, b := range m.bridges {
		switch id {
		case b.From:
			out = append(out, &navgraph.Edge[S]{From: b.From, To: b.To, Cost: b.Cost})
		case b.To:
			out = append(out, &navgraph.Edge[S]{From: b.To, To: b.From, Cost: b.Cost})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out
}

// recompute flood-fills the graph (bridges included) into fresh island
// labels, assigned in sorted node order for determinism.
func (m *Manager[S]) recompute() {
	ids := m.g.NodeIDs()
	m.membership = make(map[string]ID, len(ids))
	m.parent = make(map[ID]ID)
	m.dirty = false

	// Membership uses weak connectivity: a one-way link still places both
	// endpoints on one island, so adjacency is rebuilt symmetric here
	// rather than through Neighbors.
	adj := make(map[string][]string, len(ids))
	for _, e := range m.g.Edges() {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for _, b := range m.bridges {
		adj[b.From] = append(adj[b.From], b.To)
		adj[b.To] = append(adj[b.To], b.From)
	}

	next := ID(0)
	for _, start := range ids {
		if _, seen := m.membership[start]; seen {
			continue
		}
		label := next
		next++
		m.parent[label] = label

		// BFS flood fill over the symmetric adjacency.
		queue := []string{start}
		m.membership[start] = label
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range adj[queue[qi]] {
				if _, seen := m.membership[v]; !seen {
					m.membership[v] = label
					queue = append(queue, v)
				}
			}
		}
	}
}

// find resolves a label through the union-find forest. It walks the
// chain without compressing it: IslandOf and AreConnected run behind a
// shared read lock in the engine, so the read path must never write.
func (m *Manager[S]) find(label ID) ID {
	for m.parent[label] != label {
		label = m.parent[label]
	}

	return label
}

// union merges two labels; the smaller root wins so repeated queries stay
// deterministic. Compression happens here, on the write path, so find
// stays read-only.
func (m *Manager[S]) union(a, b ID) {
	ra, rb := m.find(a), m.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	m.parent[rb] = ra
	m.parent[a] = ra
	m.parent[b] = ra
}
