package island

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// MemberSnapshot records one node's island label.
type MemberSnapshot struct {
	Node   string `yaml:"node"`
	Island ID     `yaml:"island"`
}

// BridgeSnapshot is the serialized form of a Bridge.
type BridgeSnapshot[S geom.Scalar] struct {
	ID   BridgeID `yaml:"id"`
	From string   `yaml:"from"`
	To   string   `yaml:"to"`
	Cost S        `yaml:"cost"`
}

// Snapshot is a deterministic image of the partition and bridge set:
// members sorted by node ID, bridges sorted by bridge ID.
type Snapshot[S geom.Scalar] struct {
	Members []MemberSnapshot    `yaml:"members"`
	Bridges []BridgeSnapshot[S] `yaml:"bridges"`
}

// Snapshot captures the partition and bridge set. It always recomputes
// first: incremental unions leave sparse labels behind, and recomputing
// normalizes them to the dense flood-fill labeling FromSnapshot verifies
// against.
func (m *Manager[S]) Snapshot() Snapshot[S] {
	m.recompute()
	snap := Snapshot[S]{
		Members: make([]MemberSnapshot, 0, len(m.membership)),
		Bridges: make([]BridgeSnapshot[S], 0, len(m.bridges)),
	}
	for node, label := range m.membership {
		snap.Members = append(snap.Members, MemberSnapshot{Node: node, Island: m.find(label)})
	}
	sort.Slice(snap.Members, func(i, j int) bool { return snap.Members[i].Node < snap.Members[j].Node })
	for _, b := range m.Bridges() {
		snap.Bridges = append(snap.Bridges, BridgeSnapshot[S]{ID: b.ID, From: b.From, To: b.To, Cost: b.Cost})
	}

	return snap
}

// FromSnapshot restores a Manager over g from a snapshot: bridges are
// re-validated against g and the partition is recomputed, then checked
// against the recorded membership: a snapshot that disagrees with the
// graph's actual connectivity is rejected rather than trusted.
func FromSnapshot[S geom.Scalar](g *navgraph.Graph[S], snap Snapshot[S]) (*Manager[S], error) {
	m := &Manager[S]{
		bridges: make(map[BridgeID]*Bridge[S]),
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	m.g = g
	for _, bs := range snap.Bridges {
		if !g.HasNode(bs.From) || !g.HasNode(bs.To) {
			return nil, fmt.Errorf("%w: bridge %d (%s→%s)", ErrInvalidEndpoint, bs.ID, bs.From, bs.To)
		}
		if bs.Cost < 0 || !geom.Finite(bs.Cost) {
			return nil, fmt.Errorf("%w: bridge %d", ErrNegativeCost, bs.ID)
		}
		m.bridges[bs.ID] = &Bridge[S]{ID: bs.ID, From: bs.From, To: bs.To, Cost: bs.Cost}
		if bs.ID > m.nextBridge {
			m.nextBridge = bs.ID
		}
	}
	m.recompute()

	for _, ms := range snap.Members {
		label, ok := m.membership[ms.Node]
		if !ok {
			return nil, fmt.Errorf("island: snapshot member %q not in graph: %w", ms.Node, ErrNodeNotFound)
		}
		if m.find(label) != ms.Island {
			return nil, fmt.Errorf("island: snapshot membership for %q disagrees with graph connectivity", ms.Node)
		}
	}

	return m, nil
}

// Encode renders the snapshot as YAML with stable field order.
func (s Snapshot[S]) Encode() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeSnapshot parses a YAML snapshot produced by Encode.
func DecodeSnapshot[S geom.Scalar](data []byte) (Snapshot[S], error) {
	var snap Snapshot[S]
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot[S]{}, fmt.Errorf("island: decode snapshot: %w", err)
	}

	return snap, nil
}
