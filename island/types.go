// Package island partitions a connectivity graph into islands (maximal
// sets of mutually reachable nodes), answers reachability queries, and
// supports temporary bridges between otherwise disconnected islands.
//
// A bridge is a caller-injected edge owned by the Manager, never by the
// underlying representation: adding one merges reachability immediately
// (incremental union), removing one marks the partition dirty and the
// next query triggers a full recompute. That lazy re-split is deliberate;
// incremental component splitting needs dynamic-connectivity machinery
// that buys nothing for a rebuild-on-change world.
//
// Errors (sentinel):
//
//	ErrNilGraph        - Rebuild received a nil graph, or no Rebuild ran yet.
//	ErrNodeNotFound    - a queried node is absent from the graph.
//	ErrInvalidEndpoint - a bridge endpoint is absent from the graph.
//	ErrNegativeCost    - a bridge cost is negative or non-finite.
package island

import (
	"errors"
)

// Sentinel errors for island operations.
var (
	// ErrNilGraph indicates the manager has no graph to work against.
	ErrNilGraph = errors.New("island: graph is nil")

	// ErrNodeNotFound indicates a queried node does not exist.
	ErrNodeNotFound = errors.New("island: node not found")

	// ErrInvalidEndpoint indicates a bridge endpoint does not exist.
	ErrInvalidEndpoint = errors.New("island: bridge endpoint not in graph")

	// ErrNegativeCost indicates a bridge with a negative or non-finite cost.
	ErrNegativeCost = errors.New("island: bridge cost must be finite and non-negative")
)

// ID identifies one island within the current partition. IDs are assigned
// in sorted-node order during a recompute, so they are deterministic for
// a given graph and bridge set, but they are not stable across recomputes.
type ID int

// None is returned alongside errors instead of a valid island ID.
const None ID = -1

// BridgeID identifies a bridge owned by a Manager.
type BridgeID uint64
