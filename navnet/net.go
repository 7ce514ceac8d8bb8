package navnet

import (
	"fmt"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Net is a built connectivity net ready for path queries.
type Net[S geom.Scalar] struct {
	graph  *navgraph.Graph[S]
	metric bool
}

// NewNet builds a net from explicit nodes and links. Duplicate IDs,
// coincident positions, dangling link endpoints and negative costs all
// fail the build with the corresponding navgraph sentinel wrapped in
// element context.
func NewNet[S geom.Scalar](nodes []Node[S], links []Link[S], opts Options[S]) (*Net[S], error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = geom.Eps[S]()
	}

	g, err := navgraph.NewGraph(navgraph.WithTolerance(tol))
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err = g.AddNode(navgraph.Node[S]{ID: n.ID, Center: n.Position}); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, l := range links {
		if err = g.AddEdge(navgraph.Edge[S]{
			From:     l.From,
			To:       l.To,
			Cost:     l.Cost,
			Directed: l.Directed,
		}); err != nil {
			return nil, fmt.Errorf("link %q-%q: %w", l.From, l.To, err)
		}
	}

	return &Net[S]{graph: g, metric: opts.Metric}, nil
}

// Graph exposes the underlying connectivity graph for island managers
// and the engine.
func (n *Net[S]) Graph() *navgraph.Graph[S] { return n.graph }

// FindPath finds the cheapest route between two node IDs. The heuristic
// defaults to zero unless the net was built metric, in which case
// straight-line distance guides the search.
func (n *Net[S]) FindPath(from, to string, opts astar.Options[S]) (Route[S], error) {
	if opts.Heuristic == nil && n.metric {
		h, err := astar.StraightLine(n.graph, to)
		if err != nil {
			return Route[S]{}, err
		}
		opts.Heuristic = h
	}

	res, err := astar.FindPath(n.graph, from, to, opts)
	if err != nil {
		return Route[S]{}, err
	}

	points := make([]geom.Vec3[S], len(res.Path))
	for i, id := range res.Path {
		node, nerr := n.graph.Node(id)
		if nerr != nil {
			return Route[S]{}, nerr
		}
		points[i] = node.Center
	}

	return Route[S]{IDs: res.Path, Points: points, Cost: res.Cost}, nil
}

// ClosestNode returns the ID of the node nearest to point.
func (n *Net[S]) ClosestNode(point geom.Vec3[S]) (string, error) {
	if n.graph.NodeCount() == 0 {
		return "", ErrNoNodes
	}
	var best string
	var bestSqr S
	for i, id := range n.graph.NodeIDs() {
		node, err := n.graph.Node(id)
		if err != nil {
			return "", err
		}
		sqr := geom.SqrDistance(point, node.Center)
		if i == 0 || sqr < bestSqr {
			best, bestSqr = id, sqr
		}
	}

	return best, nil
}
