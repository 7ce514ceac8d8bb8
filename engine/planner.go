package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/config"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/island"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Planner is the concurrency-safe query session over one graph.
type Planner[S geom.Scalar] struct {
	mu      sync.RWMutex
	g       *navgraph.Graph[S]
	islands *island.Manager[S]
	cfg     config.Config
	search  astar.Options[S]
	spatial bool
	log     *zap.Logger
}

// NewPlanner wraps a built graph in a query session. The configuration
// is validated and its precision must match the scalar width S, so a
// host cannot silently run float64 settings against a float32 engine.
func NewPlanner[S geom.Scalar](g *navgraph.Graph[S], cfg config.Config, opts ...Option[S]) (*Planner[S], error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Precision != geom.Width[S]() {
		return nil, ErrPrecisionMismatch
	}
	islands, err := island.NewManager(g)
	if err != nil {
		return nil, err
	}

	p := &Planner[S]{
		g:       g,
		islands: islands,
		cfg:     cfg,
		search:  astar.DefaultOptions[S](),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log.Info("planner ready",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Bool("parallel", cfg.Parallel),
	)

	return p, nil
}

// FindPath answers one query under the read lock. The island manager
// pre-filters unreachable pairs. With no heuristic configured the
// search degrades to uniform-cost expansion, which stays optimal on
// any graph; hosts whose edge costs are true spatial distances opt
// into the straight-line estimate with WithStraightLineHeuristic.
func (p *Planner[S]) FindPath(ctx context.Context, q Query) (astar.Result[S], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.findPathLocked(ctx, q)
}

func (p *Planner[S]) findPathLocked(ctx context.Context, q Query) (astar.Result[S], error) {
	opts := p.search
	opts.Ctx = ctx
	opts.Islands = p.islands
	if opts.Heuristic == nil && p.spatial {
		// A missing target surfaces through the search's own validation.
		if h, err := astar.StraightLine(p.g, q.To); err == nil {
			opts.Heuristic = h
		}
	}

	started := time.Now()
	res, err := astar.FindPath(p.g, q.From, q.To, opts)
	p.log.Debug("path query",
		zap.String("from", q.From),
		zap.String("to", q.To),
		zap.Int("steps", res.Steps),
		zap.Duration("took", time.Since(started)),
		zap.Error(err),
	)

	return res, err
}

// FindPaths answers a batch of independent queries. With parallel mode
// enabled the batch spreads over a bounded worker pool; otherwise the
// queries run sequentially. Results keep the input order and each
// carries its own error.
func (p *Planner[S]) FindPaths(ctx context.Context, queries []Query) []QueryResult[S] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]QueryResult[S], len(queries))
	run := func(i int) {
		res, err := p.findPathLocked(ctx, queries[i])
		out[i] = QueryResult[S]{Query: queries[i], Result: res, Err: err}
	}

	if !p.cfg.Parallel || len(queries) < 2 {
		for i := range queries {
			run(i)
		}

		return out
	}

	workers := min(p.cfg.Workers, len(queries))
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				run(i)
			}
		}()
	}
	for i := range queries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// Rebuild swaps in a new graph and recomputes the island partition.
// Queries in flight finish against the old graph first.
func (p *Planner[S]) Rebuild(g *navgraph.Graph[S]) error {
	if g == nil {
		return ErrNilGraph
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.islands.Rebuild(g); err != nil {
		return err
	}
	p.g = g
	p.log.Info("graph rebuilt",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
	)

	return nil
}

// AddBridge connects two nodes across islands; subsequent queries may
// traverse it at the given cost.
func (p *Planner[S]) AddBridge(a, b string, cost S) (island.BridgeID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.islands.AddBridge(a, b, cost)
	if err == nil {
		p.log.Info("bridge added",
			zap.Uint64("bridge", uint64(id)),
			zap.String("a", a),
			zap.String("b", b),
		)
	}

	return id, err
}

// RemoveBridge detaches a bridge; unknown IDs are a no-op.
func (p *Planner[S]) RemoveBridge(id island.BridgeID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.islands.RemoveBridge(id)
	// Settle the lazy re-split now, while the write lock is held, so
	// concurrent readers never trigger the recompute themselves.
	p.islands.Refresh()
	p.log.Info("bridge removed", zap.Uint64("bridge", uint64(id)))
}

// AreConnected reports whether two nodes share an island, bridges
// included.
func (p *Planner[S]) AreConnected(a, b string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.islands.AreConnected(a, b)
}

// IslandOf returns the island label of a node.
func (p *Planner[S]) IslandOf(id string) (island.ID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.islands.IslandOf(id)
}

// Graph returns the current graph. Callers must treat it as read-only.
func (p *Planner[S]) Graph() *navgraph.Graph[S] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.g
}
