// Package wayfind is an in-memory navigation engine: build weighted
// connectivity graphs out of spatial representations, run shortest-path
// search over them, and tighten the result into walkable waypoint polylines.
//
// 🚀 What is wayfind?
//
//	A pure-Go library that brings together:
//		• Core graph primitives: nodes with geometry, validated weighted edges
//		• Spatial adapters: triangulated meshes, uniform grids, sparse free
//		  grids and caller-supplied connectivity nets
//		• Shortest paths: A* with admissible heuristics, step budgets and
//		  deterministic tie-breaking
//		• Path refinement: funnel/string-pulling through shared portals
//		• Islands: connected-component bookkeeping with on-demand bridges
//		• Sessions: reader/writer query discipline with optional parallel
//		  batches
//
// ✨ Why choose wayfind?
//
//   - Admissible by construction – heuristics never overestimate, searches
//     stay optimal
//   - Rock-solid validation – degenerate geometry and negative costs fail
//     the build, never corrupt a search
//   - Deterministic – sorted accessors and stable tie-breaks make results
//     reproducible and snapshots byte-stable
//   - Generic over precision – instantiate a whole graph with float32 or
//     float64, never mix the two
//
// Under the hood, everything is organized per concern:
//
//	geom/     — scalar constraint, vectors, segments, triangle math
//	navgraph/ — connectivity graph, validation, deterministic snapshots
//	astar/    — heuristic best-first search over a navgraph
//	funnel/   — portal channels and string-pulling refinement
//	island/   — connected components, reachability, temporary bridges
//	mesh/     — triangulated navigation mesh adapter
//	navnet/   — arbitrary node/edge net adapter
//	grid/     — uniform and free (sparse) grid adapters
//	engine/   — query planner: locking discipline, parallel batches
//	config/   — explicit process configuration (YAML)
//	logging/  — zap logger setup shared by examples and the engine
//
// Quick ASCII example:
//
//	    ┌──┬──┐
//	    │t0│t2│      a 4-triangle corridor; the funnel collapses the
//	    ├──┼──┤      centroid zig-zag into a straight 2-point path.
//	    │t1│t3│
//	    └──┴──┘
//
// Dive into examples/ for runnable scenarios: mesh corridors, grid islands
// bridged on demand, and abstract net routing.
package wayfind
