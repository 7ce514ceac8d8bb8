package mesh

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/wayfind/astar"
	"github.com/katalvlaran/wayfind/funnel"
	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// ClosestTriangle returns the index of the triangle closest to point.
// Rejection by bounding radius keeps the scan cheap on large meshes.
func (m *Mesh[S]) ClosestTriangle(point geom.Vec3[S]) int {
	best := 0
	var bestDist S
	for i := range m.triangles {
		a, b, c := m.corners(i)
		if i > 0 {
			// Skip triangles whose bounding sphere cannot beat the best.
			toCenter := geom.SqrDistance(point, m.areas[i].Center)
			reach := bestDist + m.areas[i].Radius
			if toCenter > reach*reach {
				continue
			}
		}
		d := geom.Distance(point, geom.ClosestPointOnTriangle(point, a, b, c))
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// ClosestPoint projects point onto the navigable surface: the closest
// point of the closest triangle.
func (m *Mesh[S]) ClosestPoint(point geom.Vec3[S]) geom.Vec3[S] {
	a, b, c := m.corners(m.ClosestTriangle(point))

	return geom.ClosestPointOnTriangle(point, a, b, c)
}

// FindPathTriangles runs the graph search between two triangle indices
// and returns the triangle sequence with its accumulated cost. Area cost
// factors multiply the edge costs at query time. The search runs with
// no heuristic by default: a cost factor below 1 shrinks edge costs
// under centroid distance, so a distance estimate could steer the
// search past the cheapest sequence.
func (m *Mesh[S]) FindPathTriangles(from, to int, opts astar.Options[S]) ([]int, S, error) {
	if from < 0 || from >= len(m.triangles) {
		return nil, 0, fmt.Errorf("%w: %d", ErrTriangleNotFound, from)
	}
	if to < 0 || to >= len(m.triangles) {
		return nil, 0, fmt.Errorf("%w: %d", ErrTriangleNotFound, to)
	}

	if opts.EdgeCost == nil {
		opts.EdgeCost = func(e *navgraph.Edge[S]) S {
			a, _ := strconv.Atoi(e.From)
			b, _ := strconv.Atoi(e.To)

			return e.Cost * m.areas[a].Cost * m.areas[b].Cost
		}
	}

	res, err := astar.FindPath(m.graph, triangleID(from), triangleID(to), opts)
	if err != nil {
		return nil, 0, err
	}
	tris := make([]int, len(res.Path))
	for i, id := range res.Path {
		tris[i], _ = strconv.Atoi(id)
	}

	return tris, res.Cost, nil
}

// FindPath finds a walkable waypoint path between two world points.
// Both points snap to the navigable surface first. Rendering follows
// mode: funnel-refined (PathSmooth), portal midpoints (PathMidpoints)
// or raw centroids (PathNodes).
//
// Coincident endpoints yield a single zero-length waypoint; endpoints
// in the same triangle yield the direct two-point segment.
func (m *Mesh[S]) FindPath(from, to geom.Vec3[S], mode PathMode, opts astar.Options[S]) ([]geom.Vec3[S], error) {
	start := m.ClosestTriangle(from)
	end := m.ClosestTriangle(to)
	a, b, c := m.corners(start)
	fromOn := geom.ClosestPointOnTriangle(from, a, b, c)
	a, b, c = m.corners(end)
	toOn := geom.ClosestPointOnTriangle(to, a, b, c)

	if fromOn.SameAs(toOn) {
		return []geom.Vec3[S]{fromOn}, nil
	}
	if start == end {
		return []geom.Vec3[S]{fromOn, toOn}, nil
	}

	tris, _, err := m.FindPathTriangles(start, end, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(tris))
	for i, t := range tris {
		ids[i] = triangleID(t)
	}
	ch, err := funnel.ChannelFromPath(m.graph, ids)
	if err != nil {
		return nil, err
	}

	switch mode {
	case PathMidpoints:
		points := make([]geom.Vec3[S], 0, len(ch.Portals)+2)
		points = append(points, fromOn)
		for _, p := range ch.Portals {
			points = append(points, p.Middle())
		}

		return append(points, toOn), nil
	case PathNodes:
		points := make([]geom.Vec3[S], 0, len(tris)+2)
		points = append(points, fromOn)
		for _, t := range tris {
			points = append(points, m.areas[t].Center)
		}

		return append(points, toOn), nil
	default:
		return funnel.Refine(ch, fromOn, toOn), nil
	}
}
