package funnel

import (
	"fmt"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Channel is the ordered portal sequence a path crosses, from the region
// containing the start toward the region containing the end.
type Channel[S geom.Scalar] struct {
	Portals []geom.Segment[S]
}

// ChannelFromPath extracts the portal channel along a node path: for each
// consecutive node pair the connecting edge must exist (ErrBrokenPath)
// and carry portal geometry (ErrMissingPortal). Paths of zero or one node
// yield an empty channel.
func ChannelFromPath[S geom.Scalar](g *navgraph.Graph[S], path []string) (Channel[S], error) {
	if len(path) < 2 {
		return Channel[S]{}, nil
	}
	ch := Channel[S]{Portals: make([]geom.Segment[S], 0, len(path)-1)}
	for i := 0; i+1 < len(path); i++ {
		edges, err := g.Neighbors(path[i])
		if err != nil {
			return Channel[S]{}, fmt.Errorf("funnel: %w", err)
		}
		var hop *navgraph.Edge[S]
		for _, e := range edges {
			if e.To == path[i+1] {
				hop = e

				break
			}
		}
		if hop == nil {
			return Channel[S]{}, fmt.Errorf("%w: %q→%q", ErrBrokenPath, path[i], path[i+1])
		}
		if hop.Portal == nil {
			return Channel[S]{}, fmt.Errorf("%w: %q→%q", ErrMissingPortal, path[i], path[i+1])
		}
		ch.Portals = append(ch.Portals, *hop.Portal)
	}

	return ch, nil
}

// Refine pulls the string from from to to through the channel and returns
// the taut waypoint polyline. Output length never exceeds the length of
// the portal-midpoint chain, and every waypoint lies on a portal endpoint
// (or is one of the two query points), so the polyline stays inside the
// corridor.
//
// Degenerate inputs return directly: an empty channel yields [from, to],
// or a single point when the two coincide.
//
// Complexity: O(P²) worst case over P portals (funnel restarts), O(P)
// typical.
func Refine[S geom.Scalar](ch Channel[S], from, to geom.Vec3[S]) []geom.Vec3[S] {
	if len(ch.Portals) == 0 {
		if from.SameAs(to) {
			return []geom.Vec3[S]{from}
		}

		return []geom.Vec3[S]{from, to}
	}

	left, right := orient(ch, from, to)
	n := len(left)

	points := []geom.Vec3[S]{from}
	apex, lpt, rpt := from, from, from
	apexIdx, leftIdx, rightIdx := 0, 0, 0

	for i := 0; i < n; i++ {
		pl, pr := left[i], right[i]

		// Tighten the right funnel edge.
		if geom.TriArea2(apex, rpt, pr) <= 0 {
			if apex.SameAs(rpt) || geom.TriArea2(apex, lpt, pr) > 0 {
				rpt = pr
				rightIdx = i
			} else {
				// Right crossed over left: the left point is a waypoint.
				points = append(points, lpt)
				apex = lpt
				apexIdx = leftIdx
				lpt, rpt = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx

				continue
			}
		}

		// Tighten the left funnel edge.
		if geom.TriArea2(apex, lpt, pl) >= 0 {
			if apex.SameAs(lpt) || geom.TriArea2(apex, rpt, pl) < 0 {
				lpt = pl
				leftIdx = i
			} else {
				// Left crossed over right: the right point is a waypoint.
				points = append(points, rpt)
				apex = rpt
				apexIdx = rightIdx
				lpt, rpt = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx

				continue
			}
		}
	}
	points = append(points, to)

	return dedupe(points)
}

// orient splits each portal into left/right endpoints relative to the
// travel direction, and appends the degenerate end portal at to.
func orient[S geom.Scalar](ch Channel[S], from, to geom.Vec3[S]) (left, right []geom.Vec3[S]) {
	n := len(ch.Portals)
	left = make([]geom.Vec3[S], n+1)
	right = make([]geom.Vec3[S], n+1)
	ref := from
	for i, p := range ch.Portals {
		mid := p.Middle()
		if geom.TriArea2(ref, mid, p.A) > geom.TriArea2(ref, mid, p.B) {
			left[i], right[i] = p.B, p.A
		} else {
			left[i], right[i] = p.A, p.B
		}
		ref = mid
	}
	left[n], right[n] = to, to

	return left, right
}

// dedupe drops consecutive coincident waypoints.
func dedupe[S geom.Scalar](points []geom.Vec3[S]) []geom.Vec3[S] {
	out := points[:1]
	for _, p := range points[1:] {
		if !p.SameAs(out[len(out)-1]) {
			out = append(out, p)
		}
	}

	return out
}

// Length sums the segment lengths of a waypoint polyline.
func Length[S geom.Scalar](points []geom.Vec3[S]) S {
	var total S
	for i := 0; i+1 < len(points); i++ {
		total += geom.Distance(points[i], points[i+1])
	}

	return total
}
