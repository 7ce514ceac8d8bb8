package mesh

import "github.com/katalvlaran/wayfind/geom"

// PathLength returns the total length of a waypoint path.
func PathLength[S geom.Scalar](path []geom.Vec3[S]) S {
	var total S
	for i := 1; i < len(path); i++ {
		total += geom.Distance(path[i-1], path[i])
	}

	return total
}

// PointOnPath returns the point located at distance s along path,
// measured from the first waypoint. The second result is false when
// the path has fewer than two points or s overshoots its length.
func PointOnPath[S geom.Scalar](path []geom.Vec3[S], s S) (geom.Vec3[S], bool) {
	if len(path) < 2 {
		return geom.Vec3[S]{}, false
	}
	for i := 1; i < len(path); i++ {
		d := geom.Distance(path[i-1], path[i])
		if s <= d {
			return geom.Unproject(path[i-1], path[i], s/d), true
		}
		s -= d
	}

	return geom.Vec3[S]{}, false
}

// ProjectOnPath projects point onto the closest segment of path and
// returns the arc-length position of the projection, shifted by offset
// and clamped into [0, PathLength(path)]. Useful for steering: the
// offset looks ahead of the agent's current position on the path.
func ProjectOnPath[S geom.Scalar](path []geom.Vec3[S], point geom.Vec3[S], offset S) S {
	var p S
	switch {
	case len(path) < 2:
		p = 0
	case len(path) == 2:
		p = geom.Distance(path[0], path[1]) * point.Project(path[0], path[1])
	default:
		var walked, best S
		found := false
		for i := 1; i < len(path); i++ {
			on, along := pointOnSegment(path[i-1], path[i], point)
			sqr := geom.SqrDistance(on, point)
			if !found || sqr < best {
				found, best, p = true, sqr, walked+along
			}
			walked += geom.Distance(path[i-1], path[i])
		}
	}
	p += offset
	if p < 0 {
		return 0
	}
	if total := PathLength(path); p > total {
		return total
	}

	return p
}

// PathTargetPoint combines ProjectOnPath and PointOnPath: it finds the
// steering target at offset ahead of point's projection on path, along
// with its arc-length position.
func PathTargetPoint[S geom.Scalar](path []geom.Vec3[S], point geom.Vec3[S], offset S) (geom.Vec3[S], S, bool) {
	s := ProjectOnPath(path, point, offset)
	target, ok := PointOnPath(path, s)

	return target, s, ok
}

// pointOnSegment clamps point's projection onto the segment and reports
// both the clamped point and its distance from the segment start.
func pointOnSegment[S geom.Scalar](from, to, point geom.Vec3[S]) (geom.Vec3[S], S) {
	d := geom.Distance(from, to)
	p := point.Project(from, to)
	switch {
	case p <= 0:
		return from, 0
	case p >= 1:
		return to, d
	default:
		return geom.Unproject(from, to, p), p * d
	}
}
