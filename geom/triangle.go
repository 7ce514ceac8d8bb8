package geom

// TriangleArea returns the area of triangle (a, b, c) in 3D.
func TriangleArea[S Scalar](a, b, c Vec3[S]) S {
	ab := b.Sub(a)
	ac := c.Sub(a)

	return ab.Cross(ac).Magnitude() * 0.5
}

// TriangleCenter returns the centroid of triangle (a, b, c).
func TriangleCenter[S Scalar](a, b, c Vec3[S]) Vec3[S] {
	v := a.Add(b).Add(c)

	return Vec3[S]{X: v.X / 3, Y: v.Y / 3, Z: v.Z / 3}
}

// TriangleNormal returns the unit normal of triangle (a, b, c).
// Degenerate triangles yield the zero vector.
func TriangleNormal[S Scalar](a, b, c Vec3[S]) Vec3[S] {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// ClosestPointOnTriangle returns the point of triangle (a, b, c) closest
// to p: the plane projection when it falls inside, otherwise the closest
// point on the nearest edge or corner.
func ClosestPointOnTriangle[S Scalar](p, a, b, c Vec3[S]) Vec3[S] {
	// Corner regions first, expressed through edge projection factors.
	pab := p.Project(a, b)
	pbc := p.Project(b, c)
	pca := p.Project(c, a)
	switch {
	case pca > 1 && pab < 0:
		return a
	case pab > 1 && pbc < 0:
		return b
	case pbc > 1 && pca < 0:
		return c
	}

	n := TriangleNormal(a, b, c)
	if n.SqrMagnitude() <= Eps[S]() {
		// Degenerate triangle: clamp onto one of its edges.
		return Segment[S]{A: a, B: b}.ClosestPoint(p)
	}

	// Edge regions: p lies outside the inward halfplane of an edge.
	if pab >= 0 && pab <= 1 && !sameSideOfEdge(p, a, b, n) {
		return Unproject(a, b, pab)
	}
	if pbc >= 0 && pbc <= 1 && !sameSideOfEdge(p, b, c, n) {
		return Unproject(b, c, pbc)
	}
	if pca >= 0 && pca <= 1 && !sameSideOfEdge(p, c, a, n) {
		return Unproject(c, a, pca)
	}

	// Interior: project onto the triangle plane.
	return p.Sub(n.Scale(p.Sub(a).Dot(n)))
}

// sameSideOfEdge reports whether p lies on the interior side of edge
// from→to for a triangle with normal n.
func sameSideOfEdge[S Scalar](p, from, to, n Vec3[S]) bool {
	inward := n.Cross(to.Sub(from))

	return p.Sub(from).Dot(inward) >= 0
}
