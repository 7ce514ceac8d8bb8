package geom

// Segment is a line segment between two points; adapters use it to carry
// the shared portal between two adjacent navigable regions.
type Segment[S Scalar] struct {
	A, B Vec3[S]
}

// Seg constructs a Segment.
func Seg[S Scalar](a, b Vec3[S]) Segment[S] {
	return Segment[S]{A: a, B: b}
}

// Middle returns the segment midpoint.
func (s Segment[S]) Middle() Vec3[S] {
	return s.A.Add(s.B).Scale(0.5)
}

// Length returns |B - A|.
func (s Segment[S]) Length() S {
	return Distance(s.A, s.B)
}

// ClosestPoint returns the point on the segment closest to p.
func (s Segment[S]) ClosestPoint(p Vec3[S]) Vec3[S] {
	t := p.Project(s.A, s.B)
	if t <= 0 {
		return s.A
	}
	if t >= 1 {
		return s.B
	}

	return Unproject(s.A, s.B, t)
}

// TriArea2 returns the doubled signed area of triangle (a, b, c) projected
// on the horizontal X,Y plane. Positive means c lies to the right of a→b;
// the funnel's side tests are built on this sign.
func TriArea2[S Scalar](a, b, c Vec3[S]) S {
	ax, ay := b.X-a.X, b.Y-a.Y
	bx, by := c.X-a.X, c.Y-a.Y

	return bx*ay - ax*by
}
