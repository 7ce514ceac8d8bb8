package geom

// Vec3 is a 3-component vector at precision S. wayfind treats X,Y as the
// horizontal ground plane and Z as elevation.
type Vec3[S Scalar] struct {
	X, Y, Z S
}

// V3 constructs a Vec3 from its components.
func V3[S Scalar](x, y, z S) Vec3[S] {
	return Vec3[S]{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3[S]) Add(o Vec3[S]) Vec3[S] {
	return Vec3[S]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3[S]) Sub(o Vec3[S]) Vec3[S] {
	return Vec3[S]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by scalar k.
func (v Vec3[S]) Scale(k S) Vec3[S] {
	return Vec3[S]{v.X * k, v.Y * k, v.Z * k}
}

// Dot returns the dot product v · o.
func (v Vec3[S]) Dot(o Vec3[S]) S {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3[S]) Cross(o Vec3[S]) Vec3[S] {
	return Vec3[S]{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// SqrMagnitude returns |v|².
func (v Vec3[S]) SqrMagnitude() S {
	return v.Dot(v)
}

// Magnitude returns |v|.
func (v Vec3[S]) Magnitude() S {
	return Sqrt(v.SqrMagnitude())
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3[S]) Normalize() Vec3[S] {
	m := v.Magnitude()
	if m <= Eps[S]() {
		return Vec3[S]{}
	}

	return v.Scale(1 / m)
}

// Lerp linearly interpolates from v to o by factor t (unclamped).
func (v Vec3[S]) Lerp(o Vec3[S], t S) Vec3[S] {
	return v.Add(o.Sub(v).Scale(t))
}

// SameAs reports whether v and o coincide within the width's zero threshold.
func (v Vec3[S]) SameAs(o Vec3[S]) bool {
	return v.Sub(o).SqrMagnitude() <= Eps[S]()
}

// Project returns the scalar factor t of v projected onto the line
// from→to, such that from + (to-from)·t is the closest point on the
// infinite line. A degenerate line yields t = 0.
func (v Vec3[S]) Project(from, to Vec3[S]) S {
	d := to.Sub(from)
	den := d.Dot(d)
	if den <= Eps[S]() {
		return 0
	}

	return v.Sub(from).Dot(d) / den
}

// Unproject resolves the point at factor t along from→to.
func Unproject[S Scalar](from, to Vec3[S], t S) Vec3[S] {
	return from.Lerp(to, t)
}

// Distance returns |b - a|.
func Distance[S Scalar](a, b Vec3[S]) S {
	return b.Sub(a).Magnitude()
}

// SqrDistance returns |b - a|².
func SqrDistance[S Scalar](a, b Vec3[S]) S {
	return b.Sub(a).SqrMagnitude()
}

// Array returns the vector as a fixed-size array. Together with FromArray
// this is the explicit conversion boundary toward external math-library
// vector types; nothing else about Vec3 leaks out of the package.
func (v Vec3[S]) Array() [3]S {
	return [3]S{v.X, v.Y, v.Z}
}

// FromArray builds a Vec3 from a fixed-size array.
func FromArray[S Scalar](a [3]S) Vec3[S] {
	return Vec3[S]{X: a[0], Y: a[1], Z: a[2]}
}

// Wide converts the vector to float64 components.
func (v Vec3[S]) Wide() Vec3[float64] {
	return Vec3[float64]{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Narrow converts the vector to float32 components, losing precision.
func (v Vec3[S]) Narrow() Vec3[float32] {
	return Vec3[float32]{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
