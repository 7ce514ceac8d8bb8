// Package geom defines the scalar precision constraint and the vector,
// segment and triangle primitives shared by every wayfind package.
//
// Precision is selected once per graph by instantiating the generic types
// with float32 (narrow) or float64 (wide); the type system forbids mixing
// widths inside a single graph.
package geom

import "math"

// Scalar is the set of real-number widths a navigation graph may use.
// Every generic type in wayfind is parameterized by exactly one Scalar.
type Scalar interface {
	~float32 | ~float64
}

// Eps returns the zero threshold used for degenerate-geometry checks at
// width S: coarse for float32, fine for float64.
func Eps[S Scalar]() S {
	var s S
	if _, narrow := any(s).(float32); narrow {
		return S(1e-5)
	}

	return S(1e-9)
}

// Width reports the precision width name for S: "float32" or "float64".
// Used by configuration validation to match a graph instantiation against
// a declared precision.
func Width[S Scalar]() string {
	var s S
	if _, narrow := any(s).(float32); narrow {
		return "float32"
	}

	return "float64"
}

// Sqrt computes the square root at width S.
func Sqrt[S Scalar](v S) S {
	return S(math.Sqrt(float64(v)))
}

// Abs computes the absolute value at width S.
func Abs[S Scalar](v S) S {
	if v < 0 {
		return -v
	}

	return v
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite[S Scalar](v S) bool {
	f := float64(v)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
