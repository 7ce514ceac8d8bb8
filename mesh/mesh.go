package mesh

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/wayfind/geom"
	"github.com/katalvlaran/wayfind/navgraph"
)

// Mesh is a built navigation mesh: immutable geometry, per-triangle
// areas, and the derived connectivity graph with portal edges.
type Mesh[S geom.Scalar] struct {
	vertices  []geom.Vec3[S]
	triangles []Triangle
	areas     []Area[S]
	normals   []geom.Vec3[S]
	graph     *navgraph.Graph[S]
	tolerance S
	origin    geom.Vec3[S]

	// hardEdges lists, per triangle, the boundary edges shared with no
	// neighbor; callers use them for wall avoidance and debug drawing.
	hardEdges map[int][]geom.Segment[S]
}

// NewMesh builds a navigation mesh from a vertex list and triangle list.
//
// Validation (in order, all fatal; no partial mesh is returned):
//  1. both lists non-empty (ErrNoGeometry),
//  2. no two vertices within tolerance (ErrDuplicateVertex),
//  3. every triangle index inside the vertex list (ErrIndexOutOfBounds),
//  4. no triangle with area ≤ tolerance (ErrDegenerateTriangle).
//
// Two triangles are linked iff they share a vertex pair; the shared edge
// becomes the portal and the edge cost defaults to the centroid
// distance (Options.Cost overrides it).
//
// Complexity: O(V + T) expected; duplicate detection buckets vertices by
// tolerance instead of comparing all pairs.
func NewMesh[S geom.Scalar](vertices []geom.Vec3[S], triangles []Triangle, opts Options[S]) (*Mesh[S], error) {
	if len(vertices) == 0 || len(triangles) == 0 {
		return nil, ErrNoGeometry
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = geom.Eps[S]()
	}

	m := &Mesh[S]{
		vertices:  append([]geom.Vec3[S](nil), vertices...),
		triangles: append([]Triangle(nil), triangles...),
		areas:     make([]Area[S], len(triangles)),
		normals:   make([]geom.Vec3[S], len(triangles)),
		tolerance: tol,
		hardEdges: make(map[int][]geom.Segment[S]),
	}

	// Mesh origin: the vertex centroid; Scale pivots around it by default.
	var sum geom.Vec3[S]
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	m.origin = sum.Scale(1 / S(len(vertices)))

	if err := m.dedupeVertices(); err != nil {
		return nil, err
	}
	if err := m.buildAreas(); err != nil {
		return nil, err
	}
	if err := m.buildGraph(opts.Cost); err != nil {
		return nil, err
	}

	return m, nil
}

// buildAreas validates indices and geometry and fills per-triangle
// metadata.
func (m *Mesh[S]) buildAreas() error {
	for i, t := range m.triangles {
		for c, idx := range t.Indices() {
			if int(idx) >= len(m.vertices) {
				return fmt.Errorf("%w: triangle %d corner %d index %d", ErrIndexOutOfBounds, i, c, idx)
			}
		}
		a, b, c := m.corners(i)
		size := geom.TriangleArea(a, b, c)
		if size <= m.tolerance {
			return fmt.Errorf("%w: triangle %d area=%v", ErrDegenerateTriangle, i, size)
		}
		center := geom.TriangleCenter(a, b, c)
		radius := max(
			geom.Distance(a, center),
			geom.Distance(b, center),
			geom.Distance(c, center),
		)
		m.areas[i] = Area[S]{
			Triangle:  i,
			Size:      size,
			Cost:      1,
			Center:    center,
			Radius:    radius,
			RadiusSqr: radius * radius,
		}
		m.normals[i] = geom.TriangleNormal(a, b, c)
	}

	return nil
}

// dedupeVertices rejects vertices that coincide within tolerance. A
// throwaway graph with the same tolerance does the bucketing: a second
// vertex landing in an occupied bucket fails registration.
func (m *Mesh[S]) dedupeVertices() error {
	probe, err := navgraph.NewGraph(navgraph.WithTolerance(m.tolerance))
	if err != nil {
		return err
	}
	for i, v := range m.vertices {
		if err = probe.AddNode(navgraph.Node[S]{ID: "v" + strconv.Itoa(i), Center: v}); err != nil {
			return fmt.Errorf("%w: vertex %d", ErrDuplicateVertex, i)
		}
	}

	return nil
}

// buildGraph constructs the connectivity graph: triangle nodes, shared
// vertex-pair detection, portal edges.
func (m *Mesh[S]) buildGraph(cost CostFunc[S]) error {
	g, err := navgraph.NewGraph[S]()
	if err != nil {
		return err
	}
	for i := range m.triangles {
		if err = g.AddNode(navgraph.Node[S]{
			ID:     triangleID(i),
			Center: m.areas[i].Center,
			Cost:   1,
		}); err != nil {
			return err
		}
	}

	// Vertex-pair → adjacent triangles. Pairs are keyed order-independent
	// so winding does not matter.
	shared := make(map[[2]uint32][]int, len(m.triangles)*3)
	for i, t := range m.triangles {
		for _, pair := range [3][2]uint32{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			shared[pairKey(pair[0], pair[1])] = append(shared[pairKey(pair[0], pair[1])], i)
		}
	}

	// Deterministic edge insertion order.
	pairs := make([][2]uint32, 0, len(shared))
	for key := range shared {
		pairs = append(pairs, key)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}

		return pairs[i][1] < pairs[j][1]
	})

	for _, key := range pairs {
		tris := shared[key]
		if len(tris) < 2 {
			// Boundary edge: record as a hard edge of its only triangle.
			t := tris[0]
			m.hardEdges[t] = append(m.hardEdges[t], geom.Seg(m.vertices[key[0]], m.vertices[key[1]]))

			continue
		}
		portal := geom.Seg(m.vertices[key[0]], m.vertices[key[1]])
		for x := 0; x < len(tris); x++ {
			for y := x + 1; y < len(tris); y++ {
				a, b := m.areas[tris[x]], m.areas[tris[y]]
				w := geom.Distance(a.Center, b.Center)
				if cost != nil {
					w = cost(a, b)
				}
				p := portal
				if err = g.AddEdge(navgraph.Edge[S]{
					From:   triangleID(tris[x]),
					To:     triangleID(tris[y]),
					Cost:   w,
					Portal: &p,
				}); err != nil {
					return err
				}
			}
		}
	}
	m.graph = g

	return nil
}

// corners returns the three vertex positions of triangle i.
func (m *Mesh[S]) corners(i int) (a, b, c geom.Vec3[S]) {
	t := m.triangles[i]

	return m.vertices[t.A], m.vertices[t.B], m.vertices[t.C]
}

// pairKey normalizes a vertex pair into an order-independent map key.
func pairKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}

	return [2]uint32{a, b}
}

// triangleID formats the graph node ID of triangle i.
func triangleID(i int) string {
	return strconv.Itoa(i)
}

// Vertices returns the mesh vertex positions.
func (m *Mesh[S]) Vertices() []geom.Vec3[S] { return m.vertices }

// Triangles returns the mesh triangle list.
func (m *Mesh[S]) Triangles() []Triangle { return m.triangles }

// Areas returns the per-triangle area descriptors.
func (m *Mesh[S]) Areas() []Area[S] { return m.areas }

// Origin returns the mesh origin (vertex centroid).
func (m *Mesh[S]) Origin() geom.Vec3[S] { return m.origin }

// Graph exposes the built connectivity graph; island managers and the
// engine work against it directly.
func (m *Mesh[S]) Graph() *navgraph.Graph[S] { return m.graph }

// HardEdges returns the boundary edges of triangle i (edges with no
// neighbor on the other side).
func (m *Mesh[S]) HardEdges(i int) []geom.Segment[S] {
	return m.hardEdges[i]
}

// SetAreaCost sets the traverse-cost factor of triangle index and
// returns the previous value. Negative factors are clamped to zero.
// Search folds the factors in at query time, so no rebuild is needed.
func (m *Mesh[S]) SetAreaCost(index int, cost S) (S, error) {
	if index < 0 || index >= len(m.areas) {
		return 0, fmt.Errorf("%w: %d", ErrTriangleNotFound, index)
	}
	old := m.areas[index].Cost
	m.areas[index].Cost = max(cost, 0)

	return old, nil
}

// Thicken returns a new mesh with every vertex pushed outward along the
// averaged normal of its incident triangles. Useful to pad walkable
// space for an agent radius.
func (m *Mesh[S]) Thicken(value S) (*Mesh[S], error) {
	shifted := make([]geom.Vec3[S], len(m.vertices))
	for i, v := range m.vertices {
		var n geom.Vec3[S]
		count := 0
		for j, t := range m.triangles {
			if int(t.A) == i || int(t.B) == i || int(t.C) == i {
				n = n.Add(m.normals[j])
				count++
			}
		}
		if count > 1 {
			n = n.Scale(1 / S(count))
		}
		shifted[i] = v.Add(n.Normalize().Scale(value))
	}

	return NewMesh(shifted, m.triangles, Options[S]{Tolerance: m.tolerance})
}

// Scale returns a new mesh with vertices scaled around origin; a nil
// origin scales around the mesh's own origin.
func (m *Mesh[S]) Scale(value geom.Vec3[S], origin *geom.Vec3[S]) (*Mesh[S], error) {
	pivot := m.origin
	if origin != nil {
		pivot = *origin
	}
	scaled := make([]geom.Vec3[S], len(m.vertices))
	for i, v := range m.vertices {
		d := v.Sub(pivot)
		scaled[i] = pivot.Add(geom.V3(d.X*value.X, d.Y*value.Y, d.Z*value.Z))
	}

	return NewMesh(scaled, m.triangles, Options[S]{Tolerance: m.tolerance})
}
