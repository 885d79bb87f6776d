// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// geometry.go holds the local-space description of a moving object's
// shape: an oriented set of vertices and edges plus an AABB, grounded on
// the local-space Shape / world-space Abox split in physics/shape.go --
// here adapted from 3D boxes and spheres to a 2D polygon outline.

import (
	"math"

	"github.com/darcyvilkner/chrona-physics/vec2"
)

// Vertex is a corner of a Geometry's outline. t0 is the incoming tangent
// direction (previous edge into this vertex), t1 the outgoing tangent
// direction (this vertex to the next edge). The arc from t0 to t1, measured
// on the convex side, is the set of directions this vertex blocks.
type Vertex struct {
	P  vec2.V2
	T0 vec2.V2
	T1 vec2.V2
}

// Edge is a directed segment from P0 to P1. Walking P0 to P1, the solid
// side of the outline is to the right.
type Edge struct {
	P0 vec2.V2
	P1 vec2.V2
}

// AABB is an axis-aligned bounding box in geometry space.
type AABB struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Corners returns the four corners of the box in a fixed order:
// (minX,minY), (maxX,minY), (maxX,maxY), (minX,maxY).
func (b AABB) Corners() [4]vec2.V2 {
	return [4]vec2.V2{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// Geometry is an immutable-in-typical-use oriented outline: a set of
// vertices and edges plus a bounding box. Many PhysicsObjects may share one
// Geometry; dependants is the weak back-reference set that gets notified on
// modify (see §9 design note on weak back-references rather than owning
// handles).
type Geometry struct {
	Vertices []Vertex
	Edges    []Edge
	Bounds   AABB

	dependants map[*PhysicsObject]struct{}
}

// NewGeometry starts an empty Geometry; use GeometryBuilder to populate one
// via the path-drawing state machine, or populate Vertices/Edges/Bounds
// directly for a hand-built shape.
func NewGeometry() *Geometry {
	return &Geometry{dependants: map[*PhysicsObject]struct{}{}}
}

// Modify is the escape hatch for editing a Geometry after construction: fn
// edits Vertices/Edges/Bounds directly, after which every dependant is
// queued for a collision recalculation.
func (g *Geometry) Modify(fn func(*Geometry)) {
	fn(g)
	for dep := range g.dependants {
		dep.queueCollisionRecalculation()
	}
}

func (g *Geometry) addDependant(o *PhysicsObject) {
	if g.dependants == nil {
		g.dependants = map[*PhysicsObject]struct{}{}
	}
	g.dependants[o] = struct{}{}
}

func (g *Geometry) removeDependant(o *PhysicsObject) {
	delete(g.dependants, o)
}

// Geometry
// ============================================================================
// GeometryBuilder: path-drawing state machine.

// GeometryBuilder accumulates a path of vertices into edges and corners,
// following the to/break/close/polygon state machine. The zero value is
// ready to use.
type GeometryBuilder struct {
	vertices []Vertex
	edges    []Edge

	count    int
	pos0     vec2.V2
	pos1     vec2.V2
	prev     vec2.V2
	prevPrev vec2.V2
}

// NewGeometryBuilder returns a ready-to-use builder.
func NewGeometryBuilder() *GeometryBuilder { return &GeometryBuilder{} }

// To appends one or more vertices to the path under construction. The first
// point records pos0; the second records pos1 and creates the path's first
// edge; every further point creates an edge from the previous point and
// completes the corner at the previous point.
func (b *GeometryBuilder) To(pts ...vec2.V2) *GeometryBuilder {
	for _, p := range pts {
		b.toOne(p)
	}
	return b
}

func (b *GeometryBuilder) toOne(p vec2.V2) {
	switch b.count {
	case 0:
		b.pos0 = p
	case 1:
		b.pos1 = p
		b.edges = append(b.edges, Edge{P0: b.pos0, P1: p})
	default:
		b.edges = append(b.edges, Edge{P0: b.prev, P1: p})
		b.vertices = append(b.vertices, Vertex{
			P:  b.prev,
			T0: b.prev.Sub(b.prevPrev),
			T1: p.Sub(b.prev),
		})
	}
	b.prevPrev = b.prev
	b.prev = p
	b.count++
}

// Break abandons the current path without closing it and resets the
// builder's position counter.
func (b *GeometryBuilder) Break() *GeometryBuilder {
	b.count = 0
	b.pos0, b.pos1, b.prev, b.prevPrev = vec2.V2{}, vec2.V2{}, vec2.V2{}, vec2.V2{}
	return b
}

// Close connects the last vertex back to pos0, completing the path's final
// two corners, then breaks. A path with fewer than two vertices is a silent
// no-op (builder-underflow, spec §7): the path is simply abandoned.
func (b *GeometryBuilder) Close() *GeometryBuilder {
	if b.count < 2 {
		b.Break()
		return b
	}
	b.edges = append(b.edges, Edge{P0: b.prev, P1: b.pos0})
	b.vertices = append(b.vertices, Vertex{
		P:  b.prev,
		T0: b.prev.Sub(b.prevPrev),
		T1: b.pos0.Sub(b.prev),
	})
	b.vertices = append(b.vertices, Vertex{
		P:  b.pos0,
		T0: b.pos0.Sub(b.prev),
		T1: b.pos1.Sub(b.pos0),
	})
	return b.Break()
}

// Polygon is break + to(pts...) + close, the common case of drawing one
// closed loop in a single call.
func (b *GeometryBuilder) Polygon(pts ...vec2.V2) *GeometryBuilder {
	return b.Break().To(pts...).Close()
}

// Finish returns the built Geometry, with its bounding box computed as the
// min/max over every vertex position and edge endpoint collected so far.
func (b *GeometryBuilder) Finish() *Geometry {
	g := NewGeometry()
	g.Vertices = append([]Vertex(nil), b.vertices...)
	g.Edges = append([]Edge(nil), b.edges...)
	g.Bounds = boundsOf(g.Vertices, g.Edges)
	return g
}

func boundsOf(vertices []Vertex, edges []Edge) AABB {
	box := AABB{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	grow := func(p vec2.V2) {
		box.MinX = math.Min(box.MinX, p.X)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxY = math.Max(box.MaxY, p.Y)
	}
	for _, v := range vertices {
		grow(v.P)
	}
	for _, e := range edges {
		grow(e.P0)
		grow(e.P1)
	}
	if math.IsInf(box.MinX, 1) {
		return AABB{}
	}
	return box
}

// UnitSquare returns the geometry used throughout the engine's tests: a unit
// square spanning (-1,-1) to (1,1), built via the standard builder path.
func UnitSquare() *Geometry {
	return NewGeometryBuilder().
		Polygon(
			vec2.Pt(-1, -1),
			vec2.Pt(1, -1),
			vec2.Pt(1, 1),
			vec2.Pt(-1, 1),
		).
		Finish()
}
