// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// solver.go is the numerical heart of the engine: exact closed-form root
// finding for the instant a moving vertex becomes collinear with and
// interior to a moving edge. It replaces the teacher's GJK/EPA discrete
// narrow-phase (physics/gjk.go, physics/epa.go) entirely -- there is no
// analogous continuous-time primitive in the teacher, so this file is
// grounded on spec.md §4.6's derivation rather than adapted teacher code,
// following the same closed-form-over-iterative philosophy the teacher
// applies elsewhere (e.g. its analytic constraint Jacobians in
// physics/pbd_base_constraints.go, solved directly rather than iterated).

import (
	"math"

	"github.com/darcyvilkner/chrona-physics/vec2"
)

const solverEpsilon = 1e-9

// solveVertexEdge finds the earliest admissible contact between vertex
// (owned by vertexObj) and edge (owned by edgeObj) at or after clock time
// now, or returns ok=false if no admissible contact exists. The returned
// Collision always reports Tangent as the edge's own p0->p1 direction and
// Vel/RelVel from the vertex's point of view, regardless of which of
// vertexObj/edgeObj ends up playing the rule's A or B role; Resolve
// (collision.go) dispatches by VertexObj/EdgeObj identity rather than by
// that A/B label, so no reorientation is needed downstream.
func solveVertexEdge(vertexObj, edgeObj *PhysicsObject, vertex Vertex, edge Edge, tol ToleranceProfile, now float64) (*Collision, bool) {
	e0 := edgeObj.trajectory.PosOf(edge.P0)
	e1 := edgeObj.trajectory.PosOf(edge.P1)
	v0 := vertexObj.trajectory.PosOf(vertex.P)

	ep0 := e1.Sub(e0)
	vp0 := v0.Sub(e0)

	e0Vel := edgeObj.trajectory.VelOf(edge.P0)
	e1Vel := edgeObj.trajectory.VelOf(edge.P1)
	vVel := vertexObj.trajectory.VelOf(vertex.P)

	ev := e1Vel.Sub(e0Vel)
	vv := vVel.Sub(e0Vel)

	// Close-collision shortcut: force contact "now" if the vertex already
	// lies within tolerance of the edge line, defeating floating-point
	// drift that would otherwise produce a microscopic negative or
	// overshoot root.
	epLen := ep0.Len()
	if epLen > 0 && math.Abs(ep0.Cross(vp0)) <= epLen*tol.CloseCollisionThresh {
		if c, ok := acceptVertexEdge(0, now, ep0, vp0, vertex, edge, vertexObj, edgeObj, e0Vel, e1Vel, vVel, tol); ok {
			return c, true
		}
	}

	a := ev.Cross(vv)
	b := ep0.Cross(vv) + ev.Cross(vp0)
	c := ep0.Cross(vp0)

	var tau float64
	switch {
	case math.Abs(a) < solverEpsilon:
		if math.Abs(b) < solverEpsilon {
			return nil, false
		}
		tau = -c / b
		if tau < 0 {
			return nil, false
		}
	default:
		// Numerically stable quadratic formula (Numerical Recipes
		// q-substitution, avoiding cancellation in b +/- sqrt(disc)), then
		// try the non-negative roots in ascending order: when both are
		// non-negative and the earlier one fails acceptance, the later one
		// is tested; a negative root is never used.
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil, false
		}
		sqrtDisc := math.Sqrt(disc)
		var q float64
		if b >= 0 {
			q = -0.5 * (b + sqrtDisc)
		} else {
			q = -0.5 * (b - sqrtDisc)
		}
		root1 := q / a
		root2 := root1
		if math.Abs(q) >= solverEpsilon {
			root2 = c / q
		}
		lo, hi := math.Min(root1, root2), math.Max(root1, root2)
		if lo >= 0 && hi > lo {
			if col, ok := acceptVertexEdge(lo, now, ep0.Add(ev.Scale(lo)), vp0.Add(vv.Scale(lo)), vertex, edge, vertexObj, edgeObj, e0Vel, e1Vel, vVel, tol); ok {
				return col, true
			}
			root1, root2 = hi, hi
		}

		tau = math.Inf(1)
		if root1 >= 0 && root1 < tau {
			tau = root1
		}
		if root2 >= 0 && root2 < tau {
			tau = root2
		}
		if math.IsInf(tau, 1) {
			return nil, false
		}
	}

	ep := ep0.Add(ev.Scale(tau))
	vp := vp0.Add(vv.Scale(tau))
	return acceptVertexEdge(tau, now, ep, vp, vertex, edge, vertexObj, edgeObj, e0Vel, e1Vel, vVel, tol)
}

// acceptVertexEdge runs the five ordered acceptance tests from spec.md
// §4.6 at the candidate offset tau (contact time t = now+tau), returning a
// Collision on success. ep, vp are the edge direction and vertex offset
// already evaluated at tau.
func acceptVertexEdge(
	tau, now float64,
	ep, vp vec2.V2,
	vertex Vertex,
	edge Edge,
	vertexObj, edgeObj *PhysicsObject,
	e0Vel, e1Vel, vVel vec2.V2,
	tol ToleranceProfile,
) (*Collision, bool) {
	epLenSqr := ep.LenSqr()
	if epLenSqr < solverEpsilon {
		return nil, false
	}

	// 1. Parameter-on-segment.
	s := ep.Dot(vp) / epLenSqr
	if s < 0 || s > 1 {
		return nil, false
	}

	// 2. Vertex convex.
	if vertex.T0.Cross(vertex.T1) <= 0 {
		return nil, false
	}

	// 3. Direction in arc, with directional tolerance.
	t0Len := vertex.T0.Len()
	t1Len := vertex.T1.Len()
	lhs := vertex.T0.Cross(ep) * vertex.T1.Cross(ep)
	rhs := epLenSqr * t0Len * t1Len * tol.DirectionalTolerance
	if lhs > rhs {
		return nil, false
	}

	// 4. Correct winding: the arc bisector must point opposite the edge.
	mid := vertex.T0.Scale(t1Len).Add(vertex.T1.Scale(t0Len))
	if mid.Dot(ep) > 0 {
		return nil, false
	}

	// 5. Approach, not separation.
	edgeVelAtContact := e0Vel.Lerp(e1Vel, s)
	relVel := vVel.Sub(edgeVelAtContact)
	if ep.Cross(relVel) > 0 {
		return nil, false
	}

	contactTime := now + tau
	pos := vertexObj.trajectory.TransformAt(contactTime).Apply(vertex.P)

	return &Collision{
		Pos:       pos,
		Tangent:   ep,
		Vel:       vVel,
		RelVel:    relVel,
		Time:      contactTime,
		Vertex:    vertex,
		Edge:      edge,
		VertexObj: vertexObj,
		EdgeObj:   edgeObj,
	}, true
}
