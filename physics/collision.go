// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// collision.go is the response half of the engine: a Collision record
// produced by the exact solver (solver.go) and a normal-impulse resolver,
// grounded on physics/contact.go's contactPair (pair bookkeeping) and
// physics/solver.go's sequential-impulse resolution, replaced here by a
// single closed-form normal impulse since there is no iterative constraint
// solve in a continuous-time engine: each contact is resolved exactly once,
// at the instant it occurs.

import "github.com/darcyvilkner/chrona-physics/vec2"

// Collision is the outcome of one accepted vertex-edge root: the contact
// point, the edge tangent at contact, the vertex-bearing object's velocity,
// the relative velocity of vertex with respect to edge, and the time it
// occurred. VertexObj/EdgeObj record the geometric roles the solver found;
// ObjA/ObjB record which rule-group side each participant plays, assigned
// independently by assignRoles (object.go) and used only to route
// weightA/weightB in Resolve.
type Collision struct {
	Pos     vec2.V2
	Tangent vec2.V2
	Vel     vec2.V2
	RelVel  vec2.V2
	Time    float64

	Vertex Vertex
	Edge   Edge

	VertexObj *PhysicsObject
	EdgeObj   *PhysicsObject

	ObjA *PhysicsObject
	ObjB *PhysicsObject

	Rule *CollisionRule
}

// Resolve applies a normal impulse along the edge's normal (perpendicular
// to Tangent) to VertexObj and/or EdgeObj's translational motion, driving
// the relative normal speed (vertex with respect to edge) from its
// pre-contact value to -restitution*preContact + additionalVel.
// additionalVel is a scalar bias added after the restitution scaling -- a
// positive value guarantees net separation after contact even at
// restitution 0, preventing an immediate re-trigger. weightA and weightB
// are per-collision weights for ObjA and ObjB respectively, routed here to
// whichever of VertexObj/EdgeObj that participant actually is; they act
// like inverse mass, so setting either to 0 pins that object, leaving it
// untouched regardless of the other's weight.
func (c *Collision) Resolve(additionalVel, restitution, weightA, weightB float64) {
	weightVertex, weightEdge := weightA, weightB
	if c.VertexObj == c.ObjB {
		weightVertex, weightEdge = weightB, weightA
	}
	denom := weightVertex + weightEdge
	if denom == 0 {
		return
	}

	n := c.Tangent.Perp().Unit()
	preContact := c.RelVel.Dot(n)
	delta := -(1+restitution)*preContact + additionalVel

	if weightVertex != 0 {
		c.VertexObj.trajectory.Impulse(n.Scale(delta * weightVertex / denom))
	}
	if weightEdge != 0 {
		c.EdgeObj.trajectory.Impulse(n.Scale(-delta * weightEdge / denom))
	}
}

// WeightedVel returns the post-merge velocity at the contact point for
// callers implementing inelastic sticking, using the same weightA/weightB
// to VertexObj/EdgeObj routing as Resolve: the heavier (lower-weight) side
// dominates the merge, converging to that side's own velocity as its own
// weight approaches 0.
func (c *Collision) WeightedVel(weightA, weightB float64) vec2.V2 {
	weightVertex, weightEdge := weightA, weightB
	if c.VertexObj == c.ObjB {
		weightVertex, weightEdge = weightB, weightA
	}
	denom := weightVertex + weightEdge
	if denom == 0 {
		return c.Vel
	}
	return c.Vel.Sub(c.RelVel.Scale(weightVertex / denom))
}
