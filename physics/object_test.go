// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"container/heap"
	"testing"

	"github.com/darcyvilkner/chrona-physics/vec2"
)

// TestPhysicsObjectHeadOnElasticCollisionSwapsVelocities is end-to-end
// scenario 1: two objects closing along the x axis, restitution 1, equal
// weights. A carries the sole vertex, B the sole edge, so solveExact has
// exactly one combination to try and the outcome is unambiguous.
func TestPhysicsObjectHeadOnElasticCollisionSwapsVelocities(t *testing.T) {
	clock := NewClock()

	aGeo := &Geometry{
		Vertices: []Vertex{{P: vec2.Pt(1, 0), T0: vec2.Pt(0, -1), T1: vec2.Pt(1, 0)}},
		Bounds:   AABB{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
	}
	bGeo := &Geometry{
		Edges:  []Edge{{P0: vec2.Pt(-1, -1), P1: vec2.Pt(-1, 1)}},
		Bounds: AABB{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
	}

	a := NewPhysicsObject(aGeo, NewTrajectory(clock, vec2.Translate(vec2.Pt(-2, 0)), vec2.Transform{P: vec2.Pt(1, 0)}))
	b := NewPhysicsObject(bGeo, NewTrajectory(clock, vec2.Translate(vec2.Pt(2, 0)), vec2.Transform{P: vec2.Pt(-1, 0)}))

	groupA, groupB := NewCollisionGroup(), NewCollisionGroup()
	var collisionCount int
	var firstTime float64
	NewCollisionRule(groupA, groupB, DefaultToleranceProfile(), func(col *Collision) {
		collisionCount++
		firstTime = col.Time
		col.Resolve(0, 1.0, 1, 1)
	}, true)
	a.JoinGroup(groupA)
	b.JoinGroup(groupB)

	if err := clock.RunTo(1.5); err != nil {
		t.Fatalf("RunTo() error = %v", err)
	}

	if collisionCount != 1 {
		t.Fatalf("collisionCount = %d, want 1", collisionCount)
	}
	if !vec2.Aeq(firstTime, 1.0) {
		t.Errorf("contact time = %v, want 1.0", firstTime)
	}
	if got := a.trajectory.GetMotion().P; !got.Aeq(vec2.Pt(-1, 0)) {
		t.Errorf("A's post-contact velocity = %v, want (-1,0)", got)
	}
	if got := b.trajectory.GetMotion().P; !got.Aeq(vec2.Pt(1, 0)) {
		t.Errorf("B's post-contact velocity = %v, want (1,0)", got)
	}
}

// TestPhysicsObjectFloorRestPinsFloorAndBouncesSquare is end-to-end
// scenario 2: an object falls onto a fixed, infinitely heavy floor with
// restitution 0 and a small additionalVel bias. The floor's weight is 0
// (pinned), the falling object's weight is 1.
func TestPhysicsObjectFloorRestPinsFloorAndBouncesSquare(t *testing.T) {
	clock := NewClock()

	fallGeo := &Geometry{
		Vertices: []Vertex{{P: vec2.Pt(0, 0), T0: vec2.Pt(0, 1), T1: vec2.Pt(-1, 0)}},
		Bounds:   AABB{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
	}
	floorGeo := &Geometry{
		Edges:  []Edge{{P0: vec2.Pt(-10, 0), P1: vec2.Pt(10, 0)}},
		Bounds: AABB{MinX: -10, MaxX: 10, MinY: -1, MaxY: 1},
	}

	floor := NewPhysicsObject(floorGeo, NewTrajectory(clock, vec2.Identity(), vec2.Zero()))
	square := NewPhysicsObject(fallGeo, NewTrajectory(clock, vec2.Translate(vec2.Pt(0, 1)), vec2.Transform{P: vec2.Pt(0, -1)}))

	groupFloor, groupSquare := NewCollisionGroup(), NewCollisionGroup()
	var collisionCount int
	var firstTime float64
	const epsilon = 0.01
	NewCollisionRule(groupFloor, groupSquare, DefaultToleranceProfile(), func(col *Collision) {
		collisionCount++
		firstTime = col.Time
		// weightA (floor) = 0 pins it; weightB (square) = 1 absorbs the bounce.
		col.Resolve(epsilon, 0, 0, 1)
	}, true)
	floor.JoinGroup(groupFloor)
	square.JoinGroup(groupSquare)

	if err := clock.RunTo(1.5); err != nil {
		t.Fatalf("RunTo() error = %v", err)
	}

	if collisionCount != 1 {
		t.Fatalf("collisionCount = %d, want 1", collisionCount)
	}
	if !vec2.Aeq(firstTime, 1.0) {
		t.Errorf("contact time = %v, want 1.0", firstTime)
	}
	if got := floor.trajectory.GetMotion(); !got.Aeq(vec2.Zero()) {
		t.Errorf("floor's motion changed under weightA=0: got %v, want zero", got)
	}
	if got := square.trajectory.GetMotion().P.Y; got <= 0 {
		t.Errorf("square's vertical velocity after floor contact = %v, want > 0 (bounced with additionalVel)", got)
	}
}

// TestAddCollisionsSkipsCandidateStaleAgainstOther is end-to-end scenario 6:
// a candidate minted against an object that has since recalculated (its
// lastRecalculation advanced past the owner's) must be dropped without
// emitting, rather than solved against geometry that may have moved for
// reasons the candidate never saw.
func TestAddCollisionsSkipsCandidateStaleAgainstOther(t *testing.T) {
	clock := NewClock()

	a := NewPhysicsObject(UnitSquare(), NewTrajectory(clock, vec2.Translate(vec2.Pt(-100, 0)), vec2.Zero()))
	b := NewPhysicsObject(UnitSquare(), NewTrajectory(clock, vec2.Translate(vec2.Pt(100, 0)), vec2.Zero()))

	fired := false
	rule := &CollisionRule{recalculating: true, callback: func(*Collision) { fired = true }}

	// Simulate: a minted this candidate while a.lastRecalculation was 1, but
	// b has since recalculated to generation 2 -- the candidate is now stale
	// relative to b, regardless of what its earliestTime claims.
	a.lastRecalculation = 1
	b.lastRecalculation = 2
	heap.Push(&a.recalcHeap, &Candidate{other: b, earliestTime: 0, rule: rule, ownerIsGroupA: true})

	a.addCollisions()

	if fired {
		t.Error("addCollisions() solved and fired a candidate stale relative to other.lastRecalculation")
	}
	if a.recalcHeap.Len() != 0 {
		t.Errorf("recalcHeap.Len() = %d, want 0 (stale candidate must still be drained)", a.recalcHeap.Len())
	}
}
