// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// group.go generalizes the fixed shape-pair collider dispatch table in
// physics/collision.go (collider.algorithms[][]collide, a dense 2x2 matrix
// keyed by shape kind) into an open bipartite registry of named groups and
// rules, each rule carrying its own tolerance and recalculating flag.

import "github.com/google/uuid"

// ToleranceProfile bounds how eagerly the solver treats a vertex and an
// edge as contacting. CloseCollisionThresh is a world-space distance below
// which contact is forced "now"; DirectionalTolerance is a [0,1] dimensionless
// slack loosening the vertex-arc acceptance test.
type ToleranceProfile struct {
	CloseCollisionThresh  float64
	DirectionalTolerance  float64
}

// DefaultToleranceProfile is a reasonable starting point for rigid polygons:
// a small absolute distance and no directional slack.
func DefaultToleranceProfile() ToleranceProfile {
	return ToleranceProfile{CloseCollisionThresh: 1e-4, DirectionalTolerance: 0}
}

// CollisionGroup is a named membership set plus the two sets of rules in
// which it plays the A role or the B role. Objects join/leave via
// PhysicsObject.JoinGroup / LeaveGroup rather than directly here, so that
// membership changes always go through the object's recalculation hook.
type CollisionGroup struct {
	id      uuid.UUID
	members map[*PhysicsObject]struct{}
	rulesA  []*CollisionRule
	rulesB  []*CollisionRule
}

// NewCollisionGroup creates an empty group.
func NewCollisionGroup() *CollisionGroup {
	return &CollisionGroup{id: uuid.New(), members: map[*PhysicsObject]struct{}{}}
}

// ID returns the group's identity, useful for log correlation.
func (g *CollisionGroup) ID() uuid.UUID { return g.id }

// Members returns a snapshot slice of the group's current members.
func (g *CollisionGroup) Members() []*PhysicsObject {
	out := make([]*PhysicsObject, 0, len(g.members))
	for o := range g.members {
		out = append(out, o)
	}
	return out
}

func (g *CollisionGroup) addMember(o *PhysicsObject)    { g.members[o] = struct{}{} }
func (g *CollisionGroup) removeMember(o *PhysicsObject) { delete(g.members, o) }

// CollisionGroup
// ============================================================================
// CollisionRule

// CollisionRule pairs two groups with a tolerance, a callback, and the
// recalculating flag that controls how many future contacts addCollisions
// (object.go) may emit from one recalculation without re-solving (spec
// §4.7). The callback runs exactly when a member of GroupA becomes tangent
// to a member of GroupB.
type CollisionRule struct {
	id            uuid.UUID
	groupA        *CollisionGroup
	groupB        *CollisionGroup
	tolerance     ToleranceProfile
	callback      func(*Collision)
	recalculating bool
	enabled       bool
	recalcCount   int
}

// NewCollisionRule registers a rule between groupA and groupB, appending it
// to groupA.rulesA and groupB.rulesB, then recalculates every member of
// groupA -- B-side objects get visited by those A-side recalcs, so a
// one-sided sweep is sufficient (spec §4.4).
func NewCollisionRule(groupA, groupB *CollisionGroup, tol ToleranceProfile, cb func(*Collision), recalculating bool) *CollisionRule {
	r := &CollisionRule{
		id:            uuid.New(),
		groupA:        groupA,
		groupB:        groupB,
		tolerance:     tol,
		callback:      cb,
		recalculating: recalculating,
		enabled:       true,
	}
	groupA.rulesA = append(groupA.rulesA, r)
	groupB.rulesB = append(groupB.rulesB, r)
	r.recalcCount++
	for o := range groupA.members {
		o.queueCollisionRecalculation()
	}
	return r
}

// ID returns the rule's identity, useful for log correlation.
func (r *CollisionRule) ID() uuid.UUID { return r.id }

// Recalculating reports whether this rule's callback may mutate
// future-collision state.
func (r *CollisionRule) Recalculating() bool { return r.recalculating }

// RecalcCount returns the number of times this rule's membership in its
// groups has changed (creation, Enable, Disable), exposed for
// metrics-style introspection.
func (r *CollisionRule) RecalcCount() int { return r.recalcCount }

// Enabled reports whether the rule currently participates in candidate
// generation.
func (r *CollisionRule) Enabled() bool { return r.enabled }

// Disable removes the rule from both groups and recalculates every member
// of both. A no-op if already disabled.
func (r *CollisionRule) Disable() {
	if !r.enabled {
		return
	}
	r.enabled = false
	r.groupA.rulesA = removeRule(r.groupA.rulesA, r)
	r.groupB.rulesB = removeRule(r.groupB.rulesB, r)
	r.recalcCount++
	for o := range r.groupA.members {
		o.queueCollisionRecalculation()
	}
	for o := range r.groupB.members {
		o.queueCollisionRecalculation()
	}
}

// Enable re-registers a previously disabled rule and recalculates only
// groupA's members (B-side objects are visited via those A-side recalcs).
// A no-op if already enabled.
func (r *CollisionRule) Enable() {
	if r.enabled {
		return
	}
	r.enabled = true
	r.groupA.rulesA = append(r.groupA.rulesA, r)
	r.groupB.rulesB = append(r.groupB.rulesB, r)
	r.recalcCount++
	for o := range r.groupA.members {
		o.queueCollisionRecalculation()
	}
}

func removeRule(rules []*CollisionRule, target *CollisionRule) []*CollisionRule {
	out := rules[:0]
	for _, r := range rules {
		if r != target {
			out = append(out, r)
		}
	}
	return out
}
