// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// object.go is the recalculation engine: it orchestrates invalidation,
// candidate heaps, batched event emission, and the cross-object
// nextProbableRecalculation cutoff (spec.md §4.7). Grounded on
// physics/body.go's body struct (scratch per-body fields, lazy
// reinitialization on wake) and physics/contact.go's contactPair
// validity bookkeeping, generalized from "one contact manifold per pair,
// recomputed every step" to "two candidate heaps per object, recomputed
// only when something dirties them."

import (
	"container/heap"
	"math"

	"github.com/google/uuid"
)

// PhysicsObject references one Geometry, one Trajectory, and a set of
// CollisionGroups, plus the bookkeeping the recalculation engine needs. An
// object subscribes itself as a dependant of its geometry, trajectory, and
// each group it joins so those collaborators can notify it of mutations;
// Disable unsubscribes from all three and invalidates every event it owns
// (spec.md §9's weak-back-reference design note: these are identifiers
// into registries the object can drop, not owning handles).
type PhysicsObject struct {
	id         uuid.UUID
	geometry   *Geometry
	trajectory *Trajectory
	groups     map[*CollisionGroup]struct{}
	disabled   bool

	events []*ClockEvent

	everQueued  bool
	queuedCycle uint64

	recalcHeap candidateHeap
	otherHeap  candidateHeap

	nextProbableRecalculation float64
	lastRecalculation         uint64
}

// NewPhysicsObject creates a PhysicsObject over geometry and trajectory,
// enabled by default (use WithDisabled to start disabled). Caller must join
// groups explicitly via JoinGroup once the object is constructed.
func NewPhysicsObject(geometry *Geometry, trajectory *Trajectory, opts ...ObjectOption) *PhysicsObject {
	cfg := objectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	o := &PhysicsObject{
		id:                        uuid.New(),
		geometry:                  geometry,
		trajectory:                trajectory,
		groups:                    map[*CollisionGroup]struct{}{},
		disabled:                  cfg.disabled,
		nextProbableRecalculation: math.Inf(1),
	}
	if !o.disabled {
		geometry.addDependant(o)
		trajectory.addDependant(o)
	}
	return o
}

// ID returns the object's identity, useful for log correlation.
func (o *PhysicsObject) ID() uuid.UUID { return o.id }

// Geometry returns the object's geometry.
func (o *PhysicsObject) Geometry() *Geometry { return o.geometry }

// Trajectory returns the object's trajectory.
func (o *PhysicsObject) Trajectory() *Trajectory { return o.trajectory }

// Disabled reports whether the object currently participates in collision
// recalculation.
func (o *PhysicsObject) Disabled() bool { return o.disabled }

// JoinGroup adds the object to g's membership and queues a full
// recalculation. A no-op if already a member.
func (o *PhysicsObject) JoinGroup(g *CollisionGroup) {
	if _, ok := o.groups[g]; ok {
		return
	}
	o.groups[g] = struct{}{}
	g.addMember(o)
	o.queueCollisionRecalculation()
}

// LeaveGroup removes the object from g's membership and queues a full
// recalculation. A no-op if not a member.
func (o *PhysicsObject) LeaveGroup(g *CollisionGroup) {
	if _, ok := o.groups[g]; !ok {
		return
	}
	delete(o.groups, g)
	g.removeMember(o)
	o.queueCollisionRecalculation()
}

// Disable unsubscribes the object from its geometry, trajectory, and every
// group it belongs to, invalidates every event it owns, and drops both
// candidate heaps. A no-op if already disabled.
func (o *PhysicsObject) Disable() {
	if o.disabled {
		return
	}
	o.disabled = true
	o.geometry.removeDependant(o)
	o.trajectory.removeDependant(o)
	for g := range o.groups {
		g.removeMember(o)
	}
	o.groups = map[*CollisionGroup]struct{}{}
	o.invalidateEvents()
	o.recalcHeap = nil
	o.otherHeap = nil
}

// Enable resubscribes the object to its geometry and trajectory and queues
// a recalculation. Group memberships dropped by Disable are not restored;
// callers must JoinGroup again. A no-op if already enabled.
func (o *PhysicsObject) Enable() {
	if !o.disabled {
		return
	}
	o.disabled = false
	o.geometry.addDependant(o)
	o.trajectory.addDependant(o)
	o.queueCollisionRecalculation()
}

func (o *PhysicsObject) invalidateEvents() {
	for _, e := range o.events {
		Cancel(e)
	}
	o.events = nil
}

// PhysicsObject
// ============================================================================
// recalculation engine.

// queueCollisionRecalculation schedules a preprocess to run
// recalculateCollisions on the next cycle. Idempotent within a single
// cycle, guarded by queuedCycle, so many mutations within one cycle collapse
// into a single recalculation.
func (o *PhysicsObject) queueCollisionRecalculation() {
	if o.disabled {
		return
	}
	clock := o.trajectory.clock
	cycle := clock.Cycle()
	if o.everQueued && o.queuedCycle == cycle {
		return
	}
	o.everQueued = true
	o.queuedCycle = cycle
	clock.AddPreprocess(func(*Clock) { o.recalculateCollisions() })
}

// recalculateCollisions invalidates every event this object previously
// emitted, rebuilds both candidate heaps from every rule attached to any
// group this object belongs to, then hands off to addCollisions.
func (o *PhysicsObject) recalculateCollisions() {
	if o.disabled {
		return
	}
	clock := o.trajectory.clock
	o.lastRecalculation = clock.nextGen()
	o.invalidateEvents()
	o.recalcHeap = nil
	o.otherHeap = nil

	for g := range o.groups {
		for _, rule := range g.rulesA {
			if !rule.enabled {
				continue
			}
			for _, other := range rule.groupB.Members() {
				if other == o {
					continue
				}
				o.addCandidate(rule, other, true)
			}
		}
		for _, rule := range g.rulesB {
			if !rule.enabled {
				continue
			}
			for _, other := range rule.groupA.Members() {
				if other == o {
					continue
				}
				o.addCandidate(rule, other, false)
			}
		}
	}
	o.addCollisions()
}

func (o *PhysicsObject) addCandidate(rule *CollisionRule, other *PhysicsObject, ownerIsGroupA bool) {
	c := candidateFor(o, other, rule, ownerIsGroupA)
	if c == nil {
		return
	}
	if rule.recalculating {
		heap.Push(&o.recalcHeap, c)
	} else {
		heap.Push(&o.otherHeap, c)
	}
}

// addCollisions performs the batched emission protocol from spec.md §4.7:
// recalculating candidates are drained one at a time, each one solved
// exactly and its events pushed to the clock, until either the heap is
// empty or a known-sooner recalculation cutoff is reached (in which case a
// self-wake event re-enters recalculateCollisions rather than resuming
// from a partially drained heap -- see the §9 design note on this
// ambiguity). Non-recalculating candidates at or before that cutoff are
// then drained in bulk, since they cannot be invalidated by other activity.
func (o *PhysicsObject) addCollisions() {
	clock := o.trajectory.clock
	earliest := o.nextProbableRecalculation
	o.nextProbableRecalculation = math.Inf(1)

	for o.recalcHeap.Len() > 0 {
		k := o.recalcHeap[0]
		if earliest < k.earliestTime {
			wake := clock.ScheduleEvent(k.earliestTime, func(*Clock) { o.recalculateCollisions() })
			if wake != nil {
				o.events = append(o.events, wake)
			}
			break
		}
		heap.Pop(&o.recalcHeap)

		if k.other.lastRecalculation > o.lastRecalculation {
			continue // other has recalculated since this candidate was minted: stale.
		}

		collisions := solveExact(o, k.other, k.rule, k.ownerIsGroupA, clock.Time())
		for _, col := range collisions {
			if col.Time < clock.Time() {
				continue
			}
			o.emit(k.rule, col)
			if k.rule.recalculating {
				if col.Time < earliest {
					earliest = col.Time
				}
				if col.Time < o.nextProbableRecalculation {
					o.nextProbableRecalculation = col.Time
				}
				if col.Time < k.other.nextProbableRecalculation {
					k.other.nextProbableRecalculation = col.Time
				}
			}
		}
	}

	for o.otherHeap.Len() > 0 && o.otherHeap[0].earliestTime <= earliest {
		k := heap.Pop(&o.otherHeap).(*Candidate)
		collisions := solveExact(o, k.other, k.rule, k.ownerIsGroupA, clock.Time())
		for _, col := range collisions {
			if col.Time < clock.Time() {
				continue
			}
			o.emit(k.rule, col)
		}
	}
}

// emit schedules col's callback on the clock and records the event against
// both participants so disabling either invalidates it.
func (o *PhysicsObject) emit(rule *CollisionRule, col *Collision) {
	clock := o.trajectory.clock
	col.Rule = rule
	e := clock.ScheduleEvent(col.Time, func(*Clock) {
		if rule.callback != nil {
			rule.callback(col)
		}
	})
	if e == nil {
		return
	}
	o.events = append(o.events, e)
	other := col.ObjA
	if other == o {
		other = col.ObjB
	}
	if other != nil && other != o {
		other.events = append(other.events, e)
	}
}

// solveExact tries every vertex-edge combination between a and b in both
// orderings and returns every admissible collision, with ObjA/ObjB assigned
// according to which of a, b is the rule's groupA-side member.
func solveExact(a, b *PhysicsObject, rule *CollisionRule, aInGroupA bool, now float64) []*Collision {
	var out []*Collision
	tol := rule.tolerance

	for _, v := range a.geometry.Vertices {
		for _, e := range b.geometry.Edges {
			if col, ok := solveVertexEdge(a, b, v, e, tol, now); ok {
				assignRoles(col, a, b, aInGroupA)
				out = append(out, col)
			}
		}
	}
	for _, v := range b.geometry.Vertices {
		for _, e := range a.geometry.Edges {
			if col, ok := solveVertexEdge(b, a, v, e, tol, now); ok {
				assignRoles(col, a, b, aInGroupA)
				out = append(out, col)
			}
		}
	}
	return out
}

// assignRoles fixes ObjA/ObjB per the rule's group membership. Vel, RelVel,
// and Tangent are left exactly as the solver reported them -- always from
// the vertex's point of view -- since Resolve dispatches impulses by
// VertexObj/EdgeObj identity rather than by A/B label, making the response
// independent of which side of the rule each participant happens to sit on.
func assignRoles(col *Collision, a, b *PhysicsObject, aInGroupA bool) {
	if aInGroupA {
		col.ObjA, col.ObjB = a, b
	} else {
		col.ObjA, col.ObjB = b, a
	}
}
