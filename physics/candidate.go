// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// candidate.go replaces the teacher's union-find broad-phase
// (broad_get_collision_pairs, uf_find/uf_union simulation-island
// collection) with a time-swept AABB overlap test between two moving
// polygons: instead of grouping already-touching bodies for one solver
// island, it produces a single conservative lower bound on when two
// objects' bounding boxes could first overlap under their linear motion.

import "math"

// Candidate is a conservative bound on when two objects could first
// interact under rule, used to order exact solves (physics/solver.go)
// without re-deriving the quadratic root for every pair on every cycle.
// Candidate implements container/heap.Interface via candidateHeap, the
// same min-heap idiom as Clock's eventHeap.
type Candidate struct {
	other         *PhysicsObject
	earliestTime  float64
	rule          *CollisionRule
	ownerIsGroupA bool // whether the object owning this heap plays the rule's A role
	index         int
}

// candidateHeap is a container/heap min-heap of *Candidate ordered by
// earliestTime, one per PhysicsObject per heap (recalcHeap / otherHeap).
type candidateHeap []*Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].earliestTime < h[j].earliestTime }
func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *candidateHeap) Push(x interface{}) {
	c := x.(*Candidate)
	c.index = len(*h)
	*h = append(*h, c)
}
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// sweptBounds is the eight-scalar bound derived from an object's four
// geometry-space AABB corners: independent componentwise min/max of both
// position and velocity, NOT paired per-corner. Because min(a+b) >= min(a)
// + min(b) and max(a+b) <= max(a)+max(b) for t >= 0, using the
// independently-minimized/maximized position and velocity yields a true
// lower bound on the box's left/bottom edge and a true upper bound on its
// right/top edge at any future instant -- which is exactly what makes the
// inequalities below conservative rather than merely approximate.
type sweptBounds struct {
	xMin, xMax       float64
	xMinVel, xMaxVel float64
	yMin, yMax       float64
	yMinVel, yMaxVel float64
}

func computeSweptBounds(o *PhysicsObject) sweptBounds {
	corners := o.geometry.Bounds.Corners()
	b := sweptBounds{
		xMin: math.Inf(1), xMax: math.Inf(-1),
		xMinVel: math.Inf(1), xMaxVel: math.Inf(-1),
		yMin: math.Inf(1), yMax: math.Inf(-1),
		yMinVel: math.Inf(1), yMaxVel: math.Inf(-1),
	}
	for _, corner := range corners {
		pos := o.trajectory.PosOf(corner)
		vel := o.trajectory.VelOf(corner)
		b.xMin = math.Min(b.xMin, pos.X)
		b.xMax = math.Max(b.xMax, pos.X)
		b.xMinVel = math.Min(b.xMinVel, vel.X)
		b.xMaxVel = math.Max(b.xMaxVel, vel.X)
		b.yMin = math.Min(b.yMin, pos.Y)
		b.yMax = math.Max(b.yMax, pos.Y)
		b.yMinVel = math.Min(b.yMinVel, vel.Y)
		b.yMaxVel = math.Max(b.yMaxVel, vel.Y)
	}
	return b
}

// linearInterval solves c + t*m <= 0 for t in [0, +inf), returning the
// feasible sub-interval and whether it is non-empty.
func linearInterval(c, m float64) (lo, hi float64, ok bool) {
	const eps = 1e-12
	switch {
	case m > eps:
		bound := -c / m
		if bound < 0 {
			return 0, 0, false
		}
		return 0, bound, true
	case m < -eps:
		bound := -c / m
		if bound < 0 {
			bound = 0
		}
		return bound, math.Inf(1), true
	default:
		if c <= 0 {
			return 0, math.Inf(1), true
		}
		return 0, 0, false
	}
}

func intersectIntervals(lo, hi *float64, nlo, nhi float64) bool {
	if nlo > *lo {
		*lo = nlo
	}
	if nhi < *hi {
		*hi = nhi
	}
	return *lo <= *hi
}

// earliestOverlap computes the earliest t >= 0 at which a and b's swept
// AABBs can first overlap, returning false if no such t exists (their
// boxes never overlap under this linear motion).
func earliestOverlap(a, b *PhysicsObject) (float64, bool) {
	ab := computeSweptBounds(a)
	bb := computeSweptBounds(b)

	lo, hi := 0.0, math.Inf(1)

	// a.xMin + t*a.xMinVel <= b.xMax + t*b.xMaxVel
	if l, h, ok := linearInterval(ab.xMin-bb.xMax, ab.xMinVel-bb.xMaxVel); !ok || !intersectIntervals(&lo, &hi, l, h) {
		return 0, false
	}
	// b.xMin + t*b.xMinVel <= a.xMax + t*a.xMaxVel
	if l, h, ok := linearInterval(bb.xMin-ab.xMax, bb.xMinVel-ab.xMaxVel); !ok || !intersectIntervals(&lo, &hi, l, h) {
		return 0, false
	}
	// a.yMin + t*a.yMinVel <= b.yMax + t*b.yMaxVel
	if l, h, ok := linearInterval(ab.yMin-bb.yMax, ab.yMinVel-bb.yMaxVel); !ok || !intersectIntervals(&lo, &hi, l, h) {
		return 0, false
	}
	// b.yMin + t*b.yMinVel <= a.yMax + t*a.yMaxVel
	if l, h, ok := linearInterval(bb.yMin-ab.yMax, bb.yMinVel-ab.yMaxVel); !ok || !intersectIntervals(&lo, &hi, l, h) {
		return 0, false
	}
	return lo, true
}

// candidateFor produces the candidate between a (owner) and b (other) under
// rule at the current clock time, or nil if their swept boxes never overlap.
// ownerIsGroupA records whether a plays the rule's A role, for ObjA/ObjB
// assignment once the candidate is exactly solved.
func candidateFor(a, b *PhysicsObject, rule *CollisionRule, ownerIsGroupA bool) *Candidate {
	now := a.trajectory.clock.Time()
	dt, ok := earliestOverlap(a, b)
	if !ok {
		return nil
	}
	return &Candidate{other: b, earliestTime: now + dt, rule: rule, ownerIsGroupA: ownerIsGroupA}
}
