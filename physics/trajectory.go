// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// trajectory.go is the exact replacement for the teacher's fixed-step
// world/guess transform pair in physics/body.go: instead of predicting one
// step ahead, a Trajectory evaluates its transform in closed form at any
// clock time via base + (t-anchorTime)*motion.

import "github.com/darcyvilkner/chrona-physics/vec2"

// Trajectory is (base, motion, anchorTime) against a Clock: the transform
// at time t is base + (t-anchorTime)*motion. motion acts as the time
// derivative of the transform -- a velocity, in the broad sense that
// includes rotational/scaling rate of change as well as translation.
type Trajectory struct {
	clock      *Clock
	base       vec2.Transform
	motion     vec2.Transform
	anchorTime float64

	dependants map[*PhysicsObject]struct{}
}

// NewTrajectory creates a Trajectory anchored at the clock's current time
// with the given initial transform and motion.
func NewTrajectory(clock *Clock, base, motion vec2.Transform) *Trajectory {
	return &Trajectory{
		clock:      clock,
		base:       base,
		motion:     motion,
		anchorTime: clock.Time(),
		dependants: map[*PhysicsObject]struct{}{},
	}
}

// GetTransform returns base + (clock.time - anchorTime)*motion without
// mutating any state.
func (tr *Trajectory) GetTransform() vec2.Transform {
	return tr.base.AddScaled(tr.motion, tr.clock.Time()-tr.anchorTime)
}

// GetMotion returns a copy of the current motion.
func (tr *Trajectory) GetMotion() vec2.Transform { return tr.motion }

// AnchorTime returns the instant at which base is semantically valid.
func (tr *Trajectory) AnchorTime() float64 { return tr.anchorTime }

// TransformAt evaluates the trajectory's affine law at an arbitrary instant
// t, past or future, without mutating any state. Used by the exact solver
// (solver.go) to evaluate the vertex position at a candidate contact time
// ahead of clock.time.
func (tr *Trajectory) TransformAt(t float64) vec2.Transform {
	return tr.base.AddScaled(tr.motion, t-tr.anchorTime)
}

func (tr *Trajectory) addDependant(o *PhysicsObject) {
	if tr.dependants == nil {
		tr.dependants = map[*PhysicsObject]struct{}{}
	}
	tr.dependants[o] = struct{}{}
}

func (tr *Trajectory) removeDependant(o *PhysicsObject) {
	delete(tr.dependants, o)
}

// modify is the sole mutation funnel. It first normalizes (advances base by
// the current motion up to now, then resets anchorTime to now), runs fn to
// edit base and/or motion, then queues a recalculation on every dependant.
// Normalizing first keeps motion semantically a velocity about the CURRENT
// instant, preventing drift from repeated mutation at different times.
func (tr *Trajectory) modify(fn func(tr *Trajectory)) {
	now := tr.clock.Time()
	tr.base = tr.base.AddScaled(tr.motion, now-tr.anchorTime)
	tr.anchorTime = now
	fn(tr)
	for dep := range tr.dependants {
		dep.queueCollisionRecalculation()
	}
}

// SetTransform replaces base outright -- NOT normalized, so the caller can
// set absolute state directly. If motion is omitted the current motion is
// kept; passing one value replaces it. Passing more than one value is a
// shape the constructor cannot interpret and returns ErrUnsupportedArguments
// without mutating the trajectory.
func (tr *Trajectory) SetTransform(base vec2.Transform, motion ...vec2.Transform) error {
	if len(motion) > 1 {
		return ErrUnsupportedArguments
	}
	tr.base = base
	tr.anchorTime = tr.clock.Time()
	if len(motion) > 0 {
		tr.motion = motion[0]
	}
	for dep := range tr.dependants {
		dep.queueCollisionRecalculation()
	}
	return nil
}

// SetMotion replaces motion via modify.
func (tr *Trajectory) SetMotion(m vec2.Transform) {
	tr.modify(func(tr *Trajectory) { tr.motion = m })
}

// Translate adds v to base.P via modify.
func (tr *Trajectory) Translate(v vec2.V2) {
	tr.modify(func(tr *Trajectory) { tr.base.P = tr.base.P.Add(v) })
}

// SetPos replaces base.P via modify.
func (tr *Trajectory) SetPos(v vec2.V2) {
	tr.modify(func(tr *Trajectory) { tr.base.P = v })
}

// Impulse adds v to motion.P via modify.
func (tr *Trajectory) Impulse(v vec2.V2) {
	tr.modify(func(tr *Trajectory) { tr.motion.P = tr.motion.P.Add(v) })
}

// SetVel replaces motion.P via modify.
func (tr *Trajectory) SetVel(v vec2.V2) {
	tr.modify(func(tr *Trajectory) { tr.motion.P = v })
}

// TransformTo sets motion so that, evaluated dt later with no intervening
// mutation, GetTransform() equals target: motion <- (target - current)/dt.
func (tr *Trajectory) TransformTo(target vec2.Transform, dt float64) {
	tr.modify(func(tr *Trajectory) {
		current := tr.GetTransform()
		tr.motion = target.Sub(current).Scale(1 / dt)
	})
}

// Stop zeroes motion via modify.
func (tr *Trajectory) Stop() {
	tr.modify(func(tr *Trajectory) { tr.motion = vec2.Zero() })
}

// PosOf returns the current transform applied to geometry-space point v.
func (tr *Trajectory) PosOf(v vec2.V2) vec2.V2 {
	return tr.GetTransform().Apply(v)
}

// VelOf returns motion applied to v as a point, mapping geometry coordinates
// to the world-space instantaneous velocity of that material point.
func (tr *Trajectory) VelOf(v vec2.V2) vec2.V2 {
	return tr.motion.Apply(v)
}
