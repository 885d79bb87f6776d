// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/darcyvilkner/chrona-physics/vec2"
)

func newTestObject(t *testing.T, clock *Clock) *PhysicsObject {
	t.Helper()
	return NewPhysicsObject(UnitSquare(), NewTrajectory(clock, vec2.Identity(), vec2.Zero()))
}

func TestCollisionRuleRegistersInBothGroups(t *testing.T) {
	a, b := NewCollisionGroup(), NewCollisionGroup()
	r := NewCollisionRule(a, b, DefaultToleranceProfile(), nil, true)

	if len(a.rulesA) != 1 || a.rulesA[0] != r {
		t.Errorf("groupA.rulesA = %v, want [r]", a.rulesA)
	}
	if len(b.rulesB) != 1 || b.rulesB[0] != r {
		t.Errorf("groupB.rulesB = %v, want [r]", b.rulesB)
	}
}

func TestCollisionRuleDisableRemovesFromBothGroups(t *testing.T) {
	a, b := NewCollisionGroup(), NewCollisionGroup()
	r := NewCollisionRule(a, b, DefaultToleranceProfile(), nil, true)
	r.Disable()

	if len(a.rulesA) != 0 {
		t.Errorf("groupA.rulesA after Disable = %v, want empty", a.rulesA)
	}
	if len(b.rulesB) != 0 {
		t.Errorf("groupB.rulesB after Disable = %v, want empty", b.rulesB)
	}
	if r.Enabled() {
		t.Error("Enabled() after Disable() = true")
	}
}

func TestCollisionRuleEnableRestoresMembership(t *testing.T) {
	a, b := NewCollisionGroup(), NewCollisionGroup()
	r := NewCollisionRule(a, b, DefaultToleranceProfile(), nil, true)
	r.Disable()
	r.Enable()

	if len(a.rulesA) != 1 {
		t.Errorf("groupA.rulesA after re-Enable = %v, want [r]", a.rulesA)
	}
	if len(b.rulesB) != 1 {
		t.Errorf("groupB.rulesB after re-Enable = %v, want [r]", b.rulesB)
	}
}

func TestCollisionRuleRecalcCountIncrementsOnTransitions(t *testing.T) {
	a, b := NewCollisionGroup(), NewCollisionGroup()
	r := NewCollisionRule(a, b, DefaultToleranceProfile(), nil, true)
	if r.RecalcCount() != 1 {
		t.Fatalf("RecalcCount() after creation = %d, want 1", r.RecalcCount())
	}
	r.Disable()
	r.Enable()
	if r.RecalcCount() != 3 {
		t.Errorf("RecalcCount() after Disable+Enable = %d, want 3", r.RecalcCount())
	}
}

func TestJoinLeaveGroupQueuesRecalculation(t *testing.T) {
	clock := NewClock()
	obj := newTestObject(t, clock)
	g := NewCollisionGroup()

	obj.JoinGroup(g)
	if !obj.everQueued {
		t.Error("JoinGroup() did not queue a recalculation")
	}
	if _, ok := g.members[obj]; !ok {
		t.Error("JoinGroup() did not add object to group membership")
	}

	obj.LeaveGroup(g)
	if _, ok := g.members[obj]; ok {
		t.Error("LeaveGroup() left object in group membership")
	}
}

func TestDisableUnsubscribesFromEverything(t *testing.T) {
	clock := NewClock()
	obj := newTestObject(t, clock)
	g := NewCollisionGroup()
	obj.JoinGroup(g)

	obj.Disable()
	if !obj.Disabled() {
		t.Fatal("Disabled() = false after Disable()")
	}
	if _, ok := g.members[obj]; ok {
		t.Error("Disable() did not remove object from its groups")
	}
	if _, ok := obj.geometry.dependants[obj]; ok {
		t.Error("Disable() did not unsubscribe from geometry")
	}
	if _, ok := obj.trajectory.dependants[obj]; ok {
		t.Error("Disable() did not unsubscribe from trajectory")
	}
}
