package model

import "testing"

func TestAgentCloneIsIndependent(t *testing.T) {
	orig := &Agent{
		ID:               "R1",
		Kind:             KindRobot,
		CapacityWeightKg: 50,
		Restrictions: Restriction{
			ForbiddenZones: map[string]struct{}{"D": {}},
		},
	}
	clone := orig.Clone()
	clone.Assign("O1", 10, 10)
	clone.Restrictions.ForbiddenZones["E"] = struct{}{}

	if orig.UsedWeightKg != 0 {
		t.Errorf("original agent mutated: UsedWeightKg = %v", orig.UsedWeightKg)
	}
	if _, ok := orig.Restrictions.ForbiddenZones["E"]; ok {
		t.Error("original agent's forbidden zones mutated by clone")
	}
}

func TestAgentAssignAccumulates(t *testing.T) {
	a := &Agent{CapacityWeightKg: 100, CapacityVolumeDm3: 100}
	if !a.CanFitCapacity(40, 40) {
		t.Fatal("expected capacity to fit")
	}
	a.Assign("O1", 40, 40)
	if !a.CanFitCapacity(60, 60) {
		t.Fatal("expected remaining capacity to fit")
	}
	a.Assign("O2", 60, 60)
	if a.CanFitCapacity(1, 0) {
		t.Error("expected capacity to be exhausted")
	}
	if len(a.AssignedOrders) != 2 {
		t.Errorf("AssignedOrders = %v, want 2 entries", a.AssignedOrders)
	}
}

func TestKindPriorityOrdering(t *testing.T) {
	if !(KindPriority(KindRobot) < KindPriority(KindHuman) && KindPriority(KindHuman) < KindPriority(KindCart)) {
		t.Error("expected robot < human < cart priority ordering")
	}
}
