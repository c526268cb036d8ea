package allocate

import (
	"testing"

	"github.com/RomainR99/Forge-Optipick/internal/model"
)

func TestCPSATMaximizesAssignedCount(t *testing.T) {
	cat := testCatalog()
	w, idx := testWarehouse()
	agents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
	}
	orders := []*model.Order{
		testOrder("O1", "08:00", 4, 4, "P1"),
		testOrder("O2", "08:01", 4, 4, "P1"),
	}

	assignment, err := CPSAT(orders, agents, cat, w, idx, CPSATOptions{Objective: MaximizeAssigned})
	if err != nil {
		t.Fatalf("CPSAT: %v", err)
	}
	assignedCount := 0
	for _, id := range []string{"O1", "O2"} {
		if assignment.IsAssigned(id) {
			assignedCount++
		}
	}
	if assignedCount != 1 {
		t.Errorf("expected exactly one order assigned, got %d", assignedCount)
	}
}

func TestCPSATAgreesWithFirstFitAssignedCountOrBetter(t *testing.T) {
	// Invariant P9: a CP-SAT-family allocator's assigned-order count must be
	// >= First-Fit's, since First-Fit is itself a feasible (if suboptimal)
	// solution the MILP could also choose.
	cat := testCatalog()
	w, idx := testWarehouse()
	ffAgents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
		{ID: "R2", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
	}
	cpAgents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
		{ID: "R2", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
	}
	orders := []*model.Order{
		testOrder("O1", "08:00", 4, 4, "P1"),
		testOrder("O2", "08:01", 4, 4, "P1"),
		testOrder("O3", "08:02", 4, 4, "P1"),
	}

	ffAssignment, err := FirstFit(orders, ffAgents, cat, idx)
	if err != nil {
		t.Fatalf("FirstFit: %v", err)
	}
	cpAssignment, err := CPSAT(orders, cpAgents, cat, w, idx, CPSATOptions{Objective: MaximizeAssigned})
	if err != nil {
		t.Fatalf("CPSAT: %v", err)
	}

	countAssigned := func(a *model.Assignment) int {
		n := 0
		for _, id := range []string{"O1", "O2", "O3"} {
			if a.IsAssigned(id) {
				n++
			}
		}
		return n
	}
	if countAssigned(cpAssignment) < countAssigned(ffAssignment) {
		t.Errorf("CPSAT assigned fewer orders (%d) than FirstFit (%d)", countAssigned(cpAssignment), countAssigned(ffAssignment))
	}
}
