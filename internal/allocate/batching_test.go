package allocate

import (
	"testing"

	"github.com/RomainR99/Forge-Optipick/internal/model"
)

func TestBuildBatchesRespectsWeightCap(t *testing.T) {
	cat := testCatalog()
	orders := []*model.Order{
		testOrder("O1", "08:00", 6, 1, "P1"),
		testOrder("O2", "08:01", 6, 1, "P1"),
	}
	orders[0].Deadline, orders[1].Deadline = "12:00", "12:00"

	batches, err := BuildBatches(orders, cat, BatchOptions{MaxWeightKg: 10, MaxVolumeDm3: 100})
	if err != nil {
		t.Fatalf("BuildBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected two batches (combined weight exceeds cap), got %d", len(batches))
	}
}

func TestBuildBatchesSplitsOnDeadlineWindow(t *testing.T) {
	cat := testCatalog()
	o1 := testOrder("O1", "08:00", 1, 1, "P1")
	o1.Deadline = "09:00"
	o2 := testOrder("O2", "08:01", 1, 1, "P1")
	o2.Deadline = "12:00"

	batches, err := BuildBatches([]*model.Order{o1, o2}, cat, BatchOptions{MaxWeightKg: 100, MaxVolumeDm3: 100, WindowMinutes: 60})
	if err != nil {
		t.Fatalf("BuildBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected deadlines 3 hours apart to split into two batches, got %d", len(batches))
	}
}

func TestBuildBatchesKeepsJointlyIncompatibleOrdersApart(t *testing.T) {
	cat := model.NewCatalog([]*model.Product{
		{ID: "P3", WeightKg: 1, VolumeDm3: 1, Location: model.Location{X: 4, Y: 4}, IncompatibleWith: map[string]struct{}{"P4": {}}},
		{ID: "P4", WeightKg: 1, VolumeDm3: 1, Location: model.Location{X: 4, Y: 5}},
	})
	o1 := testOrder("O1", "08:00", 1, 1, "P3")
	o1.Deadline = "12:00"
	o2 := testOrder("O2", "08:01", 1, 1, "P4")
	o2.Deadline = "12:00"

	batches, err := BuildBatches([]*model.Order{o1, o2}, cat, BatchOptions{MaxWeightKg: 100, MaxVolumeDm3: 100})
	if err != nil {
		t.Fatalf("BuildBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected incompatible orders to land in separate batches, got %d", len(batches))
	}
}

func TestExpandBatchAssignmentPropagatesToMembers(t *testing.T) {
	cat := testCatalog()
	o1 := testOrder("O1", "08:00", 1, 1, "P1")
	o1.Deadline = "12:00"
	o2 := testOrder("O2", "08:01", 1, 1, "P1")
	o2.Deadline = "12:00"

	batches, err := BuildBatches([]*model.Order{o1, o2}, cat, BatchOptions{MaxWeightKg: 100, MaxVolumeDm3: 100})
	if err != nil {
		t.Fatalf("BuildBatches: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected both orders to share one batch, got %d", len(batches))
	}

	batchAssignment := model.NewAssignment()
	batchAssignment.Set(batches[0].ID, "R1")

	expanded := ExpandBatchAssignment(batches, batchAssignment)
	if expanded.AgentFor("O1") != "R1" || expanded.AgentFor("O2") != "R1" {
		t.Errorf("expected both member orders to inherit the batch's agent, got O1=%q O2=%q",
			expanded.AgentFor("O1"), expanded.AgentFor("O2"))
	}
}

func TestRunBatchingNeverAssignsFragileBatchToNoFragileAgent(t *testing.T) {
	cat := model.NewCatalog([]*model.Product{
		{ID: "PF", WeightKg: 1, VolumeDm3: 1, Location: model.Location{X: 1, Y: 0}, Fragile: true},
	})
	order := testOrder("O1", "08:00", 1, 1, "PF")
	order.Deadline = "12:00"
	w, zones := testWarehouse()
	agents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 10, CapacityVolumeDm3: 10, Restrictions: model.Restriction{NoFragile: true}},
	}

	assignment, err := RunBatching([]*model.Order{order}, agents, cat, w, zones,
		BatchOptions{MaxWeightKg: 100, MaxVolumeDm3: 100},
		CPSATOptions{Objective: MaximizeAssigned},
	)
	if err != nil {
		t.Fatalf("RunBatching: %v", err)
	}
	if assignment.AgentFor("O1") == "R1" {
		t.Error("fragile order must not be assigned to a no-fragile agent via the batching path")
	}
}
