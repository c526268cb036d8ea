package compare

import (
	"context"
	"testing"

	"github.com/RomainR99/Forge-Optipick/internal/allocate"
	"github.com/RomainR99/Forge-Optipick/internal/config"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

func TestRunIsolatesAgentUsageAcrossStrategies(t *testing.T) {
	catalog := model.NewCatalog([]*model.Product{
		{ID: "P1", WeightKg: 2, VolumeDm3: 2, Location: model.Location{X: 1, Y: 0}},
	})
	w := model.NewWarehouse(10, 10, model.Location{X: 0, Y: 0}, nil)
	zones := grid.BuildIndex(w)
	agents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5, SpeedMPS: 1, CostPerHour: 10},
	}
	orders := []*model.Order{
		{ID: "O1", ReceivedTime: "08:00", Deadline: "23:59",
			Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}},
			TotalWeightKg: 2, TotalVolumeDm3: 2, UniqueLocations: []model.Location{{X: 1, Y: 0}}},
	}

	results := Run(context.Background(), []string{allocate.StrategyFirstFit, allocate.StrategyCP}, orders, agents, catalog, w, zones, config.Default())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if agents[0].UsedWeightKg != 0 {
		t.Errorf("Run must not mutate the caller's original agents; UsedWeightKg = %v", agents[0].UsedWeightKg)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("strategy %s: unexpected error %v", r.Strategy, r.Err)
		}
		if !r.Assignment.IsAssigned("O1") {
			t.Errorf("strategy %s: expected O1 assigned", r.Strategy)
		}
	}
}

func TestRunBatchingStrategyAssignsViaExpandedBatch(t *testing.T) {
	catalog := model.NewCatalog([]*model.Product{
		{ID: "P1", WeightKg: 2, VolumeDm3: 2, Location: model.Location{X: 1, Y: 0}},
	})
	w := model.NewWarehouse(10, 10, model.Location{X: 0, Y: 0}, nil)
	zones := grid.BuildIndex(w)
	agents := []*model.Agent{
		{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 10, CapacityVolumeDm3: 10, SpeedMPS: 1, CostPerHour: 10},
	}
	orders := []*model.Order{
		{ID: "O1", ReceivedTime: "08:00", Deadline: "12:00",
			Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}},
			TotalWeightKg: 2, TotalVolumeDm3: 2, UniqueLocations: []model.Location{{X: 1, Y: 0}}},
		{ID: "O2", ReceivedTime: "08:01", Deadline: "12:00",
			Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}},
			TotalWeightKg: 2, TotalVolumeDm3: 2, UniqueLocations: []model.Location{{X: 1, Y: 0}}},
	}

	results := Run(context.Background(), []string{allocate.StrategyBatchingCPSAT}, orders, agents, catalog, w, zones, config.Default())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if !r.Assignment.IsAssigned("O1") || !r.Assignment.IsAssigned("O2") {
		t.Errorf("expected both batched member orders assigned, got O1=%q O2=%q",
			r.Assignment.AgentFor("O1"), r.Assignment.AgentFor("O2"))
	}
}

func TestRunUnknownStrategyDoesNotAbortOthers(t *testing.T) {
	catalog := model.NewCatalog(nil)
	w := model.NewWarehouse(10, 10, model.Location{X: 0, Y: 0}, nil)
	zones := grid.BuildIndex(w)
	agents := []*model.Agent{{ID: "R1", Kind: model.KindRobot, CapacityWeightKg: 5, CapacityVolumeDm3: 5}}

	results := Run(context.Background(), []string{"bogus", allocate.StrategyFirstFit}, nil, agents, catalog, w, zones, config.Default())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected the unknown strategy to report an error")
	}
	if results[1].Err != nil {
		t.Errorf("expected the valid strategy to still succeed, got %v", results[1].Err)
	}
}
