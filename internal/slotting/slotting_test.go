package slotting

import (
	"testing"

	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

func testWarehouseForSlotting() (*model.Warehouse, *grid.Index) {
	w := model.NewWarehouse(10, 10, model.Location{X: 0, Y: 0}, map[string][]model.Location{
		"A": {{X: 1, Y: 0}, {X: 2, Y: 0}},
		"C": {{X: 8, Y: 8}},
		"D": {{X: 9, Y: 9}},
	})
	return w, grid.BuildIndex(w)
}

func TestProposePlacesFoodInZoneCAndChemicalInZoneD(t *testing.T) {
	// Candidate slots are drawn from currently-used product locations
	// (spec.md §4.11), so the food/chemical products must already sit on
	// zone C/D cells for the pool to contain any.
	catalog := model.NewCatalog([]*model.Product{
		{ID: "F1", Category: model.CategoryFood, Location: model.Location{X: 8, Y: 8}},
		{ID: "CH1", Category: model.CategoryChemical, Location: model.Location{X: 9, Y: 9}},
	})
	w, zones := testWarehouseForSlotting()

	placement := Propose(nil, catalog, w, zones)
	if zone, ok := zones.ZoneOf(placement["F1"]); !ok || zone != "C" {
		t.Errorf("expected F1 placed in zone C, got %v (zone %q)", placement["F1"], zone)
	}
	if zone, ok := zones.ZoneOf(placement["CH1"]); !ok || zone != "D" {
		t.Errorf("expected CH1 placed in zone D, got %v (zone %q)", placement["CH1"], zone)
	}
}

func TestProposeFavorsFrequentProductsNearEntry(t *testing.T) {
	catalog := model.NewCatalog([]*model.Product{
		{ID: "P1", Location: model.Location{X: 1, Y: 0}},
		{ID: "P2", Location: model.Location{X: 2, Y: 0}},
	})
	w, zones := testWarehouseForSlotting()
	orders := []*model.Order{
		{ID: "O1", Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}}},
		{ID: "O2", Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}}},
		{ID: "O3", Items: []model.OrderItem{{ProductID: "P1", Quantity: 1}}},
	}

	placement := Propose(orders, catalog, w, zones)
	nearEntry := w.Entry.Manhattan(placement["P1"])
	other := w.Entry.Manhattan(placement["P2"])
	if nearEntry > other {
		t.Errorf("expected the more frequent product P1 closer to entry: P1=%d P2=%d", nearEntry, other)
	}
}

func TestGenerateTestOrdersIsDeterministic(t *testing.T) {
	catalog := model.NewCatalog([]*model.Product{
		{ID: "P1"}, {ID: "P2"}, {ID: "P3"},
	})
	first := GenerateTestOrders(catalog, 10, 42)
	second := GenerateTestOrders(catalog, 10, 42)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || len(first[i].Items) != len(second[i].Items) {
			t.Errorf("order %d differs between runs with the same seed", i)
		}
	}
}

func TestRelocateAppliesPlacementWithoutMutatingOriginal(t *testing.T) {
	catalog := model.NewCatalog([]*model.Product{
		{ID: "P1", Location: model.Location{X: 1, Y: 1}},
	})
	relocated := Relocate(catalog, map[string]model.Location{"P1": {X: 9, Y: 9}})

	original, _ := catalog.Get("P1")
	if original.Location != (model.Location{X: 1, Y: 1}) {
		t.Error("Relocate must not mutate the original catalog")
	}
	moved, _ := relocated.Get("P1")
	if moved.Location != (model.Location{X: 9, Y: 9}) {
		t.Errorf("relocated P1 = %v, want {9 9}", moved.Location)
	}
}
