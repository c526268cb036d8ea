package iox

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadWarehouseParsesZonesAndEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "warehouse.json", `{
		"dimensions": {"width": 10, "height": 10},
		"zones": {"A": {"coords": [[1,0],[2,0]]}},
		"entry_point": [0, 0]
	}`)

	w, err := LoadWarehouse(path)
	if err != nil {
		t.Fatalf("LoadWarehouse: %v", err)
	}
	if w.Width != 10 || w.Height != 10 {
		t.Errorf("dimensions = %dx%d, want 10x10", w.Width, w.Height)
	}
	if len(w.Zones["A"]) != 2 {
		t.Errorf("zone A = %v, want 2 coords", w.Zones["A"])
	}
}

func TestLoadCatalogParsesIncompatibleWith(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "products.json", `[
		{"id": "P1", "weight": 2, "volume": 2, "location": [1,0], "incompatible_with": ["P2"]},
		{"id": "P2", "weight": 1, "volume": 1, "location": [2,0]}
	]`)

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	p1, _ := cat.Get("P1")
	if _, ok := p1.IncompatibleWith["P2"]; !ok {
		t.Error("expected P1 to declare P2 incompatible")
	}
}

func TestLoadAgentsRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "agents.json", `[{"id": "X1", "type": "drone"}]`)

	if _, err := LoadAgents(path); err == nil {
		t.Fatal("expected an error for an unknown agent type")
	}
}

func TestLoadAgentsParsesRestrictions(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "agents.json", `[{
		"id": "R1", "type": "robot", "capacity_weight": 50, "capacity_volume": 50,
		"speed": 1.5, "cost_per_hour": 12,
		"restrictions": {"no_zones": ["D"], "no_fragile": true, "max_item_weight": 10}
	}]`)

	agents, err := LoadAgents(path)
	if err != nil {
		t.Fatalf("LoadAgents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("len(agents) = %d, want 1", len(agents))
	}
	a := agents[0]
	if _, ok := a.Restrictions.ForbiddenZones["D"]; !ok {
		t.Error("expected zone D forbidden")
	}
	if !a.Restrictions.NoFragile {
		t.Error("expected NoFragile = true")
	}
	if a.Restrictions.MaxItemWeightKg != 10 {
		t.Errorf("MaxItemWeightKg = %v, want 10", a.Restrictions.MaxItemWeightKg)
	}
}

func TestLoadOrdersParsesItems(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "orders.json", `[{
		"id": "O1", "received_time": "08:00", "deadline": "12:00", "priority": "standard",
		"items": [{"product_id": "P1", "quantity": 2}]
	}]`)

	orders, err := LoadOrders(path)
	if err != nil {
		t.Fatalf("LoadOrders: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 1 || orders[0].Items[0].Quantity != 2 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}
