// Package iox loads and writes the JSON files of spec.md §6:
// warehouse.json, products.json, agents.json, orders.json on the way in;
// allocation.json, metrics.json, unassigned_orders.json on the way out.
package iox

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

type warehouseFile struct {
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
	Zones map[string]struct {
		Coords [][2]int `json:"coords"`
	} `json:"zones"`
	EntryPoint [2]int `json:"entry_point"`
}

// LoadWarehouse reads warehouse.json from path.
func LoadWarehouse(path string) (*model.Warehouse, error) {
	var raw warehouseFile
	if err := readJSON(path, &raw); err != nil {
		return nil, apperror.NewInputError("load warehouse", err)
	}

	zones := make(map[string][]model.Location, len(raw.Zones))
	for name, z := range raw.Zones {
		locs := make([]model.Location, len(z.Coords))
		for i, c := range z.Coords {
			locs[i] = model.NewLocation(c[0], c[1])
		}
		zones[name] = locs
	}
	entry := model.NewLocation(raw.EntryPoint[0], raw.EntryPoint[1])
	return model.NewWarehouse(raw.Dimensions.Width, raw.Dimensions.Height, entry, zones), nil
}

type productFile struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	WeightKg         float64  `json:"weight"`
	VolumeDm3        float64  `json:"volume"`
	Location         [2]int   `json:"location"`
	Fragile          bool     `json:"fragile"`
	IncompatibleWith []string `json:"incompatible_with"`
	Frequency        int      `json:"frequency"`
}

// LoadCatalog reads products.json from path.
func LoadCatalog(path string) (*model.Catalog, error) {
	var raw []productFile
	if err := readJSON(path, &raw); err != nil {
		return nil, apperror.NewInputError("load products", err)
	}

	products := make([]*model.Product, len(raw))
	for i, p := range raw {
		incompatible := make(map[string]struct{}, len(p.IncompatibleWith))
		for _, id := range p.IncompatibleWith {
			incompatible[id] = struct{}{}
		}
		products[i] = &model.Product{
			ID:               p.ID,
			Name:             p.Name,
			Category:         p.Category,
			WeightKg:         p.WeightKg,
			VolumeDm3:        p.VolumeDm3,
			Location:         model.NewLocation(p.Location[0], p.Location[1]),
			Fragile:          p.Fragile,
			IncompatibleWith: incompatible,
			Frequency:        p.Frequency,
		}
	}
	return model.NewCatalog(products), nil
}

type restrictionFile struct {
	ForbiddenZones  []string `json:"no_zones"`
	NoFragile       bool     `json:"no_fragile"`
	MaxItemWeightKg float64  `json:"max_item_weight"`
}

type agentFile struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	CapacityWeightKg  float64         `json:"capacity_weight"`
	CapacityVolumeDm3 float64         `json:"capacity_volume"`
	SpeedMPS          float64         `json:"speed"`
	CostPerHour       float64         `json:"cost_per_hour"`
	Restrictions      restrictionFile `json:"restrictions"`
}

// LoadAgents reads agents.json from path.
func LoadAgents(path string) ([]*model.Agent, error) {
	var raw []agentFile
	if err := readJSON(path, &raw); err != nil {
		return nil, apperror.NewInputError("load agents", err)
	}

	agents := make([]*model.Agent, len(raw))
	for i, a := range raw {
		forbiddenZones := make(map[string]struct{}, len(a.Restrictions.ForbiddenZones))
		for _, z := range a.Restrictions.ForbiddenZones {
			forbiddenZones[z] = struct{}{}
		}
		kind, err := parseKind(a.Type)
		if err != nil {
			return nil, apperror.NewInputError("load agents", err)
		}
		agents[i] = &model.Agent{
			ID:                a.ID,
			Kind:              kind,
			CapacityWeightKg:  a.CapacityWeightKg,
			CapacityVolumeDm3: a.CapacityVolumeDm3,
			SpeedMPS:          a.SpeedMPS,
			CostPerHour:       a.CostPerHour,
			Restrictions: model.Restriction{
				ForbiddenZones:  forbiddenZones,
				NoFragile:       a.Restrictions.NoFragile,
				MaxItemWeightKg: a.Restrictions.MaxItemWeightKg,
			},
		}
	}
	return agents, nil
}

func parseKind(raw string) (model.Kind, error) {
	switch raw {
	case "robot":
		return model.KindRobot, nil
	case "human":
		return model.KindHuman, nil
	case "cart":
		return model.KindCart, nil
	default:
		return "", fmt.Errorf("unknown agent type %q", raw)
	}
}

type orderItemFile struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderFile struct {
	ID           string          `json:"id"`
	ReceivedTime string          `json:"received_time"`
	Deadline     string          `json:"deadline"`
	Priority     string          `json:"priority"`
	Items        []orderItemFile `json:"items"`
}

// LoadOrders reads orders.json from path. Enrichment (total weight/volume/
// unique locations) is the caller's responsibility via internal/enrichment.
func LoadOrders(path string) ([]*model.Order, error) {
	var raw []orderFile
	if err := readJSON(path, &raw); err != nil {
		return nil, apperror.NewInputError("load orders", err)
	}

	orders := make([]*model.Order, len(raw))
	for i, o := range raw {
		items := make([]model.OrderItem, len(o.Items))
		for j, it := range o.Items {
			items[j] = model.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
		}
		orders[i] = &model.Order{
			ID:           o.ID,
			ReceivedTime: o.ReceivedTime,
			Deadline:     o.Deadline,
			Priority:     o.Priority,
			Items:        items,
		}
	}
	return orders, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
