// Package feasibility implements the pure can_take predicate (spec.md §4.2):
// capacity, intra-order product compatibility, zone restriction, fragility,
// per-item weight, and cart-needs-human coupling. It never fails — it
// returns a bool, optionally accompanied by the first reason that made it
// false for callers that need to report why (unassigned_orders.json, §6).
package feasibility

import (
	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// CanTake reports whether agent can take order given the catalog, the
// warehouse zone index, and the full fleet (needed for the cart-coupling
// rule, which checks fleet composition rather than current free capacity —
// spec.md §4.2 rule 6, preserved as a conservative approximation per §9).
func CanTake(agent *model.Agent, order *model.Order, catalog *model.Catalog, zones *grid.Index, fleet []*model.Agent) bool {
	ok, _ := CanTakeReason(agent, order, catalog, zones, fleet)
	return ok
}

// CanTakeReason is CanTake plus the first violated rule's reason tag (one of
// apperror.Reason*) when the result is false. The reason is "" when ok.
func CanTakeReason(agent *model.Agent, order *model.Order, catalog *model.Catalog, zones *grid.Index, fleet []*model.Agent) (bool, string) {
	// Rule 1: capacity.
	if !agent.CanFitCapacity(order.TotalWeightKg, order.TotalVolumeDm3) {
		return false, apperror.ReasonCapacity
	}

	// Rule 2: intra-order product compatibility (symmetric).
	products := orderProducts(order, catalog)
	for i := 0; i < len(products); i++ {
		for j := i + 1; j < len(products); j++ {
			if model.Incompatible(products[i], products[j]) {
				return false, apperror.ReasonIncompatibleProducts
			}
		}
	}

	// Rule 3: zone restriction. Unzoned cells are always permitted.
	for _, loc := range order.UniqueLocations {
		zone, zoned := zones.ZoneOf(loc)
		if !zoned {
			continue
		}
		if _, forbidden := agent.Restrictions.ForbiddenZones[zone]; forbidden {
			return false, apperror.ReasonRestriction
		}
	}

	// Rule 4: fragility.
	if agent.Restrictions.NoFragile {
		for _, p := range products {
			if p.Fragile {
				return false, apperror.ReasonRestriction
			}
		}
	}

	// Rule 5: per-item weight.
	if agent.Restrictions.MaxItemWeightKg > 0 {
		for _, p := range products {
			if p.WeightKg > agent.Restrictions.MaxItemWeightKg {
				return false, apperror.ReasonRestriction
			}
		}
	}

	// Rule 6: cart coupling — checked against fleet composition (total
	// capacity of some human), not current free capacity (spec.md §9).
	if agent.Kind == model.KindCart {
		if !anyHumanCanCarry(fleet, order) {
			return false, apperror.ReasonRestriction
		}
	}

	return true, ""
}

func orderProducts(order *model.Order, catalog *model.Catalog) []*model.Product {
	seen := make(map[string]struct{}, len(order.Items))
	products := make([]*model.Product, 0, len(order.Items))
	for _, item := range order.Items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		if p, ok := catalog.Get(item.ProductID); ok {
			products = append(products, p)
		}
	}
	return products
}

func anyHumanCanCarry(fleet []*model.Agent, order *model.Order) bool {
	for _, a := range fleet {
		if a.Kind != model.KindHuman {
			continue
		}
		if order.TotalWeightKg <= a.CapacityWeightKg && order.TotalVolumeDm3 <= a.CapacityVolumeDm3 {
			return true
		}
	}
	return false
}
