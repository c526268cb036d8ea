package allocate

import (
	"time"

	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/feasibility"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// ObjectiveMode selects what a CP/MILP allocator optimizes for (spec.md §4.5).
type ObjectiveMode int

const (
	// MaximizeAssigned maximizes the count of assigned orders (primary mode).
	MaximizeAssigned ObjectiveMode = iota
	// MinimizeCost minimizes total picking cost (secondary mode).
	MinimizeCost
)

// centiScale converts a real quantity to an integer scaled by 100
// ("reals scaled to integers by factor 100 and rounded", spec.md §4.5) so
// capacity sums carry exact MIP/CP semantics instead of float accumulation
// error.
func centiScale(x float64) int {
	if x < 0 {
		return -centiScale(-x)
	}
	return int(x*100 + 0.5)
}

// pickingSeconds is the per-order picking-time term shared by §4.6's cost
// formula and §4.8/§4.9's timing model: 30 seconds per unit quantity.
func pickingSeconds(order *model.Order) float64 {
	return 30 * float64(order.TotalQuantity())
}

// orderAgentCost computes (travel_seconds + picking_seconds) *
// (cost_per_hour/3600) for a candidate (order, agent) pair, per spec.md §4.6.
func orderAgentCost(order *model.Order, agent *model.Agent, w *model.Warehouse) float64 {
	distance := 0
	for _, loc := range order.UniqueLocations {
		distance += w.Entry.Manhattan(loc)
	}
	travelSeconds := float64(distance) / agentSpeedOrOne(agent)
	totalSeconds := travelSeconds + pickingSeconds(order)
	return totalSeconds * agent.CostPerHour / 3600
}

func agentSpeedOrOne(agent *model.Agent) float64 {
	if agent.SpeedMPS <= 0 {
		return 1
	}
	return agent.SpeedMPS
}

// singleAllowed precomputes, for each (order, agent) pair, whether the pair
// passes feasibility.CanTake against a pristine (zero-usage) fleet. Capacity
// across multiple orders on the same agent is handled separately by the
// solver's own capacity-sum constraint; this precomputation still captures
// an order that alone already overruns one agent's capacity, along with
// rules 2–6 of spec.md §4.2.
func singleAllowed(orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, zones *grid.Index) map[[2]int]bool {
	pristine := model.CloneFleet(agents)
	allowed := make(map[[2]int]bool, len(orders)*len(agents))
	for i, order := range orders {
		for a, agent := range pristine {
			allowed[[2]int{i, a}] = feasibility.CanTake(agent, order, catalog, zones, pristine)
		}
	}
	return allowed
}

// jointlyIncompatiblePairs returns the index pairs {i,j} (i<j) of orders
// whose combined product set contains an incompatibility (spec.md §4.5,
// third bullet).
func jointlyIncompatiblePairs(orders []*model.Order, catalog *model.Catalog) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(orders); i++ {
		pi := orderProductSet(orders[i], catalog)
		for j := i + 1; j < len(orders); j++ {
			pj := orderProductSet(orders[j], catalog)
			if anyIncompatible(pi, pj) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func orderProductSet(order *model.Order, catalog *model.Catalog) []*model.Product {
	seen := make(map[string]struct{}, len(order.Items))
	var out []*model.Product
	for _, item := range order.Items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		if p, ok := catalog.Get(item.ProductID); ok {
			out = append(out, p)
		}
	}
	return out
}

func anyIncompatible(a, b []*model.Product) bool {
	for _, pa := range a {
		for _, pb := range b {
			if model.Incompatible(pa, pb) {
				return true
			}
		}
	}
	return false
}

func timeLimitOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

// applyAssignment mutates agents' usage state to match the solved
// assignment and records it in a model.Assignment.
func applyAssignment(orders []*model.Order, agents []*model.Agent, chosen map[int]int) *model.Assignment {
	out := model.NewAssignment()
	for i, order := range orders {
		a, ok := chosen[i]
		if !ok {
			out.Set(order.ID, "")
			continue
		}
		agent := agents[a]
		agent.Assign(order.ID, order.TotalWeightKg, order.TotalVolumeDm3)
		out.Set(order.ID, agent.ID)
	}
	return out
}

func allUnassigned(orders []*model.Order) *model.Assignment {
	out := model.NewAssignment()
	for _, o := range orders {
		out.Set(o.ID, "")
	}
	return out
}

var _ = apperror.ReasonNoFeasibleAgent // referenced by callers building unassigned_orders.json rows
