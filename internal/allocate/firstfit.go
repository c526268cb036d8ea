// Package allocate implements the four allocation strategies of spec.md §2
// (C4–C7): greedy First-Fit, the declarative CP/MILP allocator, the native
// boolean-variable CP-SAT allocator, and the batching module — all producing
// an order->agent model.Assignment under the feasibility.CanTake predicate.
package allocate

import (
	"sort"

	"github.com/RomainR99/Forge-Optipick/internal/feasibility"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// StrategyFirstFit names this allocator in comparator output (spec.md §4.12).
const StrategyFirstFit = "first_fit"

// FirstFit greedily assigns each order (sorted ascending by received time) to
// the first feasible agent (sorted robot < human < cart, stable) (spec.md
// §4.4). It mutates the supplied agents' runtime usage in place; infeasible
// orders are simply left unassigned. It returns an error only when an
// order's received time does not parse as HH:MM. Given identical
// inputs it produces an identical assignment (invariant P5).
func FirstFit(orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, zones *grid.Index) (*model.Assignment, error) {
	sortedOrders, err := sortOrdersByReceivedTime(orders)
	if err != nil {
		return nil, err
	}
	sortedAgents := sortAgentsByKindPriority(agents)

	assignment := model.NewAssignment()
	for _, order := range sortedOrders {
		assignment.Set(order.ID, "")
		for _, agent := range sortedAgents {
			if feasibility.CanTake(agent, order, catalog, zones, agents) {
				agent.Assign(order.ID, order.TotalWeightKg, order.TotalVolumeDm3)
				assignment.Set(order.ID, agent.ID)
				break
			}
		}
	}
	return assignment, nil
}

// sortOrdersByReceivedTime returns a stable copy of orders sorted ascending
// by parsed received time (HH:MM -> minutes).
func sortOrdersByReceivedTime(orders []*model.Order) ([]*model.Order, error) {
	out := append([]*model.Order(nil), orders...)
	minutes := make(map[string]int, len(out))
	for _, o := range out {
		m, err := o.ReceivedMinutes()
		if err != nil {
			return nil, err
		}
		minutes[o.ID] = m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return minutes[out[i].ID] < minutes[out[j].ID]
	})
	return out, nil
}

// sortAgentsByKindPriority returns a stable copy of agents sorted by
// robot < human < cart, preserving input order within a kind.
func sortAgentsByKindPriority(agents []*model.Agent) []*model.Agent {
	out := append([]*model.Agent(nil), agents...)
	sort.SliceStable(out, func(i, j int) bool {
		return model.KindPriority(out[i].Kind) < model.KindPriority(out[j].Kind)
	})
	return out
}
