// Package metrics evaluates an assignment against the timing model shared
// with the tour planner (spec.md §4.8/§4.9): per-order distance, time, cost
// and deadline compliance, plus fleet totals. Pure; never fails.
package metrics

import (
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// pickingSecondsPerUnit is the constant picking-time term of the shared
// timing model (spec.md §4.8): 30 seconds per unit quantity.
const pickingSecondsPerUnit = 30

// OrderMetric is one row of the per-order report.
type OrderMetric struct {
	OrderID     string
	AgentID     string
	DistanceM   int
	TimeSec     float64
	CostEuros   float64
	DeadlineOK  bool
}

// AgentTotal is the fleet-level rollup for one agent.
type AgentTotal struct {
	AgentID      string
	OrderCount   int
	TotalDistM   int
	TotalTimeSec float64
	TotalCost    float64
}

// Report is the full metrics evaluation for an assignment.
type Report struct {
	Orders      []OrderMetric
	AgentTotals []AgentTotal
	LateOrders  []string
}

// Evaluate computes a Report for assignment over orders, using agents for
// speed/cost and w for the entry-distance term. Orders unassigned in
// assignment are omitted from Orders but never cause a failure.
func Evaluate(assignment *model.Assignment, orders []*model.Order, agents []*model.Agent, w *model.Warehouse) Report {
	agentByID := make(map[string]*model.Agent, len(agents))
	for _, a := range agents {
		agentByID[a.ID] = a
	}

	totals := make(map[string]*AgentTotal)
	var rows []OrderMetric
	var late []string

	for _, order := range orders {
		agentID := assignment.AgentFor(order.ID)
		if agentID == "" {
			continue
		}
		agent, ok := agentByID[agentID]
		if !ok {
			continue
		}

		distance := entryDistance(order, w)
		timeSec := timeSeconds(distance, agent, order)
		cost := timeSec * agent.CostPerHour / 3600

		deadlineOK := true
		if received, err := order.ReceivedMinutes(); err == nil {
			if deadline, err := order.DeadlineMinutes(); err == nil {
				finishMinutes := received + int(timeSec/60)
				deadlineOK = finishMinutes <= deadline
			}
		}
		if !deadlineOK {
			late = append(late, order.ID)
		}

		rows = append(rows, OrderMetric{
			OrderID:    order.ID,
			AgentID:    agentID,
			DistanceM:  distance,
			TimeSec:    timeSec,
			CostEuros:  cost,
			DeadlineOK: deadlineOK,
		})

		t, ok := totals[agentID]
		if !ok {
			t = &AgentTotal{AgentID: agentID}
			totals[agentID] = t
		}
		t.OrderCount++
		t.TotalDistM += distance
		t.TotalTimeSec += timeSec
		t.TotalCost += cost
	}

	agentTotals := make([]AgentTotal, 0, len(totals))
	for _, a := range agents {
		if t, ok := totals[a.ID]; ok {
			agentTotals = append(agentTotals, *t)
		} else {
			agentTotals = append(agentTotals, AgentTotal{AgentID: a.ID})
		}
	}

	return Report{Orders: rows, AgentTotals: agentTotals, LateOrders: late}
}

// entryDistance sums Manhattan distance from w.Entry to every unique
// location of order (spec.md §4.9).
func entryDistance(order *model.Order, w *model.Warehouse) int {
	total := 0
	for _, loc := range order.UniqueLocations {
		total += w.Entry.Manhattan(loc)
	}
	return total
}

// timeSeconds implements the shared timing model: travel_seconds +
// picking_seconds (invariant P8).
func timeSeconds(distance int, agent *model.Agent, order *model.Order) float64 {
	speed := agent.SpeedMPS
	if speed <= 0 {
		speed = 1
	}
	return float64(distance)/speed + pickingSecondsPerUnit*float64(order.TotalQuantity())
}
