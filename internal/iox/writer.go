package iox

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/feasibility"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/metrics"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// WriteAllocation writes allocation.json: every agent present, possibly
// with an empty list.
func WriteAllocation(path string, assignment *model.Assignment, agents []*model.Agent) error {
	byAgent := assignment.ByAgent()
	out := make(map[string][]string, len(agents))
	for _, a := range agents {
		orders := byAgent[a.ID]
		sort.Strings(orders)
		out[a.ID] = orders
		if out[a.ID] == nil {
			out[a.ID] = []string{}
		}
	}
	return writeJSON(path, out)
}

type metricsRow struct {
	Agent  string  `json:"agent"`
	Orders int     `json:"orders"`
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

// WriteMetrics writes metrics.json: one row per agent with its assigned
// order count and cumulative weight/volume, derived from the post-
// allocation agent usage state.
func WriteMetrics(path string, agents []*model.Agent) error {
	rows := make([]metricsRow, len(agents))
	for i, a := range agents {
		rows[i] = metricsRow{
			Agent:  a.ID,
			Orders: len(a.AssignedOrders),
			Weight: a.UsedWeightKg,
			Volume: a.UsedVolumeDm3,
		}
	}
	return writeJSON(path, rows)
}

type unassignedRow struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// WriteUnassignedOrders writes unassigned_orders.json: every order left
// unassigned by assignment, tagged with the reason feasibility.CanTakeReason
// gives for the first agent (in agents order) that rejects it, or
// no_feasible_agent when no agent rejects it.
func WriteUnassignedOrders(path string, assignment *model.Assignment, orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, zones *grid.Index) error {
	var rows []unassignedRow
	for _, order := range orders {
		if assignment.IsAssigned(order.ID) {
			continue
		}
		rows = append(rows, unassignedRow{OrderID: order.ID, Reason: reasonFor(order, agents, catalog, zones)})
	}
	if rows == nil {
		rows = []unassignedRow{}
	}
	return writeJSON(path, rows)
}

func reasonFor(order *model.Order, agents []*model.Agent, catalog *model.Catalog, zones *grid.Index) string {
	for _, a := range agents {
		_, reason := feasibility.CanTakeReason(a, order, catalog, zones, agents)
		if reason != "" {
			return reason
		}
	}
	return apperror.ReasonNoFeasibleAgent
}

type metricsReportRow struct {
	OrderID    string  `json:"order_id"`
	AgentID    string  `json:"agent_id"`
	DistanceM  int     `json:"distance_m"`
	TimeSec    float64 `json:"time_sec"`
	CostEuros  float64 `json:"cost_euros"`
	DeadlineOK bool    `json:"deadline_ok"`
}

// WriteMetricsReport writes the per-order rows of a metrics.Report (as
// produced by metrics.Evaluate) to path as JSON.
func WriteMetricsReport(path string, report metrics.Report) error {
	rows := make([]metricsReportRow, len(report.Orders))
	for i, r := range report.Orders {
		rows[i] = metricsReportRow{
			OrderID:    r.OrderID,
			AgentID:    r.AgentID,
			DistanceM:  r.DistanceM,
			TimeSec:    r.TimeSec,
			CostEuros:  r.CostEuros,
			DeadlineOK: r.DeadlineOK,
		}
	}
	return writeJSON(path, rows)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
