package allocate

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// StrategyCP names the declarative CP/MILP allocator (spec.md §4.12).
const StrategyCP = "cp"

// DeclarativeOptions configures the CP/MILP model built by Declarative.
// RLPreferenceScores, ZoneCongestionPenalty and OrderIsExpress are accepted
// for forward compatibility with extended objective terms (spec.md §9 open
// question) but are never read by the objective built here — see
// DESIGN.md's Open Question decisions.
type DeclarativeOptions struct {
	Objective ObjectiveMode
	TimeLimit time.Duration

	RLPreferenceScores    map[string]float64
	ZoneCongestionPenalty map[string]float64
	OrderIsExpress        map[string]bool
}

// Declarative allocates orders to agents by solving a one-hot assignment
// MILP (spec.md §4.5): a boolean x[i][a] per (order, agent) pair, at most
// one agent selected per order, per-agent capacity-sum constraints, a
// pairwise constraint forbidding two jointly-incompatible orders from
// sharing an agent, and an objective of either maximizing assigned-order
// count or minimizing total picking cost. The solved assignment is applied
// to the supplied agents' usage state (orders are not mutated).
func Declarative(orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index, opts DeclarativeOptions) (*model.Assignment, error) {
	if len(orders) == 0 {
		return model.NewAssignment(), nil
	}

	m := mip.NewModel()
	allowed := singleAllowed(orders, agents, catalog, zones)

	x := make([][]mip.Bool, len(orders))
	for i := range orders {
		x[i] = make([]mip.Bool, len(agents))
		for a := range agents {
			x[i][a] = m.NewBool()
		}
	}

	// At most one agent per order (zero means unassigned).
	for i := range orders {
		c := m.NewConstraint(mip.LessThanOrEqual, 1)
		for a := range agents {
			c.NewTerm(1, x[i][a])
		}
	}

	// Forbid infeasible (order, agent) pairs outright.
	for i := range orders {
		for a := range agents {
			if !allowed[[2]int{i, a}] {
				c := m.NewConstraint(mip.Equal, 0)
				c.NewTerm(1, x[i][a])
			}
		}
	}

	// Per-agent capacity sums, scaled to integers (spec.md §4.5).
	for a, agent := range agents {
		weightC := m.NewConstraint(mip.LessThanOrEqual, float64(centiScale(agent.CapacityWeightKg)))
		volumeC := m.NewConstraint(mip.LessThanOrEqual, float64(centiScale(agent.CapacityVolumeDm3)))
		for i, order := range orders {
			weightC.NewTerm(float64(centiScale(order.TotalWeightKg)), x[i][a])
			volumeC.NewTerm(float64(centiScale(order.TotalVolumeDm3)), x[i][a])
		}
	}

	// Jointly-incompatible orders may not share an agent.
	for _, pair := range jointlyIncompatiblePairs(orders, catalog) {
		i, j := pair[0], pair[1]
		for a := range agents {
			c := m.NewConstraint(mip.LessThanOrEqual, 1)
			c.NewTerm(1, x[i][a])
			c.NewTerm(1, x[j][a])
		}
	}

	objective := m.Objective()
	switch opts.Objective {
	case MinimizeCost:
		objective.SetMinimize()
		for i, order := range orders {
			for a, agent := range agents {
				objective.NewTerm(orderAgentCost(order, agent, w), x[i][a])
			}
		}
	default:
		objective.SetMaximize()
		for i := range orders {
			for a := range agents {
				objective.NewTerm(1, x[i][a])
			}
		}
	}

	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCP, Err: err}
	}

	limit := timeLimitOrDefault(opts.TimeLimit)
	solveOptions := mip.NewSolveOptions()
	if err := solveOptions.SetMaximumDuration(limit); err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCP, Err: err}
	}
	if err := solveOptions.SetMIPGapRelative(0); err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCP, Err: err}
	}
	solveOptions.SetVerbosity(mip.Off)

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCP, Err: err}
	}
	if !solution.HasValues() {
		return nil, &apperror.SolverTimeout{Strategy: StrategyCP, LimitSec: limit.Seconds()}
	}

	chosen := make(map[int]int)
	for i := range orders {
		for a := range agents {
			if solution.Value(x[i][a]) > 0.5 {
				chosen[i] = a
				break
			}
		}
	}
	return applyAssignment(orders, agents, chosen), nil
}
