package allocate

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// StrategyCPSAT names the native CP-SAT allocator (spec.md §4.12).
const StrategyCPSAT = "cpsat"

// CPSATOptions configures the model built by CPSAT. Field meaning matches
// DeclarativeOptions. The two allocators build separate models but share
// the helpers in solver_common.go (feasibility precomputation, scaling, cost
// and assignment application).
type CPSATOptions struct {
	Objective ObjectiveMode
	TimeLimit time.Duration
}

// CPSAT allocates orders to agents with an explicit slot encoding: for order
// i, slot[i][0] means "unassigned" and slot[i][a+1] means "assigned to
// agents[a]"; exactly one slot is selected per order. This is
// mathematically equivalent to Declarative's at-most-one formulation, which
// has no explicit "unassigned" variable.
func CPSAT(orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index, opts CPSATOptions) (*model.Assignment, error) {
	if len(orders) == 0 {
		return model.NewAssignment(), nil
	}

	m := mip.NewModel()
	allowed := singleAllowed(orders, agents, catalog, zones)
	numSlots := len(agents) + 1

	slot := make([][]mip.Bool, len(orders))
	for i := range orders {
		slot[i] = make([]mip.Bool, numSlots)
		for s := 0; s < numSlots; s++ {
			slot[i][s] = m.NewBool()
		}
	}

	// Exactly one slot per order (slot 0 is always a legal fallback).
	for i := range orders {
		c := m.NewConstraint(mip.Equal, 1)
		for s := 0; s < numSlots; s++ {
			c.NewTerm(1, slot[i][s])
		}
	}

	// allowed[i][a] == false forces slot[i][a+1] to zero.
	for i := range orders {
		for a := range agents {
			if !allowed[[2]int{i, a}] {
				c := m.NewConstraint(mip.Equal, 0)
				c.NewTerm(1, slot[i][a+1])
			}
		}
	}

	for a, agent := range agents {
		weightC := m.NewConstraint(mip.LessThanOrEqual, float64(centiScale(agent.CapacityWeightKg)))
		volumeC := m.NewConstraint(mip.LessThanOrEqual, float64(centiScale(agent.CapacityVolumeDm3)))
		for i, order := range orders {
			weightC.NewTerm(float64(centiScale(order.TotalWeightKg)), slot[i][a+1])
			volumeC.NewTerm(float64(centiScale(order.TotalVolumeDm3)), slot[i][a+1])
		}
	}

	for _, pair := range jointlyIncompatiblePairs(orders, catalog) {
		i, j := pair[0], pair[1]
		for a := range agents {
			c := m.NewConstraint(mip.LessThanOrEqual, 1)
			c.NewTerm(1, slot[i][a+1])
			c.NewTerm(1, slot[j][a+1])
		}
	}

	objective := m.Objective()
	switch opts.Objective {
	case MinimizeCost:
		objective.SetMinimize()
		for i, order := range orders {
			for a, agent := range agents {
				objective.NewTerm(orderAgentCost(order, agent, w), slot[i][a+1])
			}
		}
	default:
		objective.SetMaximize()
		for i := range orders {
			for a := range agents {
				objective.NewTerm(1, slot[i][a+1])
			}
		}
	}

	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCPSAT, Err: err}
	}

	limit := timeLimitOrDefault(opts.TimeLimit)
	solveOptions := mip.NewSolveOptions()
	if err := solveOptions.SetMaximumDuration(limit); err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCPSAT, Err: err}
	}
	if err := solveOptions.SetMIPGapRelative(0); err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCPSAT, Err: err}
	}
	solveOptions.SetVerbosity(mip.Off)

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, &apperror.SolverUnavailable{Strategy: StrategyCPSAT, Err: err}
	}
	if !solution.HasValues() {
		return nil, &apperror.SolverTimeout{Strategy: StrategyCPSAT, LimitSec: limit.Seconds()}
	}

	chosen := make(map[int]int)
	for i := range orders {
		for a := range agents {
			if solution.Value(slot[i][a+1]) > 0.5 {
				chosen[i] = a
				break
			}
		}
	}
	return applyAssignment(orders, agents, chosen), nil
}
