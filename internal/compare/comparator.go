// Package compare runs the requested allocation strategies on independent
// fleet clones and reports their spec.md §4.9 metrics side-by-side (C12).
package compare

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/RomainR99/Forge-Optipick/internal/allocate"
	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/config"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/metrics"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// StrategyResult is one strategy's outcome: either an assignment and its
// metrics report, or a structured error if the strategy's backend failed.
type StrategyResult struct {
	Strategy   string
	Assignment *model.Assignment
	Metrics    metrics.Report
	Err        error
}

// Run executes every named strategy in strategies concurrently, each on its
// own clone of agents (so usage state never leaks between strategies), and
// returns one StrategyResult per strategy. A SolverUnavailable or
// SolverTimeout from one strategy never aborts the others (spec.md §4.12,
// §7).
func Run(ctx context.Context, strategies []string, orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index, cfg *config.Config) []StrategyResult {
	results := make([]StrategyResult, len(strategies))

	g, _ := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		i, strategy := i, strategy
		g.Go(func() error {
			results[i] = runOne(strategy, orders, model.CloneFleet(agents), catalog, w, zones, cfg)
			return nil
		})
	}
	_ = g.Wait() // runOne never returns an error; failures are captured per-result

	return results
}

func runOne(strategy string, orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index, cfg *config.Config) StrategyResult {
	var assignment *model.Assignment
	var err error

	switch strategy {
	case allocate.StrategyFirstFit:
		assignment, err = allocate.FirstFit(orders, agents, catalog, zones)
	case allocate.StrategyCP:
		assignment, err = allocate.Declarative(orders, agents, catalog, w, zones, allocate.DeclarativeOptions{
			Objective: allocate.MaximizeAssigned,
			TimeLimit: cfg.SolverTimeLimit,
		})
	case allocate.StrategyCPSAT:
		assignment, err = allocate.CPSAT(orders, agents, catalog, w, zones, allocate.CPSATOptions{
			Objective: allocate.MaximizeAssigned,
			TimeLimit: cfg.SolverTimeLimit,
		})
	case allocate.StrategyBatchingCPSAT:
		assignment, err = allocate.RunBatching(orders, agents, catalog, w, zones,
			allocate.BatchOptions{MaxWeightKg: cfg.MaxBatchWeightKg, MaxVolumeDm3: cfg.MaxBatchVolumeDm3, WindowMinutes: cfg.BatchWindowMinutes},
			allocate.CPSATOptions{Objective: allocate.MaximizeAssigned, TimeLimit: cfg.SolverTimeLimit},
		)
	default:
		err = &apperror.SolverUnavailable{Strategy: strategy, Err: errUnknownStrategy(strategy)}
	}

	if err != nil {
		return StrategyResult{Strategy: strategy, Err: err}
	}
	report := metrics.Evaluate(assignment, orders, agents, w)
	return StrategyResult{Strategy: strategy, Assignment: assignment, Metrics: report}
}

type unknownStrategyError string

func (e unknownStrategyError) Error() string { return "unknown strategy: " + string(e) }

func errUnknownStrategy(strategy string) error { return unknownStrategyError(strategy) }
