package slotting

import (
	"github.com/RomainR99/Forge-Optipick/internal/allocate"
	"github.com/RomainR99/Forge-Optipick/internal/enrichment"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// SimulationResult is the before/after comparison of spec.md §4.11's
// simulator: First-Fit run over the same test orders under the current and
// the optimized catalog.
type SimulationResult struct {
	OrderCount        int
	DistanceCurrent   int
	DistanceOptimized int
	ReductionPercent  float64
	AssignedCurrent   int
	AssignedOptimized int
}

// RunBeforeAfter proposes an optimized placement from orders' historical
// demand, generates nTestOrders synthetic orders (seeded for
// reproducibility), and runs First-Fit against both the current and the
// optimized catalog, reporting the distance reduction (spec.md §4.11).
func RunBeforeAfter(w *model.Warehouse, orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, zones *grid.Index, nTestOrders int, seed int64) (SimulationResult, error) {
	placement := Propose(orders, catalog, w, zones)
	optimizedCatalog := Relocate(catalog, placement)

	testOrders := GenerateTestOrders(catalog, nTestOrders, seed)

	currentOrders := cloneOrders(testOrders)
	if err := enrichment.EnrichAll(currentOrders, catalog); err != nil {
		return SimulationResult{}, err
	}
	currentAssignment, err := allocate.FirstFit(currentOrders, model.CloneFleet(agents), catalog, zones)
	if err != nil {
		return SimulationResult{}, err
	}
	distCurrent := totalEntryDistance(currentOrders, w)

	optimizedOrders := cloneOrders(testOrders)
	if err := enrichment.EnrichAll(optimizedOrders, optimizedCatalog); err != nil {
		return SimulationResult{}, err
	}
	optimizedAssignment, err := allocate.FirstFit(optimizedOrders, model.CloneFleet(agents), optimizedCatalog, zones)
	if err != nil {
		return SimulationResult{}, err
	}
	distOptimized := totalEntryDistance(optimizedOrders, w)

	reduction := 0.0
	if distCurrent > 0 {
		reduction = float64(distCurrent-distOptimized) / float64(distCurrent) * 100
	}

	return SimulationResult{
		OrderCount:        len(testOrders),
		DistanceCurrent:   distCurrent,
		DistanceOptimized: distOptimized,
		ReductionPercent:  reduction,
		AssignedCurrent:   countAssigned(currentAssignment, currentOrders),
		AssignedOptimized: countAssigned(optimizedAssignment, optimizedOrders),
	}, nil
}

func cloneOrders(orders []*model.Order) []*model.Order {
	out := make([]*model.Order, len(orders))
	for i, o := range orders {
		cp := *o
		cp.Items = append([]model.OrderItem(nil), o.Items...)
		out[i] = &cp
	}
	return out
}

func totalEntryDistance(orders []*model.Order, w *model.Warehouse) int {
	total := 0
	for _, o := range orders {
		for _, loc := range o.UniqueLocations {
			total += w.Entry.Manhattan(loc)
		}
	}
	return total
}

func countAssigned(assignment *model.Assignment, orders []*model.Order) int {
	n := 0
	for _, o := range orders {
		if assignment.IsAssigned(o.ID) {
			n++
		}
	}
	return n
}
