package allocate

import (
	"sort"

	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// StrategyBatchingCPSAT names the batching+CP-SAT comparator strategy
// (spec.md §4.12).
const StrategyBatchingCPSAT = "batching_cpsat"

// BatchOptions bounds a batch's capacity and deadline spread (spec.md §4.7).
// MaxWeightKg/MaxVolumeDm3 are typically set to the fleet's maximum
// per-agent capacity so any batch remains transportable by at least one
// agent; WindowMinutes defaults to 60 when zero. BuildBatches uses the caps
// as given; RunBatching replaces a zero cap with the fleet's largest
// per-agent capacity.
type BatchOptions struct {
	MaxWeightKg    float64
	MaxVolumeDm3   float64
	WindowMinutes  int
}

func (o BatchOptions) windowMinutes() int {
	if o.WindowMinutes > 0 {
		return o.WindowMinutes
	}
	return 60
}

// BuildBatches groups enriched orders into batches under opts, greedily and
// deterministically (spec.md §4.7): orders are sorted ascending by deadline;
// each scans existing batches in order and joins the first one whose four
// invariants (weight, volume, deadline window, joint product compatibility)
// still hold after joining; otherwise it opens a new singleton batch.
func BuildBatches(orders []*model.Order, catalog *model.Catalog, opts BatchOptions) ([]*model.Batch, error) {
	sorted := append([]*model.Order(nil), orders...)
	deadlineOf := make(map[string]int, len(sorted))
	for _, o := range sorted {
		d, err := o.DeadlineMinutes()
		if err != nil {
			return nil, err
		}
		deadlineOf[o.ID] = d
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return deadlineOf[sorted[i].ID] < deadlineOf[sorted[j].ID]
	})

	var batches []*model.Batch
	for _, order := range sorted {
		deadline := deadlineOf[order.ID]
		accepted := false
		for _, b := range batches {
			if batchAccepts(b, order, deadline, catalog, opts) {
				b.Accept(order, deadline)
				accepted = true
				break
			}
		}
		if !accepted {
			batches = append(batches, model.NewBatch(order, deadline))
		}
	}
	return batches, nil
}

func batchAccepts(b *model.Batch, order *model.Order, orderDeadline int, catalog *model.Catalog, opts BatchOptions) bool {
	if b.TotalWeightKg+order.TotalWeightKg > opts.MaxWeightKg {
		return false
	}
	if b.TotalVolumeDm3+order.TotalVolumeDm3 > opts.MaxVolumeDm3 {
		return false
	}

	maxDeadline, minDeadline := orderDeadline, orderDeadline
	if b.DeadlineMinutes > maxDeadline {
		maxDeadline = b.DeadlineMinutes
	}
	if b.DeadlineMinutes < minDeadline {
		minDeadline = b.DeadlineMinutes
	}
	for _, o := range b.Orders {
		if dl, err := o.DeadlineMinutes(); err == nil {
			if dl > maxDeadline {
				maxDeadline = dl
			}
			if dl < minDeadline {
				minDeadline = dl
			}
		}
	}
	if maxDeadline-minDeadline > opts.windowMinutes() {
		return false
	}

	return jointlyCompatible(b, order, catalog)
}

// jointlyCompatible reports whether the union of products referenced by
// b.Orders and order is pairwise compatible (spec.md §4.2 rule 2, reused for
// batch invariant (d)).
func jointlyCompatible(b *model.Batch, order *model.Order, catalog *model.Catalog) bool {
	seen := make(map[string]struct{})
	var products []*model.Product
	collect := func(o *model.Order) {
		for _, item := range o.Items {
			if _, dup := seen[item.ProductID]; dup {
				continue
			}
			seen[item.ProductID] = struct{}{}
			if p, ok := catalog.Get(item.ProductID); ok {
				products = append(products, p)
			}
		}
	}
	for _, o := range b.Orders {
		collect(o)
	}
	collect(order)

	for i := 0; i < len(products); i++ {
		for j := i + 1; j < len(products); j++ {
			if model.Incompatible(products[i], products[j]) {
				return false
			}
		}
	}
	return true
}

// RunBatching builds batches from orders, assigns them as whole units via
// CPSAT, and expands the batch-level assignment back onto member orders
// (spec.md §4.7/§4.12, the "batching + CP-SAT" strategy). The synthetic
// batch-as-order carries AggregatedItems() so feasibility.CanTakeReason's
// product-derived rules (compatibility, fragility, per-item weight) see the
// same products a member order would expose, not just its aggregated
// weight/volume.
func RunBatching(orders []*model.Order, agents []*model.Agent, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index, batchOpts BatchOptions, cpsatOpts CPSATOptions) (*model.Assignment, error) {
	var fleetWeight, fleetVolume float64
	for _, a := range agents {
		fleetWeight = max(fleetWeight, a.CapacityWeightKg)
		fleetVolume = max(fleetVolume, a.CapacityVolumeDm3)
	}
	if batchOpts.MaxWeightKg <= 0 {
		batchOpts.MaxWeightKg = fleetWeight
	}
	if batchOpts.MaxVolumeDm3 <= 0 {
		batchOpts.MaxVolumeDm3 = fleetVolume
	}

	batches, err := BuildBatches(orders, catalog, batchOpts)
	if err != nil {
		return nil, err
	}

	batchOrders := make([]*model.Order, len(batches))
	for i, b := range batches {
		batchOrders[i] = &model.Order{
			ID:              b.ID,
			ReceivedTime:    model.FormatClock(0),
			Deadline:        model.FormatClock(b.DeadlineMinutes),
			Items:           b.AggregatedItems(),
			TotalWeightKg:   b.TotalWeightKg,
			TotalVolumeDm3:  b.TotalVolumeDm3,
			UniqueLocations: b.UniqueLocations,
		}
	}

	batchAssignment, err := CPSAT(batchOrders, agents, catalog, w, zones, cpsatOpts)
	if err != nil {
		return nil, err
	}
	return ExpandBatchAssignment(batches, batchAssignment), nil
}

// ExpandBatchAssignment propagates a batch-level assignment to the orders it
// contains (spec.md §4.7, last paragraph).
func ExpandBatchAssignment(batches []*model.Batch, batchAssignment *model.Assignment) *model.Assignment {
	out := model.NewAssignment()
	byID := make(map[string]*model.Batch, len(batches))
	for _, b := range batches {
		byID[b.ID] = b
	}
	for _, b := range batches {
		agentID := batchAssignment.AgentFor(b.ID)
		for _, o := range b.Orders {
			out.Set(o.ID, agentID)
		}
	}
	return out
}
