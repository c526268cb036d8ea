package model

import "github.com/google/uuid"

// Batch is a group of orders jointly assignable to a single agent under a
// deadline window (spec.md §3, §4.7). Deadline is the minimum deadline of
// its member orders.
type Batch struct {
	ID              string
	Orders          []*Order
	TotalWeightKg   float64
	TotalVolumeDm3  float64
	UniqueLocations []Location
	DeadlineMinutes int
}

// NewBatch opens a fresh singleton batch around order.
func NewBatch(order *Order, deadlineMinutes int) *Batch {
	return &Batch{
		ID:              uuid.NewString(),
		Orders:          []*Order{order},
		TotalWeightKg:   order.TotalWeightKg,
		TotalVolumeDm3:  order.TotalVolumeDm3,
		UniqueLocations: append([]Location(nil), order.UniqueLocations...),
		DeadlineMinutes: deadlineMinutes,
	}
}

// OrderIDs returns the ids of every order in the batch, preserving insertion
// order.
func (b *Batch) OrderIDs() []string {
	out := make([]string, len(b.Orders))
	for i, o := range b.Orders {
		out[i] = o.ID
	}
	return out
}

// AggregatedItems unions the items of every member order, summing quantity
// on product id collisions. Used to give a synthetic batch-as-order enough
// of order.Items for feasibility.CanTakeReason's product-derived rules
// (compatibility, fragility, per-item weight) to see the same products a
// member order would expose.
func (b *Batch) AggregatedItems() []OrderItem {
	index := make(map[string]int)
	var items []OrderItem
	for _, o := range b.Orders {
		for _, it := range o.Items {
			if i, ok := index[it.ProductID]; ok {
				items[i].Quantity += it.Quantity
				continue
			}
			index[it.ProductID] = len(items)
			items = append(items, it)
		}
	}
	return items
}

// Accept folds order into the batch: totals grow, the deduped location list
// grows with insertion-order dedup on (x,y), and the deadline becomes the
// minimum of the two (spec.md §4.7). Callers must have already verified the
// four batch invariants before calling Accept.
func (b *Batch) Accept(order *Order, deadlineMinutes int) {
	b.Orders = append(b.Orders, order)
	b.TotalWeightKg += order.TotalWeightKg
	b.TotalVolumeDm3 += order.TotalVolumeDm3

	seen := make(map[Location]struct{}, len(b.UniqueLocations))
	for _, loc := range b.UniqueLocations {
		seen[loc] = struct{}{}
	}
	for _, loc := range order.UniqueLocations {
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		b.UniqueLocations = append(b.UniqueLocations, loc)
	}

	if deadlineMinutes < b.DeadlineMinutes {
		b.DeadlineMinutes = deadlineMinutes
	}
}
