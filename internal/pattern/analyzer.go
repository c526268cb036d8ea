// Package pattern extracts historical demand signals from a set of orders
// (spec.md §4.10), feeding the slotting optimizer and ad-hoc analytics.
package pattern

import (
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// PairKey identifies an unordered pair of product ids, p < q lexically.
type PairKey struct {
	P, Q string
}

func newPairKey(a, b string) PairKey {
	if a <= b {
		return PairKey{P: a, Q: b}
	}
	return PairKey{P: b, Q: a}
}

// Report holds the three demand signals of spec.md §4.10.
type Report struct {
	ProductFrequency map[string]int
	CoOrderedPairs   map[PairKey]int
	ZoneVisits       map[string]int
}

// Analyze computes Report over orders against catalog and zones. Each order
// contributes at most 1 to a given product's frequency, at most 1 to a given
// pair's co-order count, and at most 1 to a given zone's visit count.
func Analyze(orders []*model.Order, catalog *model.Catalog, zones *grid.Index) Report {
	freq := make(map[string]int)
	pairs := make(map[PairKey]int)
	zoneVisits := make(map[string]int)

	for _, order := range orders {
		productIDs := dedupedProductIDs(order)
		for _, pid := range productIDs {
			freq[pid]++
		}
		for i := 0; i < len(productIDs); i++ {
			for j := i + 1; j < len(productIDs); j++ {
				pairs[newPairKey(productIDs[i], productIDs[j])]++
			}
		}

		seenZones := make(map[string]struct{})
		for _, pid := range productIDs {
			product, ok := catalog.Get(pid)
			if !ok {
				continue
			}
			zone, ok := zones.ZoneOf(product.Location)
			if !ok {
				continue
			}
			if _, dup := seenZones[zone]; dup {
				continue
			}
			seenZones[zone] = struct{}{}
			zoneVisits[zone]++
		}
	}

	return Report{ProductFrequency: freq, CoOrderedPairs: pairs, ZoneVisits: zoneVisits}
}

func dedupedProductIDs(order *model.Order) []string {
	seen := make(map[string]struct{}, len(order.Items))
	var out []string
	for _, item := range order.Items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		out = append(out, item.ProductID)
	}
	return out
}
