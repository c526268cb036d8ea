// Package slotting proposes a reorganized product placement (spec.md
// §4.11) and a before/after simulator that quantifies the benefit against
// the First-Fit baseline allocator.
package slotting

import (
	"math/rand"
	"sort"

	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/model"
	"github.com/RomainR99/Forge-Optipick/internal/pattern"
)

// categoryZone names the zone a category is pinned to by rule 1.
var categoryZone = map[string]string{
	model.CategoryFood:     "C",
	model.CategoryChemical: "D",
}

// Propose computes a product_id -> Location reassignment for catalog's
// current products, given their historical orders (for frequency), zones
// and warehouse (spec.md §4.11, rules 1-2; rule 3's affinity grouping is
// satisfied by the leftover-pool ordering, left best-effort as the source
// implementation does).
func Propose(orders []*model.Order, catalog *model.Catalog, w *model.Warehouse, zones *grid.Index) map[string]model.Location {
	freq := pattern.Analyze(orders, catalog, zones).ProductFrequency

	products := catalog.All()
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	var foodIDs, chemicalIDs, otherIDs []string
	for _, p := range products {
		switch p.Category {
		case model.CategoryFood:
			foodIDs = append(foodIDs, p.ID)
		case model.CategoryChemical:
			chemicalIDs = append(chemicalIDs, p.ID)
		default:
			otherIDs = append(otherIDs, p.ID)
		}
	}

	otherSorted := append([]string(nil), otherIDs...)
	sort.SliceStable(otherSorted, func(i, j int) bool {
		return freq[otherSorted[i]] > freq[otherSorted[j]]
	})
	nTop := max(1, len(otherSorted)*20/100)
	if len(otherSorted) == 0 {
		nTop = 0
	}
	topFrequent := make(map[string]struct{}, nTop)
	for _, pid := range otherSorted[:nTop] {
		topFrequent[pid] = struct{}{}
	}

	productLocs := productLocations(products)
	slotsC := locationsInZone(productLocs, zones, "C")
	slotsD := locationsInZone(productLocs, zones, "D")
	flexible := flexibleSlotsByDistance(w, zones, productLocs)
	nZoneA := max(1, len(flexible)*20/100)
	if len(flexible) == 0 {
		nZoneA = 0
	}
	zoneASlots := flexible[:nZoneA]
	restFlexible := flexible[nZoneA:]

	placement := make(map[string]model.Location, len(products))
	used := make(map[model.Location]struct{})

	assign := func(pid string, pool []model.Location) {
		for _, loc := range pool {
			if _, taken := used[loc]; taken {
				continue
			}
			placement[pid] = loc
			used[loc] = struct{}{}
			return
		}
		for _, loc := range restFlexible {
			if _, taken := used[loc]; taken {
				continue
			}
			placement[pid] = loc
			used[loc] = struct{}{}
			return
		}
	}

	for _, pid := range foodIDs {
		assign(pid, slotsC)
	}
	for _, pid := range chemicalIDs {
		assign(pid, slotsD)
	}
	for _, pid := range otherSorted {
		if _, placed := placement[pid]; placed {
			continue
		}
		if _, top := topFrequent[pid]; top {
			assign(pid, zoneASlots)
		} else {
			assign(pid, restFlexible)
		}
	}

	return placement
}

// productLocations lists every product's current location, one per product
// (spec.md §4.11's candidate pool is the set of locations currently in use,
// not the warehouse's declared zone cells — `original_source/src/day5_storage.py`'s
// `_all_locations_from_products`).
func productLocations(products []*model.Product) []model.Location {
	locs := make([]model.Location, len(products))
	for i, p := range products {
		locs[i] = p.Location
	}
	return locs
}

// locationsInZone filters locs down to the ones zones reports as zone.
func locationsInZone(locs []model.Location, zones *grid.Index, zone string) []model.Location {
	var out []model.Location
	for _, loc := range locs {
		if z, zoned := zones.ZoneOf(loc); zoned && z == zone {
			out = append(out, loc)
		}
	}
	return out
}

// flexibleSlotsByDistance returns the deduped, distance-to-entry-sorted set
// of currently-used product locations that fall outside zones C and D
// (includes unzoned cells, per the glossary's "flexible cell" definition).
func flexibleSlotsByDistance(w *model.Warehouse, zones *grid.Index, locs []model.Location) []model.Location {
	seen := make(map[model.Location]struct{})
	var out []model.Location
	for _, loc := range locs {
		if z, zoned := zones.ZoneOf(loc); zoned && (z == "C" || z == "D") {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return w.Entry.Manhattan(out[i]) < w.Entry.Manhattan(out[j])
	})
	return out
}

// Relocate builds a copy of catalog with every product's Location replaced
// per placement where present.
func Relocate(catalog *model.Catalog, placement map[string]model.Location) *model.Catalog {
	products := catalog.All()
	relocated := make([]*model.Product, len(products))
	for i, p := range products {
		cp := *p
		if loc, ok := placement[p.ID]; ok {
			cp.Location = loc
		}
		relocated[i] = &cp
	}
	return model.NewCatalog(relocated)
}

// GenerateTestOrders builds nOrders synthetic orders by sampling the
// catalog's product ids, deterministically from seed (spec.md §4.11).
func GenerateTestOrders(catalog *model.Catalog, nOrders int, seed int64) []*model.Order {
	products := catalog.All()
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if len(products) == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	orders := make([]*model.Order, 0, nOrders)
	for i := 0; i < nOrders; i++ {
		nItems := 1 + rng.Intn(5)
		perm := rng.Perm(len(products))
		if nItems > len(perm) {
			nItems = len(perm)
		}
		var items []model.OrderItem
		seen := make(map[string]struct{})
		for _, idx := range perm[:nItems] {
			pid := products[idx].ID
			if _, dup := seen[pid]; dup {
				continue
			}
			seen[pid] = struct{}{}
			items = append(items, model.OrderItem{ProductID: pid, Quantity: 1 + rng.Intn(3)})
		}
		if len(items) == 0 {
			items = append(items, model.OrderItem{ProductID: products[0].ID, Quantity: 1})
		}
		orders = append(orders, &model.Order{
			ID:           orderID(i),
			ReceivedTime: "09:00",
			Deadline:     "12:00",
			Priority:     model.PriorityStandard,
			Items:        items,
		})
	}
	return orders
}

func orderID(i int) string {
	const prefix = "Sim_Order_"
	n := i + 1
	digits := [3]byte{'0', '0', '0'}
	for pos := 2; pos >= 0 && n > 0; pos-- {
		digits[pos] = byte('0' + n%10)
		n /= 10
	}
	return prefix + string(digits[:])
}
