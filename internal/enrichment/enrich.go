// Package enrichment computes each order's derived fields — total weight,
// total volume, and the insertion-order-deduped list of product locations —
// as a pure function of its items and the product catalog (spec.md §4.3).
// Re-enriching is idempotent (invariant P3).
package enrichment

import (
	"github.com/RomainR99/Forge-Optipick/internal/apperror"
	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// Enrich populates order's derived fields from its items and the catalog.
// It returns an *apperror.UnknownProduct if an item references a product id
// the catalog doesn't have.
func Enrich(order *model.Order, catalog *model.Catalog) error {
	var totalWeight, totalVolume float64
	var locs []model.Location
	seen := make(map[model.Location]struct{})

	for _, item := range order.Items {
		product, ok := catalog.Get(item.ProductID)
		if !ok {
			return &apperror.UnknownProduct{ProductID: item.ProductID, OrderID: order.ID}
		}
		qty := float64(item.Quantity)
		totalWeight += product.WeightKg * qty
		totalVolume += product.VolumeDm3 * qty

		if _, dup := seen[product.Location]; !dup {
			seen[product.Location] = struct{}{}
			locs = append(locs, product.Location)
		}
	}

	order.TotalWeightKg = totalWeight
	order.TotalVolumeDm3 = totalVolume
	order.UniqueLocations = locs
	return nil
}

// EnrichAll enriches every order in orders, stopping at the first error.
func EnrichAll(orders []*model.Order, catalog *model.Catalog) error {
	for _, o := range orders {
		if err := Enrich(o, catalog); err != nil {
			return err
		}
	}
	return nil
}
