package model

// Recognized product categories. Category is a free string elsewhere in the
// data but these two values drive category-based slotting (§4.11 rule 1).
const (
	CategoryFood     = "food"
	CategoryChemical = "chemical"
)

// Product is a catalog entry. Orders reference products by id only — the
// catalog is the single owner of Product values.
type Product struct {
	ID               string
	Name             string
	Category         string
	WeightKg         float64
	VolumeDm3        float64
	Location         Location
	Fragile          bool
	IncompatibleWith map[string]struct{}
	Frequency        int
}

// Catalog is a product-id -> Product lookup table, owned once per planning
// call and read-only for its duration.
type Catalog struct {
	byID map[string]*Product
}

// NewCatalog builds a Catalog from a slice of products.
func NewCatalog(products []*Product) *Catalog {
	c := &Catalog{byID: make(map[string]*Product, len(products))}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Get looks up a product by id. The second return value is false if the id
// is unknown to the catalog.
func (c *Catalog) Get(id string) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every product in the catalog, in no particular order.
func (c *Catalog) All() []*Product {
	out := make([]*Product, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Incompatible reports whether a and b are mutually incompatible, treating
// the incompatible_with relation symmetrically regardless of which side (or
// both, or neither) the loaded data actually declares it on (spec.md §4.2
// rule 2).
func Incompatible(a, b *Product) bool {
	if a == nil || b == nil || a.ID == b.ID {
		return false
	}
	if _, ok := a.IncompatibleWith[b.ID]; ok {
		return true
	}
	if _, ok := b.IncompatibleWith[a.ID]; ok {
		return true
	}
	return false
}
