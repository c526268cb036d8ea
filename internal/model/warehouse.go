package model

// Warehouse is the immutable grid: its dimensions, entry point, and the
// zone each cell belongs to. Built once per planning call and never mutated
// afterwards.
type Warehouse struct {
	Width   int
	Height  int
	Entry   Location
	Zones   map[string][]Location
}

// NewWarehouse builds a Warehouse from its raw dimensions, entry point, and
// zone→coords mapping as loaded from warehouse.json.
func NewWarehouse(width, height int, entry Location, zones map[string][]Location) *Warehouse {
	if zones == nil {
		zones = make(map[string][]Location)
	}
	return &Warehouse{Width: width, Height: height, Entry: entry, Zones: zones}
}

// InBounds reports whether loc falls within the grid dimensions.
func (w *Warehouse) InBounds(loc Location) bool {
	return loc.X >= 0 && loc.X < w.Width && loc.Y >= 0 && loc.Y < w.Height
}
