// Package grid builds a zone index over a warehouse grid and provides the
// Manhattan-distance primitive tour planning and metrics are built on
// (spec.md §4.1). It generalizes the teacher's internal/graph package (an
// adjacency map of solar systems plus region/security lookups) from a
// jump-graph to a zone index over grid cells.
package grid

import "github.com/RomainR99/Forge-Optipick/internal/model"

// Index maps a location to the zone it belongs to, built once in time
// proportional to the total zone coordinate count (spec.md §4.1).
type Index struct {
	zoneOf map[model.Location]string
}

// BuildIndex constructs a zone Index from a warehouse's zone->coords map.
// A cell with no zone entry is "unzoned" and ZoneOf returns ("", false) for it.
func BuildIndex(w *model.Warehouse) *Index {
	idx := &Index{zoneOf: make(map[model.Location]string)}
	for zone, coords := range w.Zones {
		for _, loc := range coords {
			idx.zoneOf[loc] = zone
		}
	}
	return idx
}

// ZoneOf returns the zone name for loc, or ("", false) if the cell is
// unzoned.
func (idx *Index) ZoneOf(loc model.Location) (string, bool) {
	zone, ok := idx.zoneOf[loc]
	return zone, ok
}

// InZone reports whether loc belongs to the named zone.
func (idx *Index) InZone(loc model.Location, zone string) bool {
	z, ok := idx.zoneOf[loc]
	return ok && z == zone
}

// Distance returns the Manhattan distance between two locations.
func Distance(a, b model.Location) int {
	return a.Manhattan(b)
}

// DistanceFromEntry returns the Manhattan distance from the warehouse entry
// to loc.
func DistanceFromEntry(w *model.Warehouse, loc model.Location) int {
	return w.Entry.Manhattan(loc)
}
