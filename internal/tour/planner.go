// Package tour plans a closed visiting route per agent over its assigned
// orders' unique product locations (spec.md §4.8). The route starts and
// ends at the warehouse entry and visits every location exactly once
// (invariant P7).
package tour

import (
	"time"

	"github.com/RomainR99/Forge-Optipick/internal/model"
)

// Options configures Plan. FloorLocked restricts a floor-locked agent's
// visited cells to those sharing the entry's y-coordinate — a
// visualization-layer heuristic kept dormant by default (spec.md §4.8, §9).
type Options struct {
	FloorLocked bool
	TimeLimit   time.Duration
}

func (o Options) timeLimit() time.Duration {
	if o.TimeLimit <= 0 {
		return 30 * time.Second
	}
	return o.TimeLimit
}

// floorLockedKinds names the agent kinds the source visualization layer
// treats as floor-locked (spec.md §4.8).
var floorLockedKinds = map[model.Kind]bool{
	model.KindRobot: true,
	model.KindCart:  true,
}

// Plan builds a closed tour for agent over the unique locations of orders,
// starting and ending at w.Entry. It constructs a cheap starting tour with
// nearest-neighbor construction, then improves it with 2-opt local search until
// no swap helps or opts.TimeLimit elapses. Ties in both phases favor the
// lower-index location for determinism.
func Plan(agent *model.Agent, orders []*model.Order, w *model.Warehouse, catalog *model.Catalog, opts Options) *model.Route {
	locs := uniqueLocations(orders)
	if opts.FloorLocked && floorLockedKinds[agent.Kind] {
		locs = filterFloorLocked(locs, w.Entry)
	}
	if len(locs) == 0 {
		return &model.Route{AgentID: agent.ID, Stops: []model.Location{w.Entry, w.Entry}, DistanceUnits: 0}
	}

	points := append([]model.Location{w.Entry}, locs...)
	order := nearestNeighborTour(points)
	order = twoOpt(points, order, opts.timeLimit())

	stops := make([]model.Location, 0, len(order)+1)
	for _, idx := range order {
		stops = append(stops, points[idx])
	}
	stops = append(stops, w.Entry)

	return &model.Route{AgentID: agent.ID, Stops: stops, DistanceUnits: tourLength(points, order, true)}
}

// uniqueLocations collects the deduped union of orders' UniqueLocations,
// in first-seen order.
func uniqueLocations(orders []*model.Order) []model.Location {
	seen := make(map[model.Location]struct{})
	var out []model.Location
	for _, o := range orders {
		for _, loc := range o.UniqueLocations {
			if _, dup := seen[loc]; dup {
				continue
			}
			seen[loc] = struct{}{}
			out = append(out, loc)
		}
	}
	return out
}

func filterFloorLocked(locs []model.Location, entry model.Location) []model.Location {
	out := locs[:0:0]
	for _, l := range locs {
		if l.Y == entry.Y {
			out = append(out, l)
		}
	}
	return out
}

// nearestNeighborTour returns a permutation of indices into points (index 0
// is always the entry, visited first) built by repeatedly choosing the
// nearest unvisited point; ties favor the lower index.
func nearestNeighborTour(points []model.Location) []int {
	n := len(points)
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[0] = true
	order = append(order, 0)

	for len(order) < n {
		best := -1
		bestDist := -1
		for i := 1; i < n; i++ {
			if visited[i] {
				continue
			}
			d := points[current].Manhattan(points[i])
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
		visited[best] = true
		order = append(order, best)
		current = best
	}
	return order
}

// twoOpt improves order by repeatedly reversing segments that shorten the
// closed tour, stopping at the first full pass with no improvement or when
// limit elapses. Candidate swaps are scanned in index order so the result
// is deterministic.
func twoOpt(points []model.Location, order []int, limit time.Duration) []int {
	n := len(order)
	if n < 4 {
		return order
	}
	deadline := time.Now().Add(limit)

	improved := true
	for improved {
		improved = false
		if time.Now().After(deadline) {
			break
		}
		for i := 0; i < n-1; i++ {
			for j := i + 2; j < n; j++ {
				if i == 0 && j == n-1 {
					continue // would reverse the whole closed tour into itself
				}
				a, b := points[order[i]], points[order[i+1]]
				c, d := points[order[j]], points[order[(j+1)%n]]
				before := a.Manhattan(b) + c.Manhattan(d)
				after := a.Manhattan(c) + b.Manhattan(d)
				if after < before {
					reverse(order, i+1, j)
					improved = true
				}
			}
			if time.Now().After(deadline) {
				return order
			}
		}
	}
	return order
}

func reverse(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}

// tourLength sums Manhattan distance along order over points, closing back
// to points[order[0]] when closed is true.
func tourLength(points []model.Location, order []int, closed bool) int {
	total := 0
	for k := 0; k+1 < len(order); k++ {
		total += points[order[k]].Manhattan(points[order[k+1]])
	}
	if closed && len(order) > 0 {
		total += points[order[len(order)-1]].Manhattan(points[order[0]])
	}
	return total
}
