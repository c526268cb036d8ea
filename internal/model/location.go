// Package model holds the core value types of the warehouse planning domain:
// locations, the warehouse grid, the product catalog, orders, agents,
// assignments, batches, and routes.
package model

import "fmt"

// Location is an immutable grid cell. Zero value is the origin.
type Location struct {
	X int
	Y int
}

// NewLocation builds a Location from a pair of coordinates.
func NewLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

// Manhattan returns the Manhattan (L1) distance between two locations.
func (l Location) Manhattan(other Location) int {
	return absInt(l.X-other.X) + absInt(l.Y-other.Y)
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
