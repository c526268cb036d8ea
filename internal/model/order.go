package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority levels for an order.
const (
	PriorityStandard = "standard"
	PriorityExpress  = "express"
)

// ParseClock parses an "HH:MM" string into minutes since midnight, matching
// the original implementation's parse_hhmm_to_seconds (original_source/src/utils.py)
// scaled from seconds to minutes since every consumer here only needs
// minute-level ordering.
func ParseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, err)
	}
	return h*60 + m, nil
}

// FormatClock formats minutes-since-midnight back into "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OrderItem is one line of an order: a product id and a positive quantity.
type OrderItem struct {
	ProductID string
	Quantity  int
}

// Order is a customer order. ReceivedTime and Deadline are "HH:MM" strings;
// the enriched fields (TotalWeightKg, TotalVolumeDm3, UniqueLocations) are a
// pure function of Items and the catalog, set by internal/enrichment, and
// idempotent to recompute (spec.md §3, §4.3, invariant P3).
type Order struct {
	ID           string
	ReceivedTime string
	Deadline     string
	Priority     string
	Items        []OrderItem

	TotalWeightKg   float64
	TotalVolumeDm3  float64
	UniqueLocations []Location
}

// ReceivedMinutes parses ReceivedTime into minutes since midnight.
func (o *Order) ReceivedMinutes() (int, error) {
	return ParseClock(o.ReceivedTime)
}

// DeadlineMinutes parses Deadline into minutes since midnight.
func (o *Order) DeadlineMinutes() (int, error) {
	return ParseClock(o.Deadline)
}

// TotalQuantity sums the quantities of every item on the order.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
