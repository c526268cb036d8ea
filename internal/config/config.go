// Package config holds the planning tunables of spec.md §4 — solver time
// limits, batching window/caps, the shared timing-model constants, and the
// HTTP listen port — as a plain struct with a Default constructor.
package config

import "time"

// Config holds the runtime-tunable parameters of a planning run.
type Config struct {
	SolverTimeLimit time.Duration

	BatchWindowMinutes int
	MaxBatchWeightKg    float64
	MaxBatchVolumeDm3   float64

	PickingSecondsPerUnit int
	CapacityScaleFactor   int

	FloorLockedRouting bool

	HTTPPort string
}

// Default returns a Config with spec.md's stated defaults: a 30s solver
// time limit, a 60-minute batching window, 30 picking-seconds per unit
// quantity, a ×100 scaling factor for capacity constraints, floor-locked
// routing off, and an HTTP port of 5001.
func Default() *Config {
	return &Config{
		SolverTimeLimit:       30 * time.Second,
		BatchWindowMinutes:    60,
		MaxBatchWeightKg:      0,
		MaxBatchVolumeDm3:     0,
		PickingSecondsPerUnit: 30,
		CapacityScaleFactor:   100,
		FloorLockedRouting:    false,
		HTTPPort:              "5001",
	}
}

// FleetMaxCapacity sets MaxBatchWeightKg/MaxBatchVolumeDm3 to the largest
// per-agent capacity in weights and volumes, so any batch built under these caps is
// transportable by at least one agent (spec.md §4.7).
func (c *Config) FleetMaxCapacity(weights, volumes []float64) {
	for _, w := range weights {
		if w > c.MaxBatchWeightKg {
			c.MaxBatchWeightKg = w
		}
	}
	for _, v := range volumes {
		if v > c.MaxBatchVolumeDm3 {
			c.MaxBatchVolumeDm3 = v
		}
	}
}
