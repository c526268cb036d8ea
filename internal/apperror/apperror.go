// Package apperror defines the five error kinds of spec.md §7. InputError
// and InternalInvariant abort the call that produced them; InfeasibleAssignment
// is data (an unassigned_orders.json row), never an exception; SolverUnavailable
// and SolverTimeout are per-strategy and reported in the comparator's output map.
package apperror

import "fmt"

// Reason tags used in unassigned_orders.json (spec.md §6).
const (
	ReasonIncompatibleProducts = "C2_incompatible_products"
	ReasonCapacity             = "capacity"
	ReasonRestriction          = "restriction"
	ReasonNoFeasibleAgent      = "no_feasible_agent"
)

// InputError wraps malformed input: bad JSON, a missing required field, or
// an order referencing an unknown product id.
type InputError struct {
	Op  string
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("input error in %s: %v", e.Op, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// NewInputError wraps err as an InputError tagged with the operation that
// produced it.
func NewInputError(op string, err error) *InputError {
	return &InputError{Op: op, Err: err}
}

// UnknownProduct is the input error raised by enrichment (spec.md §4.3)
// when an order references a product id absent from the catalog. It is its
// own type and is not wrapped in an *InputError.
type UnknownProduct struct {
	ProductID string
	OrderID   string
}

func (e *UnknownProduct) Error() string {
	return fmt.Sprintf("order %s references unknown product %s", e.OrderID, e.ProductID)
}

// InternalInvariant signals a post-assignment invariant violation (e.g. a
// capacity overrun that slipped past the feasibility checker) — fatal to the
// call that detects it.
type InternalInvariant struct {
	Invariant string
	Detail    string
}

func (e *InternalInvariant) Error() string {
	return fmt.Sprintf("internal invariant violated (%s): %s", e.Invariant, e.Detail)
}

// SolverUnavailable signals that an external solver backend could not be
// reached or initialized for a given strategy. It is reported per-strategy;
// the comparator continues running the remaining strategies.
type SolverUnavailable struct {
	Strategy string
	Err      error
}

func (e *SolverUnavailable) Error() string {
	return fmt.Sprintf("%s: solver unavailable: %v", e.Strategy, e.Err)
}
func (e *SolverUnavailable) Unwrap() error { return e.Err }

// SolverTimeout signals that a time-limited solver returned no feasible
// solution within its limit. The allocator returns it with a nil
// assignment, so no all-unassigned result is produced; like
// SolverUnavailable it is reported per-strategy.
type SolverTimeout struct {
	Strategy string
	LimitSec float64
}

func (e *SolverTimeout) Error() string {
	return fmt.Sprintf("%s: solver timed out after %.1fs with no feasible solution", e.Strategy, e.LimitSec)
}

// InfeasibleAssignment records that a specific order could not be placed on
// any agent. It is never returned as a call failure — callers collect these
// into unassigned_orders.json rows.
type InfeasibleAssignment struct {
	OrderID string
	Reason  string
}

func (e *InfeasibleAssignment) Error() string {
	return fmt.Sprintf("order %s unassigned: %s", e.OrderID, e.Reason)
}
