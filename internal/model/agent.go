package model

// Kind is a tagged variant replacing the teacher-domain's inheritance
// hierarchy; spec.md §9 flags Robot/Human/Cart subclassing as needing
// re-architecture into exactly this shape.
type Kind string

const (
	KindRobot Kind = "robot"
	KindHuman Kind = "human"
	KindCart  Kind = "cart"
)

// priority orders agents for First-Fit scanning (spec.md §4.4 step 2):
// robot < human < cart, stable within kind.
func (k Kind) priority() int {
	switch k {
	case KindRobot:
		return 0
	case KindHuman:
		return 1
	case KindCart:
		return 2
	default:
		return 3
	}
}

// KindPriority exposes Kind.priority for sort comparators outside this package.
func KindPriority(k Kind) int { return k.priority() }

// Restriction is the explicit configuration bundle replacing a
// dynamically-keyed dict (spec.md §9).
type Restriction struct {
	ForbiddenZones map[string]struct{}
	NoFragile      bool
	MaxItemWeightKg float64 // 0 => no limit
}

// Agent is a picker: robot, human, or cart. Capacity/restrictions are fixed
// for the call; UsedWeightKg/UsedVolumeDm3/AssignedOrders are runtime state
// mutated only by Assign (spec.md §3, monotonic — no unassign).
type Agent struct {
	ID            string
	Kind          Kind
	CapacityWeightKg float64
	CapacityVolumeDm3 float64
	SpeedMPS      float64
	CostPerHour   float64
	Restrictions  Restriction

	UsedWeightKg    float64
	UsedVolumeDm3   float64
	AssignedOrders  []string
}

// Clone returns a deep-enough copy of the agent with runtime state reset,
// so a fresh planning call (or each independent strategy run in the
// comparator, spec.md §5/§9) never shares mutable agent state with its
// caller.
func (a *Agent) Clone() *Agent {
	forbidden := make(map[string]struct{}, len(a.Restrictions.ForbiddenZones))
	for z := range a.Restrictions.ForbiddenZones {
		forbidden[z] = struct{}{}
	}
	clone := *a
	clone.Restrictions.ForbiddenZones = forbidden
	clone.UsedWeightKg = 0
	clone.UsedVolumeDm3 = 0
	clone.AssignedOrders = nil
	return &clone
}

// CanFitCapacity reports whether weight/volume can be added without
// overrunning capacity (spec.md §4.2 rule 1).
func (a *Agent) CanFitCapacity(weightKg, volumeDm3 float64) bool {
	return a.UsedWeightKg+weightKg <= a.CapacityWeightKg &&
		a.UsedVolumeDm3+volumeDm3 <= a.CapacityVolumeDm3
}

// Assign records that orderID has been placed on this agent, updating used
// capacity. The invariant UsedWeightKg<=CapacityWeightKg (and volume) must
// already hold by construction — callers must check CanFitCapacity first;
// Assign itself never fails (spec.md §3 state machine).
func (a *Agent) Assign(orderID string, weightKg, volumeDm3 float64) {
	a.UsedWeightKg += weightKg
	a.UsedVolumeDm3 += volumeDm3
	a.AssignedOrders = append(a.AssignedOrders, orderID)
}

// CloneFleet clones every agent in agents, preserving order.
func CloneFleet(agents []*Agent) []*Agent {
	out := make([]*Agent, len(agents))
	for i, a := range agents {
		out[i] = a.Clone()
	}
	return out
}
