package model

// Assignment is a total mapping order-id -> agent-id. An order-id that maps
// to the empty string is unassigned. Every order supplied to an allocator
// appears exactly once (spec.md §3).
type Assignment struct {
	byOrder map[string]string
}

// NewAssignment builds an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{byOrder: make(map[string]string)}
}

// Set records that orderID was placed on agentID (or left unassigned if
// agentID == "").
func (a *Assignment) Set(orderID, agentID string) {
	a.byOrder[orderID] = agentID
}

// AgentFor returns the agent id assigned to orderID, or "" if unassigned or
// unknown.
func (a *Assignment) AgentFor(orderID string) string {
	return a.byOrder[orderID]
}

// IsAssigned reports whether orderID has a non-empty agent.
func (a *Assignment) IsAssigned(orderID string) bool {
	return a.byOrder[orderID] != ""
}

// OrderIDs returns every order id present in the assignment, in no
// particular order.
func (a *Assignment) OrderIDs() []string {
	out := make([]string, 0, len(a.byOrder))
	for id := range a.byOrder {
		out = append(out, id)
	}
	return out
}

// ByAgent groups order ids by the agent they were assigned to. Unassigned
// orders are omitted.
func (a *Assignment) ByAgent() map[string][]string {
	out := make(map[string][]string)
	for orderID, agentID := range a.byOrder {
		if agentID == "" {
			continue
		}
		out[agentID] = append(out[agentID], orderID)
	}
	return out
}

// Merge copies every entry of other into a, overwriting any pre-existing
// entries with the same order id.
func (a *Assignment) Merge(other *Assignment) {
	for orderID, agentID := range other.byOrder {
		a.byOrder[orderID] = agentID
	}
}
