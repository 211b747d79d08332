package workflows

// StateMachine enforces lifecycle status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewLoadStateMachine returns the state machine for the load lifecycle
func NewLoadStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"draft":       {"listed"},
			"listed":      {"matched"},
			"matched":     {"negotiating", "listed"},
			"negotiating": {"approved", "listed"},
			"approved":    {"dispatched"},
			"dispatched":  {"in-transit"},
			"in-transit":  {"completed"},
			"completed":   {},
		},
	}
}

// NewTripStateMachine returns the state machine for the trip lifecycle
func NewTripStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"assigned":   {"started"},
			"started":    {"in-transit"},
			"in-transit": {"completed"},
			"completed":  {},
		},
	}
}

// NewContractStateMachine returns the state machine for the contract lifecycle
func NewContractStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"draft":    {"signed"},
			"signed":   {"executed"},
			"executed": {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
