package jsonkit

// State is the lifecycle state of a single encode invocation.
//
//	NotStarted → BuildingConfiguration → Streaming → Completed | Failed | Cancelled
//
// A failed configuration build moves straight to Failed,
// and a consumer that stops before the configuration is built moves to Cancelled.
type State int

const (
	StateNotStarted State = iota
	StateBuildingConfiguration
	StateStreaming
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateBuildingConfiguration:
		return "building-configuration"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no more transition can follow the state.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

var stateTransitions = map[State][]State{
	StateNotStarted:            {StateBuildingConfiguration, StateCancelled},
	StateBuildingConfiguration: {StateStreaming, StateFailed, StateCancelled},
	StateStreaming:             {StateCompleted, StateFailed, StateCancelled},
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
