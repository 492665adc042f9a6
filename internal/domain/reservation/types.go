package reservation

type State string

const (
	StatePending    State = "pending"
	StateConfirmed  State = "confirmed"
	StateCheckedIn  State = "checked_in"
	StateCheckedOut State = "checked_out"
	StateCancelled  State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateConfirmed, StateCheckedIn, StateCheckedOut, StateCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports states no transition leaves.
func (s State) IsTerminal() bool {
	return s == StateCancelled || s == StateCheckedOut
}

// HoldsRoom reports whether a reservation in this state blocks its room for the stay.
func (s State) HoldsRoom() bool {
	return !s.IsTerminal()
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", ErrInvalidState
	}
	return state, nil
}
