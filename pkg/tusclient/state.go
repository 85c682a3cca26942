package tusclient

import "github.com/auriora/tusup/pkg/errors"

// State is the lifecycle state of an UploadRecord.
type State int

const (
	Pending State = iota
	Active
	Paused
	Cancelled
	Completed
	Failed
)

// String returns the name used in logs and the persisted snapshot.
func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Active:
		return "Active"
	case Paused:
		return "Paused"
	case Cancelled:
		return "Cancelled"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so State serializes as its
// name in the persisted JSON snapshot rather than as an integer.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Pending":
		*s = Pending
	case "Active":
		*s = Active
	case "Paused":
		*s = Paused
	case "Cancelled":
		*s = Cancelled
	case "Completed":
		*s = Completed
	case "Failed":
		*s = Failed
	default:
		return errors.NewSerdeError("unknown upload state: "+string(text), nil)
	}
	return nil
}

// transitions is the allowed state-transition table: transitions[from][to]
// == true means the move is legal. This is the single source of truth;
// nothing else in the package may mutate State directly.
var transitions = map[State]map[State]bool{
	Pending:   {Active: true, Cancelled: true},
	Active:    {Paused: true, Cancelled: true, Completed: true, Failed: true},
	Paused:    {Active: true, Cancelled: true},
	Cancelled: {},
	Completed: {},
	Failed:    {},
}

// canTransition reports whether moving from 'from' to 'to' is legal.
func canTransition(from, to State) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// isTerminal reports whether s admits no further transitions.
func isTerminal(s State) bool {
	return s == Completed || s == Cancelled || s == Failed
}
