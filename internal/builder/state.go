package builder

// State is the builder's position in its step sequence.
type State int

const (
	StateInit State = iota
	StateBuilt
	StateCreated
	StateCopied
	StateStarted
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateBuilt:
		return "built"
	case StateCreated:
		return "created"
	case StateCopied:
		return "copied"
	case StateStarted:
		return "started"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
