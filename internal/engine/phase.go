package engine

// Phase is the engine's network state.
type Phase int

const (
	// PhaseIdle means no call is outstanding.
	PhaseIdle Phase = iota
	// PhaseBusy means exactly one call is outstanding.
	PhaseBusy
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBusy:
		return "busy"
	default:
		return "unknown"
	}
}
