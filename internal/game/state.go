package game

// State is the top-level game state.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Trigger is an occurrence that may move the state machine.
type Trigger int

const (
	TriggerPause Trigger = iota
	TriggerResume
	TriggerLivesDepleted
	TriggerRestart
)

func (t Trigger) String() string {
	switch t {
	case TriggerPause:
		return "pause"
	case TriggerResume:
		return "resume"
	case TriggerLivesDepleted:
		return "lives-depleted"
	case TriggerRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Transition is the only place state changes are decided. It returns the
// next state and whether the trigger applies in from; inapplicable
// triggers leave the state unchanged.
func Transition(from State, t Trigger) (State, bool) {
	switch {
	case from == StatePlaying && t == TriggerPause:
		return StatePaused, true
	case from == StatePaused && t == TriggerResume:
		return StatePlaying, true
	case from == StatePlaying && t == TriggerLivesDepleted:
		return StateGameOver, true
	case from == StateGameOver && t == TriggerRestart:
		return StatePlaying, true
	default:
		return from, false
	}
}
