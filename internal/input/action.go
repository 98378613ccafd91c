// Package input turns raw key input into the logical actions the game consumes.
package input

// Action is a logical input event. The simulation never sees raw keys.
type Action int

const (
	ActionThrustOn Action = iota
	ActionThrustOff
	ActionRotateLeft
	ActionRotateRight
	ActionFire
	ActionPause
	ActionRestart
	// ActionQuit is handled by frontends and ignored by the simulation.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionThrustOn:
		return "thrust-on"
	case ActionThrustOff:
		return "thrust-off"
	case ActionRotateLeft:
		return "rotate-left"
	case ActionRotateRight:
		return "rotate-right"
	case ActionFire:
		return "fire"
	case ActionPause:
		return "pause"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Held is the set of logical keys currently down, as sampled by a frontend.
type Held struct {
	Thrust  bool
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool
	Restart bool
	Quit    bool
}

// Mapper converts per-frame held-key samples into actions. Thrust, pause,
// restart and quit fire on edges; rotation and fire repeat while held.
type Mapper struct {
	prev Held
	buf  []Action
}

// Map returns the actions for one frame. The returned slice is reused by the next call.
func (m *Mapper) Map(h Held) []Action {
	m.buf = m.buf[:0]
	if h.Thrust && !m.prev.Thrust {
		m.buf = append(m.buf, ActionThrustOn)
	} else if !h.Thrust && m.prev.Thrust {
		m.buf = append(m.buf, ActionThrustOff)
	}
	if h.Left {
		m.buf = append(m.buf, ActionRotateLeft)
	}
	if h.Right {
		m.buf = append(m.buf, ActionRotateRight)
	}
	if h.Fire {
		m.buf = append(m.buf, ActionFire)
	}
	if h.Pause && !m.prev.Pause {
		m.buf = append(m.buf, ActionPause)
	}
	if h.Restart && !m.prev.Restart {
		m.buf = append(m.buf, ActionRestart)
	}
	if h.Quit && !m.prev.Quit {
		m.buf = append(m.buf, ActionQuit)
	}
	m.prev = h
	return m.buf
}

// Reset forgets the previous sample, so a key still held counts as a new press.
func (m *Mapper) Reset() {
	m.prev = Held{}
}
