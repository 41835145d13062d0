package core

// Action represents a discrete game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter - start a session from the menu
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - restart after game over or victory
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the abstract input snapshot for one simulation tick.
// Discrete actions are edge-triggered; Move, Aim and Fire describe held state.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Move is the desired movement direction. Its length is ignored.
	Move Vec2

	// Aim is the pointer position in world coordinates.
	Aim Vec2

	// Fire is true while the trigger is held.
	Fire bool

	// Select is a numbered choice pressed this frame (0 = none).
	// While playing it selects the displayed weapon (1-4); on the
	// upgrade screen it picks an option (1-3).
	Select int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets the edge-triggered parts of the frame (actions and selection).
// Held state (Move, Aim, Fire) survives so the platform can keep it across ticks.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Select = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
