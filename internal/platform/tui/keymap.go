package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// GameKeyMap defines the key bindings for a survivors session.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Weapon     key.Binding
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Fire, k.Weapon, k.Pause, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Weapon},
		{k.Start, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns the default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/right", "move right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "fire"),
		),
		Weapon: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "weapon/upgrade"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to engine intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to a discrete action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Start):
		return core.ActionStart, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Direction returns the unit step for a movement key.
func (km *KeyMapper) Direction(msg tea.KeyMsg) (core.Vec2, bool) {
	switch {
	case key.Matches(msg, km.keys.Up):
		return core.V(0, -1), true
	case key.Matches(msg, km.keys.Down):
		return core.V(0, 1), true
	case key.Matches(msg, km.keys.Left):
		return core.V(-1, 0), true
	case key.Matches(msg, km.keys.Right):
		return core.V(1, 0), true
	}
	return core.Vec2{}, false
}

// Slot returns the number for a 1-4 key, or 0.
func (km *KeyMapper) Slot(msg tea.KeyMsg) int {
	if !key.Matches(msg, km.keys.Weapon) {
		return 0
	}
	s := msg.String()
	return int(s[0] - '0')
}

// MapKeyToFrame applies discrete actions and numbered choices to frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	if slot := km.Slot(msg); slot > 0 {
		frame.Select = slot
	}
	return isQuit
}
