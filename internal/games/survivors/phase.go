package survivors

// Phase is the session state that gates which subsystems run.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseUpgrading
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseUpgrading:
		return "upgrading"
	case PhaseGameOver:
		return "game_over"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Event drives a phase transition.
type Event int

const (
	EventStart Event = iota
	EventPauseToggle
	EventLevelUp
	EventUpgradeChosen
	EventPlayerDied
	EventTimeUp
	EventRestart
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPauseToggle:
		return "pause_toggle"
	case EventLevelUp:
		return "level_up"
	case EventUpgradeChosen:
		return "upgrade_chosen"
	case EventPlayerDied:
		return "player_died"
	case EventTimeUp:
		return "time_up"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

type transition struct {
	from  Phase
	event Event
}

// transitions is the complete set of legal moves.
var transitions = map[transition]Phase{
	{PhaseMenu, EventStart}:              PhasePlaying,
	{PhasePlaying, EventPauseToggle}:     PhasePaused,
	{PhasePaused, EventPauseToggle}:      PhasePlaying,
	{PhasePlaying, EventLevelUp}:         PhaseUpgrading,
	{PhaseUpgrading, EventUpgradeChosen}: PhasePlaying,
	{PhasePlaying, EventPlayerDied}:      PhaseGameOver,
	{PhasePlaying, EventTimeUp}:          PhaseVictory,
	{PhaseGameOver, EventRestart}:        PhasePlaying,
	{PhaseVictory, EventRestart}:         PhasePlaying,
}

// Next returns the phase that follows p on e. ok is false when the event
// is not legal in p, in which case p is returned unchanged.
func (p Phase) Next(e Event) (Phase, bool) {
	next, ok := transitions[transition{p, e}]
	if !ok {
		return p, false
	}
	return next, true
}

// Ended reports whether the session is over.
func (p Phase) Ended() bool {
	return p == PhaseGameOver || p == PhaseVictory
}
