package survivors

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Game sequences sessions through their phases. It is not safe for
// concurrent use; the platform calls Step from a single loop.
type Game struct {
	rules    *rules
	clock    core.Clock
	ownClock bool
	logger   *log.Logger
	rng      *rand.Rand
	seed     int64

	phase   Phase
	session *Session
	tick    uint64
	lastNow time.Duration
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the default tick clock. If c implements core.Ticker
// it is ticked once at the start of every Step.
func WithClock(c core.Clock) Option {
	return func(g *Game) {
		g.clock = c
		g.ownClock = false
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates a game in the menu phase. The config is validated.
func New(cfg config.SurvivorsConfig, opts ...Option) (*Game, error) {
	r, err := newRules(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		rules:    r,
		clock:    core.NewTickClock(60),
		ownClock: true,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// Reset reseeds the game and returns it to the menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	if g.ownClock {
		g.clock = core.NewTickClock(cfg.TickRate)
	}
	g.tick = 0
	g.lastNow = g.clock.Now()
	g.phase = PhaseMenu
	g.session = newSession(g.rules, g.rng, g.logger)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Session returns the current session.
func (g *Game) Session() *Session {
	return g.session
}

// Tick returns the number of steps taken since Reset.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Step advances the game by one frame and returns the resulting phase.
//
// Discrete actions are handled first. When they change the phase the
// simulation does not run this frame. While playing, one frame runs
// spawn, fire, movement, collision and then the level-up, defeat and
// victory checks in that order; the first check that fires ends the frame.
func (g *Game) Step(in core.InputFrame) Phase {
	g.tick++
	if t, ok := g.clock.(core.Ticker); ok {
		t.Tick()
	}
	now := g.clock.Now()
	delta := max(0, now-g.lastNow)
	g.lastNow = now

	before := g.phase
	g.handleInput(in)
	if before != PhasePlaying || g.phase != PhasePlaying {
		return g.phase
	}

	s := g.session
	s.Elapsed += delta
	g.rules.director.Update(s)
	if in.Fire {
		FireWeapons(s, in.Aim, now)
	}
	s.advance(in.Move, now)
	resolveCollisions(s)

	switch {
	case s.Player.LeveledUp:
		g.levelUp()
	case s.Player.Health <= 0:
		g.fire(EventPlayerDied)
		g.logger.Info("game over", "session", s.ID, "score", s.Player.Score,
			"level", s.Player.Level, "elapsed", s.Elapsed.Round(time.Second))
	case s.Elapsed >= g.rules.duration:
		g.fire(EventTimeUp)
		g.logger.Info("victory", "session", s.ID, "score", s.Player.Score,
			"level", s.Player.Level, "kills", s.Kills)
	}
	return g.phase
}

// handleInput maps discrete actions to events for the current phase.
// Actions that are not meaningful in the phase are ignored.
func (g *Game) handleInput(in core.InputFrame) {
	switch g.phase {
	case PhaseMenu:
		if in.Has(core.ActionStart) {
			g.fire(EventStart)
		}
	case PhaseGameOver, PhaseVictory:
		if in.Has(core.ActionRestart) || in.Has(core.ActionStart) {
			g.fire(EventRestart)
		}
	case PhasePaused:
		if in.Has(core.ActionPause) {
			g.fire(EventPauseToggle)
		}
	case PhasePlaying:
		if in.Has(core.ActionPause) {
			g.fire(EventPauseToggle)
			return
		}
		if in.Select > 0 {
			g.session.Player.SelectWeapon(in.Select)
		}
	case PhaseUpgrading:
		if in.Select >= 1 && in.Select <= len(g.session.Upgrades) {
			_ = g.ChooseUpgrade(in.Select)
		}
	}
}

// fire applies e to the phase. Illegal events are ignored.
func (g *Game) fire(e Event) bool {
	next, ok := g.phase.Next(e)
	if !ok {
		return false
	}
	g.phase = next

	if e == EventStart || e == EventRestart {
		g.session = newSession(g.rules, g.rng, g.logger)
		g.logger.Info("session started", "session", g.session.ID, "seed", g.seed, "event", e)
	}
	return true
}

func (g *Game) levelUp() {
	s := g.session
	s.Upgrades = GenerateUpgrades(s.Player, g.rules.cfg, g.rng)
	if len(s.Upgrades) == 0 {
		s.Player.LeveledUp = false
		g.logger.Warn("no upgrades available", "session", s.ID, "level", s.Player.Level)
		return
	}
	g.fire(EventLevelUp)
	g.logger.Info("level up", "session", s.ID, "level", s.Player.Level,
		"next", s.Player.ExperienceToLevel)
}

// ChooseUpgrade applies the option in slot (1-3) and resumes play.
// An invalid slot or an effect that cannot be applied is reported, but the
// session still returns to playing with the offer discarded.
func (g *Game) ChooseUpgrade(slot int) error {
	if g.phase != PhaseUpgrading {
		return fmt.Errorf("survivors: %w: not choosing an upgrade (phase %s)", ErrInvalidUpgrade, g.phase)
	}

	s := g.session
	err := fmt.Errorf("survivors: %w: no option in slot %d", ErrInvalidUpgrade, slot)
	for _, opt := range s.Upgrades {
		if opt.Slot != slot {
			continue
		}
		err = ApplyEffect(s.Player, opt.Effect, g.rules.newWeapon)
		if err == nil {
			g.logger.Debug("upgrade chosen", "session", s.ID, "name", opt.Name)
		}
		break
	}
	if err != nil {
		g.logger.Warn("upgrade failed", "session", s.ID, "slot", slot, "error", err)
	}

	s.Upgrades = nil
	s.Player.LeveledUp = false
	g.fire(EventUpgradeChosen)
	return err
}
