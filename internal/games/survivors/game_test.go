package survivors

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := New(config.DefaultSurvivorsConfig(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 42})
	return g
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	r, err := newRules(config.DefaultSurvivorsConfig())
	if err != nil {
		t.Fatalf("newRules() error: %v", err)
	}
	return newSession(r, rand.New(rand.NewSource(1)), log.New(io.Discard))
}

func placeEnemy(s *Session, et EnemyType, pos core.Vec2) *Enemy {
	e := s.rules.newEnemy(et, pos)
	e.ID = s.newID()
	s.Enemies = append(s.Enemies, e)
	return e
}

func actionFrame(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func startGame(t *testing.T, g *Game) *Session {
	t.Helper()
	if phase := g.Step(actionFrame(core.ActionStart)); phase != PhasePlaying {
		t.Fatalf("Step(Start) = %v, expected %v", phase, PhasePlaying)
	}
	return g.Session()
}

// levelUpNextFrame arranges for the next Step to kill an enemy whose
// experience completes the current level.
func levelUpNextFrame(s *Session) {
	p := s.Player
	p.LevelExperience = p.ExperienceToLevel - 5
	e := placeEnemy(s, EnemyBasic, core.V(600, 300))
	e.Health = 1
	s.addProjectile(e.Pos, core.V(1, 0), 0, 20, SidePlayer, "blue", 10)
}

func TestNewGameStartsInMenu(t *testing.T) {
	g := newTestGame(t)

	if g.Phase() != PhaseMenu {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseMenu)
	}

	// Pause and restart mean nothing in the menu
	for _, a := range []core.Action{core.ActionPause, core.ActionRestart, core.ActionNone} {
		if phase := g.Step(actionFrame(a)); phase != PhaseMenu {
			t.Errorf("Step(%v) in menu = %v, expected %v", a, phase, PhaseMenu)
		}
	}
}

func TestStartCreatesFreshSession(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)

	if s.ID == "" {
		t.Error("session should have an ID")
	}
	p := s.Player
	if p.Health != 100 || p.MaxHealth != 100 {
		t.Errorf("Health = %v/%v, expected 100/100", p.Health, p.MaxHealth)
	}
	if p.Score != 0 || p.Level != 1 {
		t.Errorf("Score = %d, Level = %d, expected 0 and 1", p.Score, p.Level)
	}
	if len(p.Weapons) != 1 || p.Weapons[0].Type != WeaponPistol {
		t.Errorf("loadout = %v, expected [pistol]", p.Weapons)
	}
	if len(s.Enemies)+len(s.Projectiles)+len(s.Explosions) != 0 {
		t.Error("registry should start empty")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)

	g.Step(core.NewInputFrame())
	elapsed := s.Elapsed
	if elapsed <= 0 {
		t.Fatal("elapsed should advance while playing")
	}

	if phase := g.Step(actionFrame(core.ActionPause)); phase != PhasePaused {
		t.Fatalf("Step(Pause) = %v, expected %v", phase, PhasePaused)
	}
	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if s.Elapsed != elapsed {
		t.Errorf("Elapsed moved while paused: %v -> %v", elapsed, s.Elapsed)
	}

	if phase := g.Step(actionFrame(core.ActionPause)); phase != PhasePlaying {
		t.Fatalf("Step(Pause) = %v, expected %v", phase, PhasePlaying)
	}
	g.Step(core.NewInputFrame())
	if got, want := s.Elapsed-elapsed, time.Second/60; got != want {
		t.Errorf("Elapsed advanced %v after resume, expected one frame (%v)", got, want)
	}
}

func TestVictoryRegardlessOfEnemies(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)

	placeEnemy(s, EnemyTank, core.V(50, 50))
	placeEnemy(s, EnemyBasic, core.V(750, 550))
	s.Elapsed = 900*time.Second - time.Millisecond
	s.LastSpawn = s.ElapsedSeconds()
	s.BossSpawned = true

	if phase := g.Step(core.NewInputFrame()); phase != PhaseVictory {
		t.Fatalf("Step() at 900s = %v, expected %v", phase, PhaseVictory)
	}
	if len(s.Enemies) == 0 {
		t.Error("enemies should still be alive at victory")
	}
	if rem := g.Snapshot().HUD.TimeRemaining; rem != 0 {
		t.Errorf("TimeRemaining = %v, expected 0", rem)
	}
}

func TestGameOverOnContact(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)

	s.Player.Health = 5
	placeEnemy(s, EnemyBasic, s.Player.Pos)

	if phase := g.Step(core.NewInputFrame()); phase != PhaseGameOver {
		t.Fatalf("Step() = %v, expected %v", phase, PhaseGameOver)
	}
	if len(s.Enemies) != 0 {
		t.Errorf("colliding enemy should be removed, %d remain", len(s.Enemies))
	}
	if s.Player.Score != 0 || s.Player.Experience != 0 {
		t.Errorf("contact kill credited score=%d xp=%d, expected none", s.Player.Score, s.Player.Experience)
	}

	// Only restart leaves game over
	if phase := g.Step(actionFrame(core.ActionPause)); phase != PhaseGameOver {
		t.Errorf("Step(Pause) after game over = %v, expected %v", phase, PhaseGameOver)
	}
}

func TestRestartResetsSession(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)
	s.Player.Health = 1
	s.Player.Score = 500
	placeEnemy(s, EnemyTank, s.Player.Pos)
	g.Step(core.NewInputFrame())

	if phase := g.Step(actionFrame(core.ActionRestart)); phase != PhasePlaying {
		t.Fatalf("Step(Restart) = %v, expected %v", phase, PhasePlaying)
	}
	fresh := g.Session()
	if fresh == s || fresh.ID == s.ID {
		t.Error("restart should build a new session")
	}
	if fresh.Player.Health != 100 || fresh.Player.Score != 0 || fresh.Elapsed != 0 {
		t.Errorf("restarted player = %+v, expected defaults", fresh.Player)
	}
}

func TestLevelUpFlow(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)
	levelUpNextFrame(s)

	if phase := g.Step(core.NewInputFrame()); phase != PhaseUpgrading {
		t.Fatalf("Step() = %v, expected %v", phase, PhaseUpgrading)
	}
	if s.Player.Level != 2 || !s.Player.LeveledUp {
		t.Errorf("Level = %d, LeveledUp = %v, expected 2 and true", s.Player.Level, s.Player.LeveledUp)
	}
	snap := g.Snapshot()
	if len(snap.Upgrades) != OptionsPerLevel {
		t.Fatalf("snapshot has %d upgrades, expected %d", len(snap.Upgrades), OptionsPerLevel)
	}

	// Simulation is frozen while choosing
	elapsed := s.Elapsed
	in := core.NewInputFrame()
	in.Fire = true
	in.Aim = core.V(0, 0)
	g.Step(in)
	if s.Elapsed != elapsed || len(s.Projectiles) != 0 {
		t.Error("simulation should not run while upgrading")
	}

	in = core.NewInputFrame()
	in.Select = 2
	if phase := g.Step(in); phase != PhasePlaying {
		t.Fatalf("Step(Select 2) = %v, expected %v", phase, PhasePlaying)
	}
	if s.Player.LeveledUp || s.Upgrades != nil {
		t.Error("choosing should clear the level-up flag and the offer")
	}
}

func TestChooseUpgradeInvalidSlot(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)
	levelUpNextFrame(s)
	g.Step(core.NewInputFrame())

	speed, maxHealth := s.Player.Speed, s.Player.MaxHealth
	err := g.ChooseUpgrade(7)
	if !errors.Is(err, ErrInvalidUpgrade) {
		t.Errorf("ChooseUpgrade(7) error = %v, expected ErrInvalidUpgrade", err)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected %v after a failed choice", g.Phase(), PhasePlaying)
	}
	if s.Player.Speed != speed || s.Player.MaxHealth != maxHealth || len(s.Player.Weapons) != 1 {
		t.Error("a failed choice should not mutate the player")
	}
}

func TestChooseUpgradeOutsideUpgrading(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	if err := g.ChooseUpgrade(1); !errors.Is(err, ErrInvalidUpgrade) {
		t.Errorf("ChooseUpgrade() while playing error = %v, expected ErrInvalidUpgrade", err)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhasePlaying)
	}
}

func TestSelectWeaponWhilePlaying(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)
	s.Player.AddWeapon(s.rules.newWeapon(WeaponShotgun))

	in := core.NewInputFrame()
	in.Select = 2
	g.Step(in)
	if s.Player.ActiveWeapon != 1 {
		t.Errorf("ActiveWeapon = %d, expected 1", s.Player.ActiveWeapon)
	}

	in.Select = 4
	g.Step(in)
	if s.Player.ActiveWeapon != 1 {
		t.Errorf("out-of-range select changed ActiveWeapon to %d", s.Player.ActiveWeapon)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		in := core.NewInputFrame()
		in.Fire = true
		in.Aim = core.V(float64(100+i%600), float64(50+i%500))
		if i%120 < 60 {
			in.Move = core.V(1, 0)
		} else {
			in.Move = core.V(-1, 1)
		}
		if i%200 == 199 {
			in.Select = 1
		}
		inputs[i] = in
	}

	run := func() Snapshot {
		g := newTestGame(t)
		startGame(t, g)
		for _, in := range inputs {
			if g.Step(in).Ended() {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.HUD.Score != snap2.HUD.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.HUD.Score, snap2.HUD.Score)
	}
	if len(snap1.Enemies) == 0 && snap1.HUD.Kills == 0 {
		t.Error("fifteen seconds of play should have spawned enemies")
	}
}

func TestSnapshotHUD(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)
	s.Player.Health = 25
	s.Player.LevelExperience = 50
	s.Elapsed = 100 * time.Second

	hud := g.Snapshot().HUD
	if hud.HealthFrac != 0.25 {
		t.Errorf("HealthFrac = %v, expected 0.25", hud.HealthFrac)
	}
	if hud.ExperienceFrac != 0.5 {
		t.Errorf("ExperienceFrac = %v, expected 0.5", hud.ExperienceFrac)
	}
	if hud.TimeRemaining != 800*time.Second {
		t.Errorf("TimeRemaining = %v, expected 800s", hud.TimeRemaining)
	}
	if len(hud.Weapons) != 1 || hud.Weapons[0] != "Pistol" {
		t.Errorf("Weapons = %v, expected [Pistol]", hud.Weapons)
	}
}

func TestSnapshotExplosionParticles(t *testing.T) {
	g := newTestGame(t)
	s := startGame(t, g)

	if !s.Player.AddWeapon(s.rules.newWeapon(WeaponBazooka)) {
		t.Fatal("AddWeapon(bazooka) declined")
	}
	more := config.Effect{Target: config.TargetParticleCount, Op: config.OpAdd, Amount: 10, Weapon: config.WeaponBazooka}
	if err := ApplyEffect(s.Player, more, s.rules.newWeapon); err != nil {
		t.Fatalf("ApplyEffect() error: %v", err)
	}
	s.addExplosion(core.V(400, 300), s.Player.Weapon(WeaponBazooka), 50)

	snap := g.Snapshot()
	if len(snap.Explosions) != 1 {
		t.Fatalf("len(Explosions) = %d, expected 1", len(snap.Explosions))
	}
	x := snap.Explosions[0]
	if x.Particles != 30 || x.ParticleSize != 5 {
		t.Errorf("particles = %d size %d, expected 30 and 5", x.Particles, x.ParticleSize)
	}
}

func TestWallClockKeptAcrossReset(t *testing.T) {
	clock := core.NewSystemClock()
	g := newTestGame(t, WithClock(clock))
	if g.clock != core.Clock(clock) {
		t.Fatal("Reset replaced an injected clock")
	}

	s := startGame(t, g)
	time.Sleep(5 * time.Millisecond)
	g.Step(core.NewInputFrame())

	if s.Elapsed < 5*time.Millisecond {
		t.Errorf("Elapsed = %v, expected at least the wall time slept", s.Elapsed)
	}
}

func TestNewRejectsMissingGeneralUpgrades(t *testing.T) {
	cfg := config.DefaultSurvivorsConfig()
	cfg.Upgrades = nil
	if _, err := New(cfg); err == nil {
		t.Error("New() should reject a config without general upgrades")
	}
}
