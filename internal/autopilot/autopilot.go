// Package autopilot provides scripted players for headless simulation.
package autopilot

import (
	"math/rand"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

func init() {
	registry.Register("turret", func() registry.Pilot { return NewTurret() })
	registry.Register("kite", func() registry.Pilot { return NewKite() })
}

// Turret stands still and shoots the nearest enemy.
type Turret struct{}

// NewTurret creates a turret pilot.
func NewTurret() *Turret {
	return &Turret{}
}

func (t *Turret) ID() string { return "turret" }
func (t *Turret) Title() string { return "Turret (stand and shoot)" }

// Reset is a no-op; the turret keeps no state.
func (t *Turret) Reset(int64) {}

// Decide aims at the nearest enemy and always takes the first upgrade.
func (t *Turret) Decide(snap survivors.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Phase == survivors.PhaseUpgrading {
		in.Select = 1
		return in
	}
	if target, ok := nearest(snap.Player.Pos, snap.Enemies); ok {
		in.Aim = target.Pos
		in.Fire = true
	}
	return in
}

// Kite runs from the crowd while shooting the nearest enemy, and picks
// upgrades at random.
type Kite struct {
	rng *rand.Rand
}

// NewKite creates a kiting pilot.
func NewKite() *Kite {
	return &Kite{rng: rand.New(rand.NewSource(1))}
}

func (k *Kite) ID() string { return "kite" }
func (k *Kite) Title() string { return "Kite (retreat and shoot)" }

// Reset reseeds the upgrade picks.
func (k *Kite) Reset(seed int64) {
	k.rng = rand.New(rand.NewSource(seed))
}

// Decide returns the frame input for snap.
func (k *Kite) Decide(snap survivors.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Phase == survivors.PhaseUpgrading {
		if n := len(snap.Upgrades); n > 0 {
			in.Select = snap.Upgrades[k.rng.Intn(n)].Slot
		}
		return in
	}

	pos := snap.Player.Pos
	if target, ok := nearest(pos, snap.Enemies); ok {
		in.Aim = target.Pos
		in.Fire = true
	}
	in.Move = flee(pos, snap)
	return in
}

// flee sums repulsion from nearby enemies and enemy shots plus a pull
// back towards the middle of the arena.
func flee(pos core.Vec2, snap survivors.Snapshot) core.Vec2 {
	const danger = 200.0

	var push core.Vec2
	repel := func(from core.Vec2) {
		away := pos.Sub(from)
		d := away.Len()
		if d == 0 || d > danger {
			return
		}
		if dir, ok := away.Normalize(); ok {
			push = push.Add(dir.Scale((danger - d) / danger))
		}
	}
	for _, e := range snap.Enemies {
		repel(e.Pos)
	}
	for _, pr := range snap.Projectiles {
		if pr.Kind == survivors.KindEnemyProjectile {
			repel(pr.Pos)
		}
	}

	center := core.V(snap.Width/2, snap.Height/2)
	if home, ok := center.Sub(pos).Normalize(); ok {
		push = push.Add(home.Scale(0.3))
	}
	return push
}

func nearest(pos core.Vec2, enemies []survivors.EntityView) (survivors.EntityView, bool) {
	var best survivors.EntityView
	bestDist := -1.0
	for _, e := range enemies {
		if d := pos.Dist(e.Pos); bestDist < 0 || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist >= 0
}
