package survivors

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// EntityKind selects how an entity is drawn.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindEnemy
	KindProjectile
	KindEnemyProjectile
	KindExplosion
)

// EntityView is the render-facing description of one entity.
type EntityView struct {
	ID    uint64
	Kind  EntityKind
	Tag   string // Enemy type name, empty otherwise
	Pos   core.Vec2
	Size  float64 // Box side; explosions report their diameter
	Color string

	// Fraction is remaining health for enemies and remaining lifetime for
	// explosions, in [0, 1].
	Fraction float64

	// Explosion particle hints, zero for other kinds.
	Particles    int
	ParticleSize int
}

// HUD holds the values shown around the playfield.
type HUD struct {
	Health         float64
	MaxHealth      float64
	HealthFrac     float64
	ExperienceFrac float64
	Score          int
	Level          int
	Kills          int
	Elapsed        time.Duration
	TimeRemaining  time.Duration
	Weapons        []string // Titles in loadout order
	ActiveWeapon   int
}

// Snapshot is everything a platform needs to draw one frame.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	SessionID string
	Width     float64
	Height    float64

	Player      EntityView
	Enemies     []EntityView
	Projectiles []EntityView
	Explosions  []EntityView

	HUD      HUD
	Upgrades []UpgradeOption // Only while upgrading
}

// Snapshot captures the current state. The result shares nothing with the
// live session.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	p := s.Player
	cfg := g.rules.cfg

	snap := Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		SessionID: s.ID,
		Width:     cfg.Playfield.Width,
		Height:    cfg.Playfield.Height,
		Player: EntityView{
			Kind:     KindPlayer,
			Pos:      p.Pos,
			Size:     p.Size,
			Color:    "green",
			Fraction: fraction(p.Health, p.MaxHealth),
		},
		Enemies:     make([]EntityView, 0, len(s.Enemies)),
		Projectiles: make([]EntityView, 0, len(s.Projectiles)),
		Explosions:  make([]EntityView, 0, len(s.Explosions)),
		HUD: HUD{
			Health:         max(0, p.Health),
			MaxHealth:      p.MaxHealth,
			HealthFrac:     fraction(p.Health, p.MaxHealth),
			ExperienceFrac: fraction(float64(p.LevelExperience), float64(p.ExperienceToLevel)),
			Score:          p.Score,
			Level:          p.Level,
			Kills:          s.Kills,
			Elapsed:        s.Elapsed,
			TimeRemaining:  s.TimeRemaining(),
			ActiveWeapon:   p.ActiveWeapon,
		},
	}

	for _, w := range p.Weapons {
		snap.HUD.Weapons = append(snap.HUD.Weapons, cfg.Weapons[w.Type.String()].Title)
	}
	for _, e := range s.Enemies {
		snap.Enemies = append(snap.Enemies, EntityView{
			ID:       e.ID,
			Kind:     KindEnemy,
			Tag:      e.Type.String(),
			Pos:      e.Pos,
			Size:     e.Size,
			Fraction: fraction(e.Health, e.MaxHealth),
		})
	}
	for _, pr := range s.Projectiles {
		kind := KindProjectile
		if pr.Side == SideEnemy {
			kind = KindEnemyProjectile
		}
		snap.Projectiles = append(snap.Projectiles, EntityView{
			ID:    pr.ID,
			Kind:  kind,
			Pos:   pr.Pos,
			Size:  pr.Size,
			Color: pr.Color,
		})
	}
	for _, x := range s.Explosions {
		snap.Explosions = append(snap.Explosions, EntityView{
			ID:       x.ID,
			Kind:     KindExplosion,
			Pos:      x.Origin,
			Size:     x.Radius * 2,
			Color:    "orange",
			Fraction: 1 - fraction(float64(x.Age), float64(x.Lifetime)),

			Particles:    x.ParticleCount,
			ParticleSize: x.ParticleSize,
		})
	}
	if g.phase == PhaseUpgrading {
		snap.Upgrades = append([]UpgradeOption(nil), s.Upgrades...)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Session IDs are random and excluded.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Level)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Kills)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Elapsed) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.HUD.Health)

	views := [][]EntityView{{snap.Player}, snap.Enemies, snap.Projectiles, snap.Explosions}
	for _, group := range views {
		for _, v := range group {
			h = h*31 + v.ID
			h = h*31 + uint64(v.Kind) //#nosec G115 -- hash computation
			h = h*31 + math.Float64bits(v.Pos.X)
			h = h*31 + math.Float64bits(v.Pos.Y)
			h = h*31 + math.Float64bits(v.Fraction)
		}
	}
	return h
}

// fraction returns v/total clamped to [0, 1]; a non-positive total yields 0.
func fraction(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return core.ClampF(v/total, 0, 1)
}
