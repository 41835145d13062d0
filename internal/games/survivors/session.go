package survivors

import (
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Session is the registry of everything alive in one play-through.
// It is constructed fresh on every start or restart; nothing outlives it.
type Session struct {
	ID          string
	Player      *Player
	Enemies     []*Enemy
	Projectiles []*Projectile
	Explosions  []*Explosion
	Upgrades    []UpgradeOption // Non-nil only while upgrading

	Elapsed     time.Duration // Active play time; drives spawn pacing and victory
	LastSpawn   float64       // Elapsed seconds at the last spawn batch
	BossSpawned bool
	Kills       int

	nextID uint64
	rules  *rules
	rng    *rand.Rand
	logger *log.Logger
}

func newSession(r *rules, rng *rand.Rand, logger *log.Logger) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Player: r.newPlayer(),
		rules:  r,
		rng:    rng,
		logger: logger,
	}
}

// ElapsedSeconds returns the active play time in seconds.
func (s *Session) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// TimeRemaining returns the time left until victory, never negative.
func (s *Session) TimeRemaining() time.Duration {
	return max(0, s.rules.duration-s.Elapsed)
}

func (s *Session) newID() uint64 {
	s.nextID++
	return s.nextID
}

// spawnEnemy adds an enemy of type t just outside a random playfield edge.
func (s *Session) spawnEnemy(t EnemyType) *Enemy {
	size := s.rules.enemies[t].Size
	w, h := s.rules.cfg.Playfield.Width, s.rules.cfg.Playfield.Height

	var pos core.Vec2
	switch s.rng.Intn(4) {
	case 0: // top
		pos = core.V(s.rng.Float64()*w, -size)
	case 1: // right
		pos = core.V(w+size, s.rng.Float64()*h)
	case 2: // bottom
		pos = core.V(s.rng.Float64()*w, h+size)
	default: // left
		pos = core.V(-size, s.rng.Float64()*h)
	}

	e := s.rules.newEnemy(t, pos)
	e.ID = s.newID()
	s.Enemies = append(s.Enemies, e)
	return e
}

func (s *Session) addProjectile(pos, dir core.Vec2, speed, damage float64, side Side, color string, size float64) {
	s.Projectiles = append(s.Projectiles, &Projectile{
		ID:     s.newID(),
		Pos:    pos,
		Dir:    dir,
		Speed:  speed,
		Damage: damage,
		Side:   side,
		Color:  color,
		Size:   size,
	})
}

func (s *Session) addExplosion(origin core.Vec2, w *Weapon, damage float64) {
	s.Explosions = append(s.Explosions, &Explosion{
		ID:            s.newID(),
		Origin:        origin,
		Radius:        w.ExplosionRadius,
		Damage:        damage,
		Lifetime:      s.rules.cfg.Explosion.LifetimeFrames,
		ParticleCount: w.ParticleCount,
		ParticleSize:  w.ParticleSize,
	})
}

// advance moves every entity by one frame. now gates ranged attacks.
func (s *Session) advance(move core.Vec2, now time.Duration) {
	p := s.Player
	if dir, ok := move.Normalize(); ok {
		p.Pos = p.Pos.Add(dir.Scale(p.Speed))
		half := p.Size / 2
		p.Pos.X = core.ClampF(p.Pos.X, half, s.rules.playfield.W-half)
		p.Pos.Y = core.ClampF(p.Pos.Y, half, s.rules.playfield.H-half)
	}

	for _, e := range s.Enemies {
		s.moveEnemy(e, now)
	}

	for _, pr := range s.Projectiles {
		pr.Pos = pr.Pos.Add(pr.Dir.Scale(pr.Speed))
		if !pr.Box().Intersects(s.rules.playfield) {
			pr.removed = true
		}
	}
	s.Projectiles = slices.DeleteFunc(s.Projectiles, (*Projectile).Removed)
}

// moveEnemy dispatches per-type movement and raises ranged attack flags.
func (s *Session) moveEnemy(e *Enemy, now time.Duration) {
	toPlayer := s.Player.Pos.Sub(e.Pos)
	dist := toPlayer.Len()
	dir, ok := toPlayer.Normalize()

	switch e.Type {
	case EnemyRanged:
		if ok {
			if dist > e.AttackRange+e.KeepDistance {
				e.Pos = e.Pos.Add(dir.Scale(e.Speed))
			} else if dist < e.AttackRange-e.KeepDistance {
				e.Pos = e.Pos.Sub(dir.Scale(e.Speed))
			}
		}
		if e.attackReady(now) && dist <= e.AttackRange {
			e.Attacking = true
			e.LastAttack = now
			e.hasAttacked = true
		}
	default:
		if ok {
			e.Pos = e.Pos.Add(dir.Scale(e.Speed))
		}
	}
}
