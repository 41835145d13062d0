// Package survivors implements the arena-survival simulation: a player fights
// escalating enemy waves for a fixed session, levels up and picks upgrades.
//
// The package is pure logic. A platform feeds it core.InputFrame values once
// per tick and draws the Snapshot it returns.
package survivors

import (
	"time"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// EnemyType tags an enemy variant.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyFast
	EnemyTank
	EnemyRanged
	EnemyMiniBoss
	numEnemyTypes
)

// String returns the config name of the enemy type.
func (t EnemyType) String() string {
	if t < 0 || t >= numEnemyTypes {
		return "unknown"
	}
	return config.EnemyNames[t]
}

// ParseEnemyType converts a config name to an EnemyType.
func ParseEnemyType(name string) (EnemyType, bool) {
	for i, n := range config.EnemyNames {
		if n == name {
			return EnemyType(i), true
		}
	}
	return 0, false
}

// WeaponType tags a weapon variant.
type WeaponType int

const (
	WeaponPistol WeaponType = iota
	WeaponShotgun
	WeaponMachineGun
	WeaponBazooka
	numWeaponTypes
)

// String returns the config name of the weapon type.
func (t WeaponType) String() string {
	if t < 0 || t >= numWeaponTypes {
		return "unknown"
	}
	return config.WeaponNames[t]
}

// ParseWeaponType converts a config name to a WeaponType.
func ParseWeaponType(name string) (WeaponType, bool) {
	for i, n := range config.WeaponNames {
		if n == name {
			return WeaponType(i), true
		}
	}
	return 0, false
}

// Side identifies who fired a projectile.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// Player is the entity controlled by the input frames.
type Player struct {
	Pos       core.Vec2
	Size      float64
	Speed     float64
	Health    float64
	MaxHealth float64
	Score     int

	Experience        int // Total, never decreases
	LevelExperience   int // Resets on level up
	ExperienceToLevel int
	Level             int
	LeveledUp         bool // Raised on level up, cleared when an upgrade is chosen

	DamageMultiplier float64
	Weapons          []*Weapon // Acquisition order
	ActiveWeapon     int       // Index into Weapons, display only
	Cooldowns        map[WeaponType]time.Duration

	maxWeapons  int
	levelGrowth float64
}

// Box returns the player's collision bounds.
func (p *Player) Box() core.Box {
	return core.BoxAt(p.Pos, p.Size)
}

// TakeDamage subtracts d from health and reports whether the player is dead.
func (p *Player) TakeDamage(d float64) bool {
	p.Health -= d
	return p.Health <= 0
}

// HasWeapon reports whether a weapon of type t is owned.
func (p *Player) HasWeapon(t WeaponType) bool {
	return p.Weapon(t) != nil
}

// Weapon returns the owned weapon of type t, or nil.
func (p *Player) Weapon(t WeaponType) *Weapon {
	for _, w := range p.Weapons {
		if w.Type == t {
			return w
		}
	}
	return nil
}

// AddWeapon appends w to the loadout.
// It declines (returns false) if the type is already owned or the loadout is full.
func (p *Player) AddWeapon(w *Weapon) bool {
	if w == nil || p.HasWeapon(w.Type) || len(p.Weapons) >= p.maxWeapons {
		return false
	}
	p.Weapons = append(p.Weapons, w)
	return true
}

// SelectWeapon sets the displayed weapon by 1-based slot.
// Out-of-range slots are ignored.
func (p *Player) SelectWeapon(slot int) bool {
	if slot < 1 || slot > len(p.Weapons) {
		return false
	}
	p.ActiveWeapon = slot - 1
	return true
}

// Enemy is a hostile entity. Per-type behavior is selected by Type.
type Enemy struct {
	ID              uint64
	Type            EnemyType
	Pos             core.Vec2
	Size            float64
	Speed           float64
	Health          float64
	MaxHealth       float64
	Damage          float64
	ScoreValue      int
	ExperienceValue int

	// Ranged only
	AttackRange  float64
	AttackDelay  time.Duration
	KeepDistance float64
	Attacking    bool
	LastAttack   time.Duration
	hasAttacked  bool

	dead bool
}

// Box returns the enemy's collision bounds.
func (e *Enemy) Box() core.Box {
	return core.BoxAt(e.Pos, e.Size)
}

// TakeDamage subtracts d from health and reports whether the enemy died.
func (e *Enemy) TakeDamage(d float64) bool {
	e.Health -= d
	return e.Health <= 0
}

// Dead reports whether the enemy has been resolved as killed this frame.
func (e *Enemy) Dead() bool {
	return e.dead
}

// attackReady reports whether the ranged cooldown has elapsed at now.
func (e *Enemy) attackReady(now time.Duration) bool {
	return !e.hasAttacked || now-e.LastAttack >= e.AttackDelay
}

// Projectile travels in a straight line until it hits or leaves the playfield.
type Projectile struct {
	ID     uint64
	Pos    core.Vec2
	Dir    core.Vec2 // Unit vector
	Speed  float64
	Damage float64
	Side   Side
	Color  string // Render hint
	Size   float64

	removed bool
}

// Box returns the projectile's collision bounds.
func (pr *Projectile) Box() core.Box {
	return core.BoxAt(pr.Pos, pr.Size)
}

// Removed reports whether the projectile is scheduled for removal.
func (pr *Projectile) Removed() bool {
	return pr.removed
}

// Explosion damages every enemy in its radius on every frame of its lifetime.
type Explosion struct {
	ID       uint64
	Origin   core.Vec2
	Radius   float64
	Damage   float64
	Lifetime int // Frames
	Age      int

	// Render hints
	ParticleCount int
	ParticleSize  int
}

// DamageAt returns the falloff damage at distance r from the origin.
func (x *Explosion) DamageAt(r float64) float64 {
	if r > x.Radius || x.Radius <= 0 {
		return 0
	}
	return x.Damage * (1 - 0.5*r/x.Radius)
}

// Expired reports whether the explosion has outlived its lifetime.
func (x *Explosion) Expired() bool {
	return x.Age >= x.Lifetime
}

// Weapon is an owned weapon instance. Upgrades mutate its fields.
type Weapon struct {
	Type            WeaponType
	Damage          float64
	FireRate        time.Duration
	Spread          float64 // Degrees
	Pellets         int
	ProjectileSpeed float64
	ExplosionRadius float64
	ParticleCount   int
	ParticleSize    int
	Color           string
}
