// Package config provides YAML-based balance configuration loading and
// difficulty presets for the survivors engine.
package config

// Enemy type names used as keys in SurvivorsConfig.Enemies.
const (
	EnemyBasic    = "basic"
	EnemyFast     = "fast"
	EnemyTank     = "tank"
	EnemyRanged   = "ranged"
	EnemyMiniBoss = "mini_boss"
)

// EnemyNames lists every enemy type the engine knows, in tag order.
var EnemyNames = []string{EnemyBasic, EnemyFast, EnemyTank, EnemyRanged, EnemyMiniBoss}

// Weapon type names used as keys in SurvivorsConfig.Weapons.
const (
	WeaponPistol     = "pistol"
	WeaponShotgun    = "shotgun"
	WeaponMachineGun = "machine_gun"
	WeaponBazooka    = "bazooka"
)

// WeaponNames lists every weapon type the engine knows, in tag order.
var WeaponNames = []string{WeaponPistol, WeaponShotgun, WeaponMachineGun, WeaponBazooka}

// SurvivorsConfig contains all balance configuration for a session.
type SurvivorsConfig struct {
	Playfield   PlayfieldConfig        `yaml:"playfield"`
	Session     SessionConfig          `yaml:"session"`
	Player      PlayerConfig           `yaml:"player"`
	Spawn       SpawnConfig            `yaml:"spawn"`
	Enemies     map[string]EnemyStats  `yaml:"enemies"`
	Weapons     map[string]WeaponStats `yaml:"weapons"`
	Projectiles ProjectileConfig       `yaml:"projectiles"`
	Explosion   ExplosionConfig        `yaml:"explosion"`
	Upgrades    []Upgrade              `yaml:"upgrades"` // General upgrades, always offered
}

// PlayfieldConfig defines the world size in world units.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SessionConfig defines the session length.
type SessionConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// PlayerConfig defines the starting player.
type PlayerConfig struct {
	Speed             float64 `yaml:"speed"` // World units per frame
	MaxHealth         float64 `yaml:"max_health"`
	Size              float64 `yaml:"size"`
	ExperienceToLevel int     `yaml:"experience_to_level"` // Threshold at level 1
	LevelGrowth       float64 `yaml:"level_growth"`        // Threshold multiplier per level
	MaxWeapons        int     `yaml:"max_weapons"`
	StartingWeapon    string  `yaml:"starting_weapon"`
}

// SpawnConfig defines enemy pacing.
type SpawnConfig struct {
	InitialDelay     float64     `yaml:"initial_delay"` // Seconds between batches at t=0
	MinDelay         float64     `yaml:"min_delay"`
	Rate             float64     `yaml:"rate"`               // Delay reduction per elapsed second
	CountStepSeconds float64     `yaml:"count_step_seconds"` // Batch multiplier grows every N seconds
	CountStep        float64     `yaml:"count_step"`
	BossAtSeconds    float64     `yaml:"boss_at_seconds"`
	Pool             []PoolStage `yaml:"pool"`
}

// PoolStage enables a set of enemy types from a point in the session onwards.
// Stages must be sorted by FromSeconds; the last stage not after t applies.
type PoolStage struct {
	FromSeconds float64  `yaml:"from_seconds"`
	Types       []string `yaml:"types"`
}

// EnemyStats defines one enemy type.
type EnemyStats struct {
	Health        float64 `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	Damage        float64 `yaml:"damage"`
	Score         int     `yaml:"score"`
	Experience    int     `yaml:"experience"`
	Size          float64 `yaml:"size"`
	AttackRange   float64 `yaml:"attack_range,omitempty"`    // Ranged only
	AttackDelayMS int     `yaml:"attack_delay_ms,omitempty"` // Ranged only
	KeepDistance  float64 `yaml:"keep_distance,omitempty"`   // Ranged only: band around attack range
}

// WeaponStats defines one weapon type and its upgrade catalog.
type WeaponStats struct {
	Title           string    `yaml:"title"`
	Damage          float64   `yaml:"damage"`
	FireRateMS      int       `yaml:"fire_rate_ms"`
	Spread          float64   `yaml:"spread"` // Degrees
	Pellets         int       `yaml:"pellets"`
	ProjectileSpeed float64   `yaml:"projectile_speed"`
	ExplosionRadius float64   `yaml:"explosion_radius,omitempty"`
	ParticleCount   int       `yaml:"particle_count,omitempty"`
	ParticleSize    int       `yaml:"particle_size,omitempty"`
	Color           string    `yaml:"color"`
	Upgrades        []Upgrade `yaml:"upgrades"`
}

// ProjectileConfig defines projectile geometry and enemy shots.
type ProjectileConfig struct {
	Size       float64 `yaml:"size"`
	EnemySpeed float64 `yaml:"enemy_speed"`
	EnemySize  float64 `yaml:"enemy_size"`
}

// ExplosionConfig defines bazooka blasts.
type ExplosionConfig struct {
	LifetimeFrames int `yaml:"lifetime_frames"`
}

// Upgrade is a catalog entry: a display name plus a data-described effect.
type Upgrade struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Effect      Effect `yaml:"effect"`
}

// EffectTarget names the field an effect mutates.
type EffectTarget string

const (
	TargetPlayerSpeed      EffectTarget = "player.speed"
	TargetPlayerMaxHealth  EffectTarget = "player.max_health"
	TargetDamageMultiplier EffectTarget = "player.damage_multiplier"
	TargetWeaponDamage     EffectTarget = "weapon.damage"
	TargetFireRate         EffectTarget = "weapon.fire_rate" // Milliseconds
	TargetSpread           EffectTarget = "weapon.spread"
	TargetPellets          EffectTarget = "weapon.pellets"
	TargetProjectileSpeed  EffectTarget = "weapon.projectile_speed"
	TargetExplosionRadius  EffectTarget = "weapon.explosion_radius"
	TargetParticleCount    EffectTarget = "weapon.particle_count"
	TargetParticleSize     EffectTarget = "weapon.particle_size"
	TargetUnlockWeapon     EffectTarget = "loadout.unlock"
)

// IsWeaponTarget reports whether the target lives on a weapon instance.
func (t EffectTarget) IsWeaponTarget() bool {
	switch t {
	case TargetWeaponDamage, TargetFireRate, TargetSpread, TargetPellets,
		TargetProjectileSpeed, TargetExplosionRadius, TargetParticleCount, TargetParticleSize:
		return true
	}
	return false
}

func (t EffectTarget) valid() bool {
	switch t {
	case TargetPlayerSpeed, TargetPlayerMaxHealth, TargetDamageMultiplier, TargetUnlockWeapon:
		return true
	}
	return t.IsWeaponTarget()
}

// EffectOp is the operation applied to the target.
type EffectOp string

const (
	OpAdd    EffectOp = "add"
	OpMul    EffectOp = "mul"
	OpUnlock EffectOp = "unlock"
)

// Effect describes a mutation: target field, operation, amount and bounds.
// Weapon names the weapon for weapon targets and unlocks; catalogs attached
// to a weapon leave it empty and the owner is filled in at generation time.
type Effect struct {
	Target EffectTarget `yaml:"target"`
	Op     EffectOp     `yaml:"op"`
	Amount float64      `yaml:"amount,omitempty"`
	Min    *float64     `yaml:"min,omitempty"`
	Max    *float64     `yaml:"max,omitempty"`
	Weapon string       `yaml:"weapon,omitempty"`
}

// Bound is a helper for building Effect.Min and Effect.Max.
func Bound(v float64) *float64 {
	return &v
}
