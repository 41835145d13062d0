package survivors

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// rules holds the per-type tables derived from a validated config.
type rules struct {
	cfg       config.SurvivorsConfig
	playfield core.Box
	duration  time.Duration
	enemies   [numEnemyTypes]config.EnemyStats
	weapons   [numWeaponTypes]config.WeaponStats
	starting  WeaponType
	director  *Director
}

func newRules(cfg config.SurvivorsConfig) (*rules, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("survivors: invalid config: %w", err)
	}

	r := &rules{
		cfg: cfg,
		playfield: core.Box{
			Center: core.V(cfg.Playfield.Width/2, cfg.Playfield.Height/2),
			W:      cfg.Playfield.Width,
			H:      cfg.Playfield.Height,
		},
		duration: time.Duration(cfg.Session.DurationSeconds * float64(time.Second)),
		director: NewDirector(cfg.Spawn),
	}
	for i, name := range config.EnemyNames {
		r.enemies[i] = cfg.Enemies[name]
	}
	for i, name := range config.WeaponNames {
		r.weapons[i] = cfg.Weapons[name]
	}
	r.starting, _ = ParseWeaponType(cfg.Player.StartingWeapon)
	return r, nil
}

// newPlayer builds a fresh level-1 player in the middle of the playfield.
func (r *rules) newPlayer() *Player {
	pc := r.cfg.Player
	p := &Player{
		Pos:               r.playfield.Center,
		Size:              pc.Size,
		Speed:             pc.Speed,
		Health:            pc.MaxHealth,
		MaxHealth:         pc.MaxHealth,
		ExperienceToLevel: pc.ExperienceToLevel,
		Level:             1,
		DamageMultiplier:  1.0,
		Cooldowns:         make(map[WeaponType]time.Duration),
		maxWeapons:        pc.MaxWeapons,
		levelGrowth:       pc.LevelGrowth,
	}
	p.AddWeapon(r.newWeapon(r.starting))
	return p
}

// newWeapon builds a weapon with its base stats.
func (r *rules) newWeapon(t WeaponType) *Weapon {
	ws := r.weapons[t]
	return &Weapon{
		Type:            t,
		Damage:          ws.Damage,
		FireRate:        time.Duration(ws.FireRateMS) * time.Millisecond,
		Spread:          ws.Spread,
		Pellets:         ws.Pellets,
		ProjectileSpeed: ws.ProjectileSpeed,
		ExplosionRadius: ws.ExplosionRadius,
		ParticleCount:   ws.ParticleCount,
		ParticleSize:    ws.ParticleSize,
		Color:           ws.Color,
	}
}

// newEnemy builds an enemy with its base stats at pos.
func (r *rules) newEnemy(t EnemyType, pos core.Vec2) *Enemy {
	es := r.enemies[t]
	return &Enemy{
		Type:            t,
		Pos:             pos,
		Size:            es.Size,
		Speed:           es.Speed,
		Health:          es.Health,
		MaxHealth:       es.Health,
		Damage:          es.Damage,
		ScoreValue:      es.Score,
		ExperienceValue: es.Experience,
		AttackRange:     es.AttackRange,
		AttackDelay:     time.Duration(es.AttackDelayMS) * time.Millisecond,
		KeepDistance:    es.KeepDistance,
	}
}
