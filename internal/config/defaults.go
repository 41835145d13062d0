package config

import (
	_ "embed"
)

//go:embed defaults/survivors.yaml
var defaultSurvivorsYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultSurvivorsYAML
}

// DefaultSurvivorsConfig returns the hardcoded default configuration.
// It mirrors defaults/survivors.yaml and is used if the embedded copy fails to parse.
func DefaultSurvivorsConfig() SurvivorsConfig {
	return SurvivorsConfig{
		Playfield: PlayfieldConfig{Width: 800, Height: 600},
		Session:   SessionConfig{DurationSeconds: 900},
		Player: PlayerConfig{
			Speed:             5,
			MaxHealth:         100,
			Size:              30,
			ExperienceToLevel: 100,
			LevelGrowth:       1.5,
			MaxWeapons:        4,
			StartingWeapon:    WeaponPistol,
		},
		Spawn: SpawnConfig{
			InitialDelay:     2.0,
			MinDelay:         0.5,
			Rate:             0.1,
			CountStepSeconds: 10,
			CountStep:        0.1,
			BossAtSeconds:    60,
			Pool: []PoolStage{
				{FromSeconds: 0, Types: []string{EnemyBasic}},
				{FromSeconds: 30, Types: []string{EnemyBasic, EnemyFast}},
				{FromSeconds: 45, Types: []string{EnemyBasic, EnemyFast, EnemyTank}},
				{FromSeconds: 60, Types: []string{EnemyBasic, EnemyFast, EnemyTank, EnemyRanged}},
			},
		},
		Enemies: map[string]EnemyStats{
			EnemyBasic:  {Health: 30, Speed: 2, Damage: 10, Score: 10, Experience: 5, Size: 30},
			EnemyFast:   {Health: 20, Speed: 4, Damage: 5, Score: 15, Experience: 8, Size: 20},
			EnemyTank:   {Health: 100, Speed: 1, Damage: 20, Score: 30, Experience: 15, Size: 40},
			EnemyRanged: {
				Health: 40, Speed: 1.5, Damage: 15, Score: 20, Experience: 10, Size: 30,
				AttackRange: 200, AttackDelayMS: 3000, KeepDistance: 50,
			},
			EnemyMiniBoss: {Health: 200, Speed: 2, Damage: 5, Score: 100, Experience: 50, Size: 60},
		},
		Weapons: map[string]WeaponStats{
			WeaponPistol: {
				Title: "Pistol", Damage: 20, FireRateMS: 500, Spread: 0, Pellets: 1, ProjectileSpeed: 10, Color: "blue",
				Upgrades: []Upgrade{
					weaponUpgrade("Damage Up", "Increase pistol damage by 5", TargetWeaponDamage, 5, nil),
					weaponUpgrade("Fire Rate Up", "Decrease cooldown by 50ms", TargetFireRate, -50, Bound(200)),
					weaponUpgrade("Speed Up", "Increase projectile speed by 2", TargetProjectileSpeed, 2, nil),
				},
			},
			WeaponShotgun: {
				Title: "Shotgun", Damage: 10, FireRateMS: 800, Spread: 5, Pellets: 3, ProjectileSpeed: 10, Color: "magenta",
				Upgrades: []Upgrade{
					weaponUpgrade("Tighter Spread", "Reduce spread by 1 degree", TargetSpread, -1, Bound(1)),
					weaponUpgrade("More Pellets", "Add 1 more pellet", TargetPellets, 1, nil),
					weaponUpgrade("Damage Up", "Increase pellet damage by 3", TargetWeaponDamage, 3, nil),
					weaponUpgrade("Faster Reload", "Decrease cooldown by 100ms", TargetFireRate, -100, Bound(400)),
				},
			},
			WeaponMachineGun: {
				Title: "Machine Gun", Damage: 15, FireRateMS: 100, Spread: 2, Pellets: 1, ProjectileSpeed: 10, Color: "yellow",
				Upgrades: []Upgrade{
					weaponUpgrade("Faster Fire Rate", "Decrease cooldown by 10ms", TargetFireRate, -10, Bound(50)),
					weaponUpgrade("Tighter Spread", "Reduce spread by 0.5 degrees", TargetSpread, -0.5, Bound(0.5)),
					weaponUpgrade("Damage Up", "Increase damage by 3", TargetWeaponDamage, 3, nil),
					weaponUpgrade("Extended Magazine", "Decrease cooldown by 20ms", TargetFireRate, -20, Bound(50)),
				},
			},
			WeaponBazooka: {
				Title: "Bazooka", Damage: 50, FireRateMS: 1500, ExplosionRadius: 100, ParticleCount: 20, ParticleSize: 5, Color: "orange",
				Upgrades: []Upgrade{
					weaponUpgrade("Larger Explosion", "Increase explosion radius by 20", TargetExplosionRadius, 20, nil),
					weaponUpgrade("More Particles", "Add 5 more explosion particles", TargetParticleCount, 5, nil),
					weaponUpgrade("Larger Particles", "Increase particle size by 1", TargetParticleSize, 1, nil),
					weaponUpgrade("Faster Reload", "Decrease cooldown by 200ms", TargetFireRate, -200, Bound(800)),
					weaponUpgrade("Damage Up", "Increase explosion damage by 10", TargetWeaponDamage, 10, nil),
				},
			},
		},
		Projectiles: ProjectileConfig{Size: 10, EnemySpeed: 6, EnemySize: 8},
		Explosion:   ExplosionConfig{LifetimeFrames: 20},
		Upgrades: []Upgrade{
			{Name: "Speed Boost", Description: "Increase movement speed by 1",
				Effect: Effect{Target: TargetPlayerSpeed, Op: OpAdd, Amount: 1}},
			{Name: "Health Boost", Description: "Increase max health by 20",
				Effect: Effect{Target: TargetPlayerMaxHealth, Op: OpAdd, Amount: 20}},
			{Name: "Damage Boost", Description: "Increase damage by 20%",
				Effect: Effect{Target: TargetDamageMultiplier, Op: OpMul, Amount: 1.2}},
		},
	}
}

func weaponUpgrade(name, desc string, target EffectTarget, amount float64, minimum *float64) Upgrade {
	return Upgrade{
		Name:        name,
		Description: desc,
		Effect:      Effect{Target: target, Op: OpAdd, Amount: amount, Min: minimum},
	}
}
