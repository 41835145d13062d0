package survivors

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// FireWeapons fires every owned weapon whose cooldown has expired at now.
// All owned weapons fire together; the active weapon is display only.
// It returns the number of weapons that fired.
func FireWeapons(s *Session, aim core.Vec2, now time.Duration) int {
	p := s.Player
	fired := 0
	for _, w := range p.Weapons {
		if now < p.Cooldowns[w.Type] {
			continue
		}
		p.Cooldowns[w.Type] = now + w.FireRate
		fireWeapon(s, w, aim)
		fired++
	}
	return fired
}

// fireWeapon emits the projectiles or explosion for one trigger pull.
// An aim point on top of the player has no direction: the shot is spent
// but nothing travels.
func fireWeapon(s *Session, w *Weapon, aim core.Vec2) {
	p := s.Player
	damage := math.Floor(w.Damage * p.DamageMultiplier)
	size := s.rules.cfg.Projectiles.Size

	if w.Type == WeaponBazooka {
		s.addExplosion(aim, w, damage)
		return
	}

	base, ok := aim.Sub(p.Pos).Normalize()
	if !ok {
		return
	}

	switch w.Type {
	case WeaponShotgun:
		for range max(1, w.Pellets) {
			dir := spreadDir(base, w.Spread, s.rng.Float64())
			s.addProjectile(p.Pos, dir, w.ProjectileSpeed, damage, SidePlayer, w.Color, size)
		}
	case WeaponMachineGun:
		dir := spreadDir(base, w.Spread, s.rng.Float64())
		s.addProjectile(p.Pos, dir, w.ProjectileSpeed, damage, SidePlayer, w.Color, size)
	default:
		s.addProjectile(p.Pos, base, w.ProjectileSpeed, damage, SidePlayer, w.Color, size)
	}
}

// spreadDir rotates base by a uniform offset in [-spread, +spread] degrees.
// u is a sample in [0, 1). Every pellet is perturbed around the same base.
func spreadDir(base core.Vec2, spread, u float64) core.Vec2 {
	if spread <= 0 {
		return base
	}
	offset := (u*2 - 1) * spread * math.Pi / 180
	return core.FromAngle(base.Angle() + offset)
}

// fireEnemyShots turns raised ranged attack flags into enemy projectiles
// aimed at the player's current position.
func fireEnemyShots(s *Session) {
	pc := s.rules.cfg.Projectiles
	for _, e := range s.Enemies {
		if !e.Attacking {
			continue
		}
		e.Attacking = false
		dir, ok := s.Player.Pos.Sub(e.Pos).Normalize()
		if !ok {
			continue
		}
		s.addProjectile(e.Pos, dir, pc.EnemySpeed, e.Damage, SideEnemy, "red", pc.EnemySize)
	}
}
