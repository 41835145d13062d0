package survivors

import "slices"

// resolveCollisions applies one frame of damage and removals.
// Each pass marks entities and compacts the collections afterwards, so no
// slice is mutated while it is being iterated.
func resolveCollisions(s *Session) {
	fireEnemyShots(s)
	resolveContact(s)
	resolveEnemyShots(s)
	resolvePlayerShots(s)
	resolveExplosions(s)
}

// resolveContact damages the player for every touching enemy. The enemy is
// destroyed but grants no score or experience.
func resolveContact(s *Session) {
	p := s.Player
	box := p.Box()
	for _, e := range s.Enemies {
		if e.dead || !box.Intersects(e.Box()) {
			continue
		}
		p.TakeDamage(e.Damage)
		e.dead = true
	}
	s.Enemies = slices.DeleteFunc(s.Enemies, (*Enemy).Dead)
}

func resolveEnemyShots(s *Session) {
	p := s.Player
	box := p.Box()
	for _, pr := range s.Projectiles {
		if pr.Side != SideEnemy || pr.removed || !box.Intersects(pr.Box()) {
			continue
		}
		p.TakeDamage(pr.Damage)
		pr.removed = true
	}
	s.Projectiles = slices.DeleteFunc(s.Projectiles, (*Projectile).Removed)
}

// resolvePlayerShots hits the first live enemy each player projectile
// overlaps. The projectile is consumed whether or not the enemy dies.
func resolvePlayerShots(s *Session) {
	for _, pr := range s.Projectiles {
		if pr.Side != SidePlayer || pr.removed {
			continue
		}
		box := pr.Box()
		for _, e := range s.Enemies {
			if e.dead || !box.Intersects(e.Box()) {
				continue
			}
			if e.TakeDamage(pr.Damage) {
				s.kill(e)
			}
			pr.removed = true
			break
		}
	}
	s.Projectiles = slices.DeleteFunc(s.Projectiles, (*Projectile).Removed)
	s.Enemies = slices.DeleteFunc(s.Enemies, (*Enemy).Dead)
}

// resolveExplosions applies falloff damage to every enemy in range for each
// live explosion, then ages explosions and drops expired ones.
func resolveExplosions(s *Session) {
	for _, x := range s.Explosions {
		for _, e := range s.Enemies {
			if e.dead {
				continue
			}
			r := x.Origin.Dist(e.Pos)
			if r > x.Radius {
				continue
			}
			if e.TakeDamage(x.DamageAt(r)) {
				s.kill(e)
			}
		}
		x.Age++
	}
	s.Enemies = slices.DeleteFunc(s.Enemies, (*Enemy).Dead)
	s.Explosions = slices.DeleteFunc(s.Explosions, (*Explosion).Expired)
}

// kill marks e dead and credits the player exactly once.
func (s *Session) kill(e *Enemy) {
	if e.dead {
		return
	}
	e.dead = true
	s.Kills++
	s.Player.Score += e.ScoreValue
	s.Player.AddExperience(e.ExperienceValue)
}
