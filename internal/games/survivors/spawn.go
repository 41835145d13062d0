package survivors

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/config"
)

// Director decides when, what and how many enemies enter the arena.
// Delay, Count and Pool are pure functions of elapsed session seconds.
type Director struct {
	cfg   config.SpawnConfig
	pools [][]EnemyType
}

// NewDirector builds a director from spawn settings. Unknown pool names are
// skipped; Validate rejects them before they get here.
func NewDirector(cfg config.SpawnConfig) *Director {
	d := &Director{cfg: cfg, pools: make([][]EnemyType, len(cfg.Pool))}
	for i, stage := range cfg.Pool {
		for _, name := range stage.Types {
			if t, ok := ParseEnemyType(name); ok {
				d.pools[i] = append(d.pools[i], t)
			}
		}
	}
	return d
}

// Delay returns the seconds between batches at time t.
func (d *Director) Delay(t float64) float64 {
	return math.Max(d.cfg.MinDelay, d.cfg.InitialDelay-d.cfg.Rate*t)
}

// Count returns the batch size at time t.
func (d *Director) Count(t float64) int {
	mult := 1.0
	if d.cfg.CountStepSeconds > 0 {
		mult += math.Floor(t/d.cfg.CountStepSeconds) * d.cfg.CountStep
	}
	// Epsilon absorbs accumulated float error: 1 + 10*0.1 must floor to 2.
	return max(1, int(math.Floor(mult+1e-9)))
}

// Pool returns the enemy types allowed at time t.
func (d *Director) Pool(t float64) []EnemyType {
	var pool []EnemyType
	for i, stage := range d.cfg.Pool {
		if stage.FromSeconds > t {
			break
		}
		pool = d.pools[i]
	}
	return pool
}

// Update spawns a batch into s if the delay has elapsed, and the boss
// the first time the boss threshold is crossed.
func (d *Director) Update(s *Session) {
	t := s.ElapsedSeconds()

	if t-s.LastSpawn >= d.Delay(t) {
		if pool := d.Pool(t); len(pool) > 0 {
			for range d.Count(t) {
				s.spawnEnemy(pool[s.rng.Intn(len(pool))])
			}
		}
		s.LastSpawn = t
	}

	if !s.BossSpawned && d.cfg.BossAtSeconds > 0 && t >= d.cfg.BossAtSeconds {
		boss := s.spawnEnemy(EnemyMiniBoss)
		s.BossSpawned = true
		s.logger.Info("boss spawned", "session", s.ID, "id", boss.ID, "elapsed", t)
	}
}
