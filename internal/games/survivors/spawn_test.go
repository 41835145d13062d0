package survivors

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/config"
)

func TestDirectorDelay(t *testing.T) {
	d := NewDirector(config.DefaultSurvivorsConfig().Spawn)

	tests := []struct {
		t        float64
		expected float64
	}{
		{0, 2.0},
		{10, 1.0},
		{15, 0.5},
		{20, 0.5},
		{100, 0.5},
	}

	for _, tc := range tests {
		if got := d.Delay(tc.t); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Delay(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestDirectorCount(t *testing.T) {
	d := NewDirector(config.DefaultSurvivorsConfig().Spawn)

	tests := []struct {
		t        float64
		expected int
	}{
		{0, 1},
		{10, 1},
		{95, 1},
		{100, 2},
		{150, 2},
		{200, 3},
		{900, 10},
	}

	for _, tc := range tests {
		if got := d.Count(tc.t); got != tc.expected {
			t.Errorf("Count(%v) = %d, expected %d", tc.t, got, tc.expected)
		}
	}
}

func TestDirectorPool(t *testing.T) {
	d := NewDirector(config.DefaultSurvivorsConfig().Spawn)

	tests := []struct {
		t        float64
		expected []EnemyType
	}{
		{0, []EnemyType{EnemyBasic}},
		{29.9, []EnemyType{EnemyBasic}},
		{30, []EnemyType{EnemyBasic, EnemyFast}},
		{50, []EnemyType{EnemyBasic, EnemyFast, EnemyTank}},
		{65, []EnemyType{EnemyBasic, EnemyFast, EnemyTank, EnemyRanged}},
	}

	for _, tc := range tests {
		if got := d.Pool(tc.t); !slices.Equal(got, tc.expected) {
			t.Errorf("Pool(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestDirectorUpdate(t *testing.T) {
	s := newTestSession(t)
	d := s.rules.director

	d.Update(s)
	if len(s.Enemies) != 0 {
		t.Fatalf("spawned %d enemies before the first delay", len(s.Enemies))
	}

	s.Elapsed = 2 * time.Second
	d.Update(s)
	if len(s.Enemies) != 1 {
		t.Fatalf("len(Enemies) = %d, expected 1 after the first delay", len(s.Enemies))
	}
	if s.LastSpawn != 2 {
		t.Errorf("LastSpawn = %v, expected 2", s.LastSpawn)
	}

	e := s.Enemies[0]
	if e.Type != EnemyBasic {
		t.Errorf("first enemy = %v, expected basic", e.Type)
	}
	if e.Box().Intersects(s.rules.playfield) {
		t.Errorf("enemy spawned at %v, expected outside the playfield", e.Pos)
	}

	s.Elapsed = 2500 * time.Millisecond
	d.Update(s)
	if len(s.Enemies) != 1 {
		t.Errorf("spawned again after 0.5s with a 1.75s delay")
	}
}

func TestDirectorBatchSize(t *testing.T) {
	s := newTestSession(t)
	s.BossSpawned = true
	s.Elapsed = 100 * time.Second

	s.rules.director.Update(s)
	if len(s.Enemies) != 2 {
		t.Errorf("len(Enemies) = %d, expected a batch of 2 at t=100", len(s.Enemies))
	}
}

func TestBossSpawnsOnce(t *testing.T) {
	s := newTestSession(t)
	d := s.rules.director

	countBosses := func() int {
		n := 0
		for _, e := range s.Enemies {
			if e.Type == EnemyMiniBoss {
				n++
			}
		}
		return n
	}

	s.Elapsed = 59 * time.Second
	s.LastSpawn = 59
	d.Update(s)
	if countBosses() != 0 {
		t.Fatal("boss spawned before its time")
	}

	for _, sec := range []float64{60, 61, 120} {
		s.Elapsed = time.Duration(sec * float64(time.Second))
		s.LastSpawn = sec
		d.Update(s)
	}
	if got := countBosses(); got != 1 {
		t.Errorf("boss count = %d, expected exactly 1", got)
	}
	if !s.BossSpawned {
		t.Error("BossSpawned should be set")
	}
}
