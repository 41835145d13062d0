package survivors

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := newTestSession(t).Player

	if p.Pos != core.V(400, 300) {
		t.Errorf("Pos = %v, expected playfield center", p.Pos)
	}
	if p.ExperienceToLevel != 100 || p.LevelExperience != 0 || p.Experience != 0 {
		t.Errorf("experience = %d/%d (total %d), expected 0/100 (total 0)",
			p.LevelExperience, p.ExperienceToLevel, p.Experience)
	}
	if p.DamageMultiplier != 1 {
		t.Errorf("DamageMultiplier = %v, expected 1", p.DamageMultiplier)
	}
	if !p.HasWeapon(WeaponPistol) || p.HasWeapon(WeaponShotgun) {
		t.Error("player should start with only the pistol")
	}
}

func TestAddWeapon(t *testing.T) {
	s := newTestSession(t)
	p := s.Player

	if p.AddWeapon(s.rules.newWeapon(WeaponPistol)) {
		t.Error("AddWeapon() should decline a duplicate type")
	}
	for _, wt := range []WeaponType{WeaponShotgun, WeaponMachineGun, WeaponBazooka} {
		if !p.AddWeapon(s.rules.newWeapon(wt)) {
			t.Errorf("AddWeapon(%v) should succeed", wt)
		}
	}
	if len(p.Weapons) != 4 {
		t.Fatalf("len(Weapons) = %d, expected 4", len(p.Weapons))
	}
	for i, wt := range []WeaponType{WeaponPistol, WeaponShotgun, WeaponMachineGun, WeaponBazooka} {
		if p.Weapons[i].Type != wt {
			t.Errorf("Weapons[%d] = %v, expected %v (acquisition order)", i, p.Weapons[i].Type, wt)
		}
	}

	capped := newTestSession(t).Player
	capped.maxWeapons = 2
	capped.AddWeapon(s.rules.newWeapon(WeaponShotgun))
	if capped.AddWeapon(s.rules.newWeapon(WeaponBazooka)) {
		t.Error("AddWeapon() should decline when the loadout is full")
	}
}

func TestSelectWeapon(t *testing.T) {
	p := newTestSession(t).Player

	tests := []struct {
		slot     int
		expected bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{-1, false},
	}

	for _, tc := range tests {
		if got := p.SelectWeapon(tc.slot); got != tc.expected {
			t.Errorf("SelectWeapon(%d) = %v, expected %v", tc.slot, got, tc.expected)
		}
	}
	if p.ActiveWeapon != 0 {
		t.Errorf("ActiveWeapon = %d, expected 0", p.ActiveWeapon)
	}
}

func TestExplosionDamageAt(t *testing.T) {
	x := &Explosion{Radius: 100, Damage: 50}

	tests := []struct {
		r        float64
		expected float64
	}{
		{0, 50},
		{50, 37.5},
		{100, 25},
		{100.5, 0},
	}

	for _, tc := range tests {
		if got := x.DamageAt(tc.r); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("DamageAt(%v) = %v, expected %v", tc.r, got, tc.expected)
		}
	}
}

func TestTypeNames(t *testing.T) {
	for et := range numEnemyTypes {
		got, ok := ParseEnemyType(et.String())
		if !ok || got != et {
			t.Errorf("ParseEnemyType(%q) = %v, %v", et.String(), got, ok)
		}
	}
	for wt := range numWeaponTypes {
		got, ok := ParseWeaponType(wt.String())
		if !ok || got != wt {
			t.Errorf("ParseWeaponType(%q) = %v, %v", wt.String(), got, ok)
		}
	}
	if _, ok := ParseWeaponType("laser"); ok {
		t.Error("ParseWeaponType should reject unknown names")
	}
	if EnemyType(99).String() != "unknown" {
		t.Errorf("EnemyType(99).String() = %q, expected unknown", EnemyType(99).String())
	}
}
