package survivors

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/config"
)

// ErrInvalidUpgrade is returned when an upgrade cannot be applied.
var ErrInvalidUpgrade = errors.New("invalid upgrade")

// OptionsPerLevel is the number of upgrade options offered on level up.
const OptionsPerLevel = 3

// Category groups upgrade options for variety in the offer.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryWeaponUnlock
	CategoryWeaponSpecific
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryWeaponUnlock:
		return "weapon-unlock"
	case CategoryWeaponSpecific:
		return "weapon-specific"
	default:
		return "unknown"
	}
}

// UpgradeOption is one choice presented on the upgrade screen.
type UpgradeOption struct {
	Slot        int // 1-3
	Name        string
	Description string
	Category    Category
	Effect      config.Effect
}

// AddExperience credits n experience and levels up at most once.
// It reports whether a level was gained.
func (p *Player) AddExperience(n int) bool {
	if n <= 0 {
		return false
	}
	p.Experience += n
	p.LevelExperience += n
	if p.LevelExperience < p.ExperienceToLevel {
		return false
	}

	p.Level++
	p.LevelExperience = 0
	p.ExperienceToLevel = int(math.Floor(float64(p.ExperienceToLevel) * p.levelGrowth))
	p.LeveledUp = true
	return true
}

// upgradePool lists every option currently available to p.
func upgradePool(p *Player, cfg config.SurvivorsConfig) []UpgradeOption {
	var pool []UpgradeOption
	for _, u := range cfg.Upgrades {
		pool = append(pool, UpgradeOption{
			Name:        u.Name,
			Description: u.Description,
			Category:    CategoryGeneral,
			Effect:      u.Effect,
		})
	}

	if len(p.Weapons) < p.maxWeapons {
		for t := range numWeaponTypes {
			if p.HasWeapon(t) {
				continue
			}
			title := cfg.Weapons[t.String()].Title
			pool = append(pool, UpgradeOption{
				Name:        "Unlock " + title,
				Description: fmt.Sprintf("Add the %s to your arsenal", title),
				Category:    CategoryWeaponUnlock,
				Effect: config.Effect{
					Target: config.TargetUnlockWeapon,
					Op:     config.OpUnlock,
					Weapon: t.String(),
				},
			})
		}
	}

	for _, w := range p.Weapons {
		ws := cfg.Weapons[w.Type.String()]
		for _, u := range ws.Upgrades {
			effect := u.Effect
			effect.Weapon = w.Type.String()
			pool = append(pool, UpgradeOption{
				Name:        ws.Title + ": " + u.Name,
				Description: u.Description,
				Category:    CategoryWeaponSpecific,
				Effect:      effect,
			})
		}
	}
	return pool
}

// GenerateUpgrades picks OptionsPerLevel options for p.
//
// The pool is shuffled and the first pass takes at most one option per
// category. Remaining slots are filled from the unchosen pool entries in
// their original order. Only a pool smaller than OptionsPerLevel is
// sampled with replacement, so duplicates appear nowhere else.
func GenerateUpgrades(p *Player, cfg config.SurvivorsConfig, rng *rand.Rand) []UpgradeOption {
	pool := upgradePool(p, cfg)
	if len(pool) == 0 {
		return nil
	}

	chosen := make([]UpgradeOption, 0, OptionsPerLevel)
	used := make([]bool, len(pool))
	seen := make(map[Category]bool)

	for _, i := range rng.Perm(len(pool)) {
		if len(chosen) == OptionsPerLevel {
			break
		}
		if seen[pool[i].Category] {
			continue
		}
		seen[pool[i].Category] = true
		used[i] = true
		chosen = append(chosen, pool[i])
	}

	for i := range pool {
		if len(chosen) == OptionsPerLevel {
			break
		}
		if !used[i] {
			used[i] = true
			chosen = append(chosen, pool[i])
		}
	}

	for len(chosen) < OptionsPerLevel {
		chosen = append(chosen, pool[rng.Intn(len(pool))])
	}

	for i := range chosen {
		chosen[i].Slot = i + 1
	}
	return chosen
}

// WeaponFactory builds a fresh weapon of the given type.
type WeaponFactory func(WeaponType) *Weapon

// ApplyEffect performs the single mutation e describes on p or one of its
// weapons, clamping the result to the effect bounds. Unlocks use newWeapon.
func ApplyEffect(p *Player, e config.Effect, newWeapon WeaponFactory) error {
	if e.Target == config.TargetUnlockWeapon {
		return applyUnlock(p, e, newWeapon)
	}

	if !e.Target.IsWeaponTarget() {
		switch e.Target {
		case config.TargetPlayerSpeed:
			return applyTo(&p.Speed, e)
		case config.TargetPlayerMaxHealth:
			if err := applyTo(&p.MaxHealth, e); err != nil {
				return err
			}
			p.Health = min(p.Health, p.MaxHealth)
			return nil
		case config.TargetDamageMultiplier:
			return applyTo(&p.DamageMultiplier, e)
		default:
			return fmt.Errorf("survivors: %w: unknown target %q", ErrInvalidUpgrade, e.Target)
		}
	}

	t, ok := ParseWeaponType(e.Weapon)
	if !ok {
		return fmt.Errorf("survivors: %w: unknown weapon %q", ErrInvalidUpgrade, e.Weapon)
	}
	w := p.Weapon(t)
	if w == nil {
		return fmt.Errorf("survivors: %w: %s not owned", ErrInvalidUpgrade, t)
	}

	switch e.Target {
	case config.TargetWeaponDamage:
		return applyTo(&w.Damage, e)
	case config.TargetFireRate:
		ms := float64(w.FireRate) / float64(time.Millisecond)
		if err := applyTo(&ms, e); err != nil {
			return err
		}
		w.FireRate = time.Duration(ms * float64(time.Millisecond))
		return nil
	case config.TargetSpread:
		return applyTo(&w.Spread, e)
	case config.TargetPellets:
		return applyToInt(&w.Pellets, e)
	case config.TargetProjectileSpeed:
		return applyTo(&w.ProjectileSpeed, e)
	case config.TargetExplosionRadius:
		return applyTo(&w.ExplosionRadius, e)
	case config.TargetParticleCount:
		return applyToInt(&w.ParticleCount, e)
	case config.TargetParticleSize:
		return applyToInt(&w.ParticleSize, e)
	}
	return fmt.Errorf("survivors: %w: unknown target %q", ErrInvalidUpgrade, e.Target)
}

func applyUnlock(p *Player, e config.Effect, newWeapon WeaponFactory) error {
	if e.Op != config.OpUnlock {
		return fmt.Errorf("survivors: %w: op %q on %s", ErrInvalidUpgrade, e.Op, e.Target)
	}
	t, ok := ParseWeaponType(e.Weapon)
	if !ok {
		return fmt.Errorf("survivors: %w: unknown weapon %q", ErrInvalidUpgrade, e.Weapon)
	}
	if p.HasWeapon(t) {
		return fmt.Errorf("survivors: %w: %s already owned", ErrInvalidUpgrade, t)
	}
	if !p.AddWeapon(newWeapon(t)) {
		return fmt.Errorf("survivors: %w: loadout full", ErrInvalidUpgrade)
	}
	return nil
}

func applyTo(v *float64, e config.Effect) error {
	var next float64
	switch e.Op {
	case config.OpAdd:
		next = *v + e.Amount
	case config.OpMul:
		next = *v * e.Amount
	default:
		return fmt.Errorf("survivors: %w: op %q on %s", ErrInvalidUpgrade, e.Op, e.Target)
	}
	if e.Min != nil {
		next = math.Max(next, *e.Min)
	}
	if e.Max != nil {
		next = math.Min(next, *e.Max)
	}
	*v = next
	return nil
}

func applyToInt(v *int, e config.Effect) error {
	f := float64(*v)
	if err := applyTo(&f, e); err != nil {
		return err
	}
	*v = int(math.Round(f))
	return nil
}
