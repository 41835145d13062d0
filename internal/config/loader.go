package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the survivors configuration.
// Search order: customPath -> ~/.arcade/configs/survivors.yaml -> ./configs/survivors.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (SurvivorsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SurvivorsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return SurvivorsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("survivors.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/survivors.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// Parse decodes a YAML document over the default configuration and validates the result.
// Enemy and weapon entries are merged field by field, so a partial entry keeps the
// defaults it does not name.
func Parse(data []byte) (SurvivorsConfig, error) {
	cfg := embeddedDefault()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SurvivorsConfig{}, err
	}

	var entries struct {
		Enemies map[string]yaml.Node `yaml:"enemies"`
		Weapons map[string]yaml.Node `yaml:"weapons"`
	}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return SurvivorsConfig{}, err
	}
	defaults := embeddedDefault()
	for name, node := range entries.Enemies {
		e := defaults.Enemies[name]
		if err := node.Decode(&e); err != nil {
			return SurvivorsConfig{}, fmt.Errorf("enemies: %s: %w", name, err)
		}
		cfg.Enemies[name] = e
	}
	for name, node := range entries.Weapons {
		w := defaults.Weapons[name]
		if err := node.Decode(&w); err != nil {
			return SurvivorsConfig{}, fmt.Errorf("weapons: %s: %w", name, err)
		}
		cfg.Weapons[name] = w
	}

	if err := cfg.Validate(); err != nil {
		return SurvivorsConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg SurvivorsConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// embeddedDefault decodes the embedded YAML, falling back to the hardcoded default.
func embeddedDefault() SurvivorsConfig {
	var cfg SurvivorsConfig
	if err := yaml.Unmarshal(defaultSurvivorsYAML, &cfg); err != nil {
		return DefaultSurvivorsConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports every inconsistency in the configuration.
func (c SurvivorsConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield: size must be positive")
	check(c.Session.DurationSeconds > 0, "session: duration_seconds must be positive")

	check(c.Player.Speed >= 0, "player: speed must not be negative")
	check(c.Player.MaxHealth > 0, "player: max_health must be positive")
	check(c.Player.Size > 0, "player: size must be positive")
	check(c.Player.ExperienceToLevel > 0, "player: experience_to_level must be positive")
	check(c.Player.LevelGrowth >= 1, "player: level_growth must be at least 1")
	check(c.Player.MaxWeapons >= 1 && c.Player.MaxWeapons <= len(WeaponNames),
		"player: max_weapons must be between 1 and %d", len(WeaponNames))
	_, ok := c.Weapons[c.Player.StartingWeapon]
	check(ok, "player: unknown starting_weapon %q", c.Player.StartingWeapon)

	check(c.Spawn.MinDelay > 0, "spawn: min_delay must be positive")
	check(c.Spawn.InitialDelay >= c.Spawn.MinDelay, "spawn: initial_delay must be at least min_delay")
	check(c.Spawn.CountStepSeconds > 0, "spawn: count_step_seconds must be positive")
	check(len(c.Spawn.Pool) > 0, "spawn: pool must not be empty")
	for i, stage := range c.Spawn.Pool {
		check(len(stage.Types) > 0, "spawn: pool stage %d has no types", i)
		if i > 0 {
			check(stage.FromSeconds > c.Spawn.Pool[i-1].FromSeconds, "spawn: pool stage %d is out of order", i)
		}
		for _, name := range stage.Types {
			_, ok := c.Enemies[name]
			check(ok, "spawn: pool stage %d names unknown enemy %q", i, name)
		}
	}

	for _, name := range EnemyNames {
		e, ok := c.Enemies[name]
		if !ok {
			errs = append(errs, fmt.Errorf("enemies: missing %q", name))
			continue
		}
		check(e.Health > 0 && e.Size > 0, "enemies: %s needs positive health and size", name)
	}
	ranged := c.Enemies[EnemyRanged]
	check(ranged.AttackRange > 0 && ranged.AttackDelayMS > 0, "enemies: ranged needs attack_range and attack_delay_ms")

	for _, name := range WeaponNames {
		w, ok := c.Weapons[name]
		if !ok {
			errs = append(errs, fmt.Errorf("weapons: missing %q", name))
			continue
		}
		check(w.FireRateMS > 0, "weapons: %s needs a positive fire_rate_ms", name)
		for _, u := range w.Upgrades {
			check(u.Effect.Target.IsWeaponTarget() && u.Effect.Op != OpUnlock,
				"weapons: %s upgrade %q must target a weapon field", name, u.Name)
			errs = append(errs, validateEffect(u)...)
		}
	}
	check(c.Weapons[WeaponBazooka].ExplosionRadius > 0, "weapons: bazooka needs a positive explosion_radius")

	check(c.Projectiles.Size > 0, "projectiles: size must be positive")
	check(c.Explosion.LifetimeFrames > 0, "explosion: lifetime_frames must be positive")

	check(len(c.Upgrades) > 0, "upgrades: at least one general upgrade is required")
	for _, u := range c.Upgrades {
		check(!u.Effect.Target.IsWeaponTarget() || u.Effect.Weapon != "",
			"upgrades: %q targets a weapon field without naming the weapon", u.Name)
		errs = append(errs, validateEffect(u)...)
	}

	return errors.Join(errs...)
}

func validateEffect(u Upgrade) []error {
	var errs []error
	e := u.Effect
	if !e.Target.valid() {
		errs = append(errs, fmt.Errorf("upgrade %q: unknown target %q", u.Name, e.Target))
	}
	switch e.Op {
	case OpAdd, OpMul:
	case OpUnlock:
		if e.Target != TargetUnlockWeapon {
			errs = append(errs, fmt.Errorf("upgrade %q: unlock only applies to %s", u.Name, TargetUnlockWeapon))
		}
	default:
		errs = append(errs, fmt.Errorf("upgrade %q: unknown op %q", u.Name, e.Op))
	}
	if e.Min != nil && e.Max != nil && *e.Min > *e.Max {
		errs = append(errs, fmt.Errorf("upgrade %q: min exceeds max", u.Name))
	}
	return errs
}
