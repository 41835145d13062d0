package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *SurvivorsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth *= 1.5
		cfg.Spawn.InitialDelay *= 1.25
		cfg.Spawn.MinDelay *= 1.5
	case DifficultyHard:
		cfg.Player.MaxHealth *= 0.75
		cfg.Spawn.Rate *= 1.5
		cfg.Spawn.MinDelay *= 0.7
	}
}
