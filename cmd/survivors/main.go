// survivors is a terminal arena survival game.
//
// Usage:
//
//	survivors play           - Play in the terminal
//	survivors sim            - Run sessions headless with an autopilot
//	survivors pilots         - List available autopilots
//	survivors config         - Print the effective balance config as YAML
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--config <path>        - Load a custom balance config YAML
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survivors",
	Short: "TUI Survivors - Outlast the horde in your terminal",
	Long: `TUI Survivors is an arena survival game for the terminal.
Move, aim and fire while waves of enemies close in. Every level
up offers three upgrades. Survive fifteen minutes to win.

Available commands:
  play     - Play in the terminal
  sim      - Run sessions headless with an autopilot
  pilots   - List available autopilots
  config   - Print the effective balance config

Examples:
  survivors play
  survivors play --difficulty hard
  survivors sim --pilot kite --runs 5 --seed 42
  survivors config > my-survivors.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balance config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the balance config and applies the difficulty preset.
func loadConfig() (config.SurvivorsConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SurvivorsConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SurvivorsConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// newGame builds a game from the resolved config.
func newGame(logger *log.Logger, opts ...survivors.Option) (*survivors.Game, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	game, err := survivors.New(cfg, append(opts, survivors.WithLogger(logger))...)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	return game, nil
}

// newLogger builds the logger. When --log-file is set it wins over fallback.
// The returned closer releases the log file, if any.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closer := fallback, io.Closer(nopCloser{})
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivors",
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
