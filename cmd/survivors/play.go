package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
)

var flagRealtime bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a session in the terminal.

Controls:
  WASD/Arrows/HJKL  - Move
  Mouse             - Aim (hold left button to fire)
  Space             - Toggle auto fire
  1-4               - Switch weapon, or pick an upgrade
  Enter             - Start
  P/Esc             - Pause
  R                 - Restart (after game over or victory)
  Ctrl+S            - Save a screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More health, slower spawns
  normal - Balance config as loaded
  hard   - Less health, faster spawns

Examples:
  survivors play
  survivors play --difficulty easy
  survivors play --config ./my-survivors.yaml --log-file survivors.log
  survivors play --realtime`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Time the session by the wall clock instead of fixed frames")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Logs would tear the alternate screen, so they only go to --log-file
	logger, closer, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	var opts []survivors.Option
	if flagRealtime {
		opts = append(opts, survivors.WithClock(core.NewSystemClock()))
	}
	game, err := newGame(logger, opts...)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	return tui.Run(game, cfg, logger)
}
