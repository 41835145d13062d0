package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/autopilot"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

var (
	flagPilot     string
	flagRuns      int
	flagMaxFrames uint64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run sessions headless with an autopilot",
	Long: `Run one or more sessions without a terminal UI. An autopilot
decides movement, aim and upgrades every frame. Each run uses the
seed plus its index, so a fixed --seed repeats the same results.

Examples:
  survivors sim
  survivors sim --pilot turret --runs 10 --seed 7
  survivors sim --difficulty hard --max-frames 18000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagPilot, "pilot", "kite", "Autopilot to use (see 'survivors pilots')")
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of sessions to run")
	simCmd.Flags().Uint64Var(&flagMaxFrames, "max-frames", 0, "Stop each run after this many frames (0 = until it ends)")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagPilot) {
		return fmt.Errorf("unknown pilot %q, run 'survivors pilots' to see available pilots", flagPilot)
	}
	if flagRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	logger, closer, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := newGame(logger)
	if err != nil {
		return err
	}
	pilot, err := registry.Create(flagPilot)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results := make([]autopilot.Result, 0, flagRuns)
	for i := range flagRuns {
		runSeed := seed + int64(i)
		game.Reset(core.RuntimeConfig{TickRate: flagFPS, Seed: runSeed})
		pilot.Reset(runSeed)

		res, runErr := autopilot.Run(ctx, game, pilot, flagMaxFrames)
		if runErr != nil {
			logger.Warn("run interrupted", "run", i+1, "error", runErr)
			results = append(results, res)
			break
		}
		logger.Info("run finished", "run", i+1, "seed", runSeed, "phase", res.Phase, "score", res.Score)
		results = append(results, res)
	}

	fmt.Println(tui.ResultsTable(pilot.ID(), results))
	return nil
}
