package autopilot

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

// Result summarizes one simulated session.
type Result struct {
	SessionID string
	Phase     survivors.Phase
	Frames    uint64
	Score     int
	Level     int
	Kills     int
	Elapsed   time.Duration
}

// Run starts a session on g and lets p play it until the session ends,
// maxFrames frames have run (0 means no limit) or ctx is cancelled.
func Run(ctx context.Context, g *survivors.Game, p registry.Pilot, maxFrames uint64) (Result, error) {
	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	if g.Phase().Ended() {
		start.Set(core.ActionRestart)
	}
	if phase := g.Step(start); phase != survivors.PhasePlaying {
		return Result{}, fmt.Errorf("autopilot: session did not start (phase %s)", phase)
	}

	var frames uint64
	for !g.Phase().Ended() {
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
		if frames%600 == 0 {
			if err := ctx.Err(); err != nil {
				return summarize(g, frames), fmt.Errorf("autopilot: %w", err)
			}
		}
		g.Step(p.Decide(g.Snapshot()))
		frames++
	}
	return summarize(g, frames), nil
}

func summarize(g *survivors.Game, frames uint64) Result {
	s := g.Session()
	return Result{
		SessionID: s.ID,
		Phase:     g.Phase(),
		Frames:    frames,
		Score:     s.Player.Score,
		Level:     s.Player.Level,
		Kills:     s.Kills,
		Elapsed:   s.Elapsed,
	}
}
