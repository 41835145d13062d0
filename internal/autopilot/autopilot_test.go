package autopilot

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

func newGame(t *testing.T, seed int64) *survivors.Game {
	t.Helper()
	g, err := survivors.New(config.DefaultSurvivorsConfig())
	if err != nil {
		t.Fatalf("survivors.New() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})
	return g
}

func TestPilotsRegistered(t *testing.T) {
	for _, id := range []string{"turret", "kite"} {
		p, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q) error: %v", id, err)
		}
		if p.ID() != id {
			t.Errorf("ID() = %q, expected %q", p.ID(), id)
		}
	}
}

func TestTurretAimsAtNearest(t *testing.T) {
	snap := survivors.Snapshot{
		Phase:  survivors.PhasePlaying,
		Player: survivors.EntityView{Pos: core.V(400, 300)},
		Enemies: []survivors.EntityView{
			{ID: 1, Pos: core.V(100, 100)},
			{ID: 2, Pos: core.V(420, 310)},
		},
	}

	in := NewTurret().Decide(snap)
	if !in.Fire || in.Aim != core.V(420, 310) {
		t.Errorf("Decide() = fire %v aim %v, expected fire at the nearest enemy", in.Fire, in.Aim)
	}
	if in.Move != (core.Vec2{}) {
		t.Errorf("turret moved: %v", in.Move)
	}

	snap.Enemies = nil
	if in := NewTurret().Decide(snap); in.Fire {
		t.Error("turret should hold fire with no targets")
	}
}

func TestKiteFleesAndPicksValidSlot(t *testing.T) {
	k := NewKite()
	k.Reset(7)

	snap := survivors.Snapshot{
		Phase:   survivors.PhasePlaying,
		Width:   800,
		Height:  600,
		Player:  survivors.EntityView{Pos: core.V(400, 300)},
		Enemies: []survivors.EntityView{{Pos: core.V(450, 300)}},
	}
	in := k.Decide(snap)
	if in.Move.X >= 0 {
		t.Errorf("Move = %v, expected to run left from an enemy on the right", in.Move)
	}

	snap.Phase = survivors.PhaseUpgrading
	snap.Upgrades = []survivors.UpgradeOption{{Slot: 1}, {Slot: 2}, {Slot: 3}}
	for range 20 {
		if sel := k.Decide(snap).Select; sel < 1 || sel > 3 {
			t.Fatalf("Select = %d, expected 1-3", sel)
		}
	}
}

func TestRunUntilLimit(t *testing.T) {
	g := newGame(t, 11)

	res, err := Run(context.Background(), g, NewKite(), 1200)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Frames != 1200 && !res.Phase.Ended() {
		t.Errorf("Run() stopped after %d frames in phase %v", res.Frames, res.Phase)
	}
	if res.SessionID == "" || res.Elapsed <= 0 {
		t.Errorf("Run() = %+v, expected a started session", res)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(context.Background(), newGame(t, 5), NewTurret(), 1800)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), newGame(t, 5), NewTurret(), 1800)
	if err != nil {
		t.Fatal(err)
	}
	if a.Score != b.Score || a.Kills != b.Kills || a.Frames != b.Frames || a.Phase != b.Phase {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, newGame(t, 1), NewTurret(), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}
