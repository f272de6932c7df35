package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// newWallRunner returns a runner whose level is a full ring of walls right
// after the intro, so four steps always end the run.
func newWallRunner(t *testing.T) (*Runner, *storage.Store) {
	t.Helper()
	dir := t.TempDir()

	p := filepath.Join(dir, "walls.txt")
	if err := os.WriteFile(p, []byte("3 1 ### 0"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	r := NewRunner(hexagon.New(patterns.FileSource(p)), store, nil)
	if err := r.Reset(core.RuntimeConfig{Seed: 7}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return r, store
}

func frameOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRunnerJournalsDeathOnce(t *testing.T) {
	r, store := newWallRunner(t)

	res := r.Step(frameOf(core.ActionStep, core.ActionStep, core.ActionStep, core.ActionStep))
	if !res.State.GameOver {
		t.Fatal("expected the wall to end the run")
	}
	r.Step(frameOf(core.ActionStep))
	r.Finish(CauseQuit)

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 journaled run, got %d", len(runs))
	}

	run := runs[0]
	if run.Cause != "wall" || run.Distance != 4 || len(run.Actions) != 4 {
		t.Errorf("run = %+v", run)
	}
	if run.GameID != "walls" || run.Lanes != 3 {
		t.Errorf("run identity = %q/%d lanes", run.GameID, run.Lanes)
	}
	if r.LastRunID() != run.ID {
		t.Errorf("LastRunID() = %d, expected %d", r.LastRunID(), run.ID)
	}
}

func TestRunnerSplitsFrameAtRestart(t *testing.T) {
	r, store := newWallRunner(t)

	res := r.Step(frameOf(core.ActionStep, core.ActionStep, core.ActionRestart, core.ActionRotateCW))
	if !res.Restarted {
		t.Error("expected Restarted")
	}
	if res.State.Score != 1 {
		t.Errorf("distance after restart = %d, expected 1", res.State.Score)
	}

	r.Finish(CauseQuit)

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 journaled runs, got %d", len(runs))
	}

	// Newest first.
	if runs[0].Cause != CauseQuit || len(runs[0].Actions) != 1 || runs[0].Actions[0] != core.ActionRotateCW {
		t.Errorf("second run = %+v", runs[0])
	}
	if runs[1].Cause != CauseRestart || runs[1].Distance != 2 {
		t.Errorf("first run = %+v", runs[1])
	}
	if runs[0].Seed == runs[1].Seed {
		t.Error("each run should get its own seed")
	}
}

func TestRunnerSkipsEmptyRuns(t *testing.T) {
	r, store := newWallRunner(t)

	r.Step(frameOf(core.ActionRestart, core.ActionRestart))
	r.Finish(CauseQuit)

	stats, err := store.GetGameStats("walls")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRuns != 0 {
		t.Errorf("expected no journaled runs, got %d", stats.TotalRuns)
	}
}

func TestRunnerWithoutStore(t *testing.T) {
	r := NewRunner(hexagon.New(patterns.BuiltinSource("hexagon")), nil, nil)
	if err := r.Reset(core.RuntimeConfig{Seed: 1}); err != nil {
		t.Fatal(err)
	}

	r.Step(frameOf(core.ActionStep, core.ActionRestart))
	r.Finish(CauseQuit)

	if r.LastRunID() != 0 {
		t.Error("nothing should be journaled without a store")
	}
}

func TestRunnerJournalsLiveRunOnClose(t *testing.T) {
	r, store := newWallRunner(t)
	r.Step(frameOf(core.ActionStep, core.ActionStep))

	// A frontend closing without a quit key still finishes the run, and
	// may finish it again on its way out.
	r.Finish(CauseQuit)
	r.Finish(CauseQuit)

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 journaled run, got %d", len(runs))
	}
	if runs[0].Cause != CauseQuit || runs[0].Distance != 2 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestReplayJournaledRun(t *testing.T) {
	r, store := newWallRunner(t)
	r.Step(frameOf(core.ActionRotateCCW, core.ActionStep, core.ActionHurdle, core.ActionStep))

	rec, err := store.RunByID(r.LastRunID())
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}

	g := r.Game().(*hexagon.Game)
	cfg := ReplayConfig(g.Config(), *rec)
	replayed, err := hexagon.Replay(patterns.SourceFromID(rec.Catalog), cfg, rec.Seed, rec.Actions)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	snap := replayed.Snapshot()
	if snap.Alive || snap.Offset != rec.Distance || snap.Cause != rec.Cause {
		t.Errorf("replay = %+v, journal = %+v", snap, rec)
	}
}

func TestConfigure(t *testing.T) {
	g := hexagon.New(patterns.BuiltinSource("hexagon"))
	cfg := g.Config()
	cfg.Level.IntroLength = 9

	if err := Configure(g, cfg, nil); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if g.Config().Level.IntroLength != 9 {
		t.Error("config not applied")
	}

	cfg.Palette.Dark = "not a color"
	if err := Configure(g, cfg, nil); err == nil {
		t.Error("expected palette error")
	}
}
