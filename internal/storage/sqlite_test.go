package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/hexlanes/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	run := RunRecord{
		GameID:      "hexagon",
		Catalog:     "hexagon",
		Seed:        -8214639201,
		Lanes:       6,
		IntroLength: 4,
		LevelLength: 300,
		Actions:     []core.Action{core.ActionStep, core.ActionRotateCCW, core.ActionHurdle, core.ActionRotateCW},
		Distance:    4,
		Cause:       "wall",
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}

	run.ID = id
	run.CreatedAt = got.CreatedAt
	if !reflect.DeepEqual(*got, run) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, run)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RunByID(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"hexagon", "square", "hexagon", "hexagon"} {
		if _, err := store.SaveRun(RunRecord{GameID: game, Catalog: game, Distance: i, Cause: "wall"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("hexagon", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].Distance != 3 || runs[1].Distance != 2 {
		t.Errorf("unexpected order: %d, %d", runs[0].Distance, runs[1].Distance)
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 runs across games, got %d", len(all))
	}
}

func TestDeleteRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "hexagon", Catalog: "hexagon", Cause: "quit"}) //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "octagon", Catalog: "octagon", Cause: "quit"}) //nolint:errcheck

	if err := store.DeleteRuns("hexagon"); err != nil {
		t.Fatalf("DeleteRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns("hexagon", 10)
	if len(runs) != 0 {
		t.Errorf("expected no hexagon runs, got %d", len(runs))
	}
	runs, _ = store.RecentRuns("octagon", 10)
	if len(runs) != 1 {
		t.Errorf("octagon runs should be kept, got %d", len(runs))
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("hexagon")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.TotalRuns != 0 || stats.TotalMoves != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(RunRecord{GameID: "hexagon", Catalog: "hexagon", Distance: 10, Cause: "wall"}) //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "hexagon", Catalog: "hexagon", Distance: 5, Cause: "wall"})  //nolint:errcheck

	stats, err = store.GetGameStats("hexagon")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.TotalRuns != 2 || stats.TotalMoves != 15 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestActionsEncoding(t *testing.T) {
	actions := []core.Action{core.ActionRotateCCW, core.ActionRotateCW, core.ActionStep, core.ActionHurdle}
	enc := EncodeActions(actions)
	if enc != "lrsh" {
		t.Errorf("EncodeActions = %q, expected lrsh", enc)
	}

	dec, err := DecodeActions(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dec, actions) {
		t.Errorf("DecodeActions = %v", dec)
	}

	if EncodeActions([]core.Action{core.ActionQuit, core.ActionRestart}) != "" {
		t.Error("non-move actions should be skipped")
	}
	if _, err := DecodeActions("sx"); err == nil {
		t.Error("expected error for unknown letter")
	}
}
