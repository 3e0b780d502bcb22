package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hoops/internal/progress"
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
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	for _, level := range []int{4, 2, 9} {
		if _, err := store.SaveRun("alice", level); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun("bob", 12); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("alice", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Level != 9 || runs[1].Level != 4 || runs[2].Level != 2 {
		t.Errorf("Runs not sorted by level: %+v", runs)
	}
	if runs[0].Profile != "alice" {
		t.Errorf("Profile = %q, want alice", runs[0].Profile)
	}

	limited, err := store.TopRuns("alice", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}

	all, err := store.AllRuns("alice")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 3 || all[0].Level != 9 {
		t.Errorf("AllRuns should list newest first, got %+v", all)
	}
}

func TestStoreBestLevel(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestLevel("alice")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for a profile without runs, got %d", best)
	}

	store.SaveRun("alice", 3)
	store.SaveRun("alice", 7)

	best, err = store.BestLevel("alice")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 7 {
		t.Errorf("Expected best level 7, got %d", best)
	}
}

func TestStoreClearRunsAndProfiles(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("bob", 2)
	store.SaveRun("alice", 5)
	store.SaveRun("alice", 1)

	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 2 || profiles[0] != "alice" || profiles[1] != "bob" {
		t.Errorf("Profiles() = %v", profiles)
	}

	if err := store.ClearRuns("alice"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.TopRuns("alice", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("bob", 10)
	if len(runs) != 1 {
		t.Error("Clearing alice should not touch bob")
	}
}

func TestStoreProfileStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetProfileStats("nobody")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.BestLevel != 0 {
		t.Errorf("Unexpected stats for empty profile: %+v", empty)
	}

	store.SaveRun("alice", 2)
	store.SaveRun("alice", 6)

	stats, err := store.GetProfileStats("alice")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.BestLevel != 6 || stats.AvgLevel != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestStoreProgressKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("level"); err != nil || ok {
		t.Fatalf("Get() on empty table = ok:%v err:%v", ok, err)
	}

	if err := store.Set("level", "3"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("level", "4"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	v, ok, err := store.Get("level")
	if err != nil || !ok || v != "4" {
		t.Errorf("Get() = %q, %v, %v; want 4", v, ok, err)
	}

	if err := store.Delete("level"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("level"); ok {
		t.Error("Value still present after Delete")
	}
	if err := store.Delete("level"); err != nil {
		t.Errorf("Deleting a missing key should succeed: %v", err)
	}
}

func TestStoreBacksProgression(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "progress.db")
	logger := log.New(io.Discard)

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ps := progress.NewStore(progress.Prefixed("alice", store), progress.DefaultRules(), logger)
	want := progress.Session{ShotsRemaining: 6, Level: 3, MaxLevel: 8}
	if err := ps.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	store.Close()

	// Reopen to prove the values reached the file.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := progress.NewStore(progress.Prefixed("alice", store), progress.DefaultRules(), logger).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestOpenBackend(t *testing.T) {
	store := openTestStore(t)

	b, err := OpenBackend(BackendSQLite, store, "hoops-test")
	if err != nil || b != progress.Backend(store) {
		t.Errorf("sqlite backend = %v, %v", b, err)
	}
	if _, err := OpenBackend(BackendSQLite, nil, "hoops-test"); err == nil {
		t.Error("sqlite backend without a database should fail")
	}
	if b, err := OpenBackend(BackendMemory, nil, ""); err != nil || b == nil {
		t.Errorf("memory backend = %v, %v", b, err)
	}
	if _, err := OpenBackend("floppy", nil, ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v", err)
	}
}
