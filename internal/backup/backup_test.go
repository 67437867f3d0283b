package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bpstudios/widescreen/internal/storage"
)

func newSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widescreen.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("streak", "5"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func newJSONStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widescreen.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("streak", "5"); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndList(t *testing.T) {
	stores := map[string]string{
		"sqlite": newSQLiteStore(t),
		"json":   newJSONStore(t),
	}
	for name, storePath := range stores {
		t.Run(name, func(t *testing.T) {
			manager := NewManager(storePath)

			path, err := manager.Create()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("snapshot missing: %v", err)
			}
			if filepath.Ext(path) != filepath.Ext(storePath) {
				t.Errorf("snapshot extension %q does not match store", filepath.Ext(path))
			}

			backups, err := manager.List()
			if err != nil {
				t.Fatal(err)
			}
			if len(backups) != 1 {
				t.Fatalf("got %d backups, want 1", len(backups))
			}
			if backups[0].Size == 0 {
				t.Error("snapshot is empty")
			}
		})
	}
}

func TestCreateMissingStore(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := manager.Create(); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestSameSecondSnapshotsGetUniqueNames(t *testing.T) {
	storePath := newJSONStore(t)
	manager := NewManager(storePath)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := manager.Create()
		if err != nil {
			t.Fatal(err)
		}
		if seen[path] {
			t.Fatalf("duplicate snapshot path %s", path)
		}
		seen[path] = true
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("got %d backups, want 3", len(backups))
	}
}

func TestRotation(t *testing.T) {
	storePath := newJSONStore(t)
	manager := NewManager(storePath)

	// Pre-populate more snapshots than the retention limit, spread
	// over distinct timestamps so rotation ordering is deterministic
	if err := os.MkdirAll(manager.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute).Format(timestampFormat)
		name := fmt.Sprintf("%s%s.json", BackupFilePrefix, stamp)
		if err := os.WriteFile(filepath.Join(manager.BackupDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := manager.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), MaxBackups)
	}
	// The newest snapshot survives rotation
	if backups[0].Timestamp.Before(base) {
		t.Error("rotation kept the wrong snapshots")
	}
}

func TestRestoreSQLite(t *testing.T) {
	storePath := newSQLiteStore(t)
	manager := NewManager(storePath)

	snapshot, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the store after the snapshot
	store := storage.NewSQLiteStore(storePath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("streak", "0"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if err := manager.Restore(snapshot); err != nil {
		t.Fatal(err)
	}

	restored := storage.NewSQLiteStore(storePath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	value, ok, err := restored.Get("streak")
	if err != nil || !ok || value != "5" {
		t.Errorf("restored streak = %q ok=%v err=%v, want 5", value, ok, err)
	}
}

func TestRestoreJSON(t *testing.T) {
	storePath := newJSONStore(t)
	manager := NewManager(storePath)

	snapshot, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewJSONStore(storePath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("streak", "0"); err != nil {
		t.Fatal(err)
	}

	if err := manager.Restore(snapshot); err != nil {
		t.Fatal(err)
	}

	restored := storage.NewJSONStore(storePath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	value, ok, err := restored.Get("streak")
	if err != nil || !ok || value != "5" {
		t.Errorf("restored streak = %q ok=%v err=%v, want 5", value, ok, err)
	}
}

func TestRestoreRejectsGarbageSQLite(t *testing.T) {
	storePath := newSQLiteStore(t)
	manager := NewManager(storePath)

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := manager.Restore(garbage); err == nil {
		t.Fatal("expected restore of garbage to fail")
	}
}
