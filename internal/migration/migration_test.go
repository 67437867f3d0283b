package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func migrationsFS(files map[string]string) fstest.MapFS {
	mapFS := fstest.MapFS{}
	for name, content := range files {
		mapFS[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mapFS
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 on a fresh database, got %d", version)
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql":   "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
		"002_extend.sql": "CREATE TABLE extra (id INTEGER);",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2 after apply, got %d", version)
	}

	// Re-running is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on re-run, got %d", applied)
	}
}

func TestApplyMigrationsRejectsNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
	}))

	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (9)"); err != nil {
		t.Fatal(err)
	}

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("expected error when database version is newer than supported")
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to fail for a newer database")
	}
}

func TestReadMigrationsRejectsBadFilenames(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing underscore", map[string]string{"001.sql": "SELECT 1;"}},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(db, migrationsFS(tt.files))
			if _, err := runner.ApplyMigrations(nil); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
