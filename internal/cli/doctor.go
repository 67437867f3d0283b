package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bpstudios/widescreen/internal/backup"
	"github.com/bpstudios/widescreen/internal/constants"
	"github.com/bpstudios/widescreen/internal/migration"
	"github.com/bpstudios/widescreen/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	if err := checkSchemaVersion(ctx); err != nil {
		fmt.Printf("❌ Schema version: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Schema version: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if storeReachable {
		if err := checkGameData(ctx); err != nil {
			fmt.Printf("❌ Game data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Game data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Game data: SKIPPED (store not reachable)\n")
	}

	if err := checkRemoteReachable(ctx); err != nil {
		fmt.Printf("⚠ Remote service: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Remote service: OK\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// The JSON store has no schema version
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	runner := migration.NewRunner(db, storage.MigrationFiles())
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("store schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("store schema version (%d) is behind (%d); run any command to migrate", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'widescreen backup create'")
	}
	return nil
}

// checkGameData scans the kv store for values the game cannot read
// back: malformed outcomes, streaks and rating scores.
func checkGameData(ctx *Context) error {
	data := ctx.Data()

	keys, err := ctx.Store.AllKeys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	for _, key := range keys {
		value, ok, err := ctx.Store.Get(key)
		if err != nil || !ok {
			return fmt.Errorf("failed to read key %q: %v", key, err)
		}
		switch {
		case strings.HasPrefix(key, constants.OutcomeKeyPrefix):
			if value != "Seen" && value != "Unseen" {
				return fmt.Errorf("outcome key %q holds %q, want Seen or Unseen", key, value)
			}
		case strings.HasPrefix(key, constants.RatingKeyPrefix):
			if len(value) != 1 || value[0] < '1' || value[0] > '5' {
				return fmt.Errorf("rating key %q holds %q, want 1..5", key, value)
			}
		case strings.HasPrefix(key, constants.WatchlistKeyPrefix):
			if _, ok := storage.ParseWatchlistKey(key); !ok {
				return fmt.Errorf("watchlist key %q does not parse", key)
			}
		}
	}

	// The preferences blob always round-trips (defaults on damage),
	// but a stored streak should be numeric
	_ = data.Preferences()
	if raw, ok, _ := ctx.Store.Get(constants.KeyStreak); ok {
		for _, r := range raw {
			if r < '0' || r > '9' {
				return fmt.Errorf("streak holds %q, want digits", raw)
			}
		}
	}
	return nil
}

// checkRemoteReachable pings the backend with a short deadline. An
// unreachable backend degrades play but never corrupts local state, so
// this reports a warning rather than a failure.
func checkRemoteReachable(ctx *Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := ctx.API.AllTitles(reqCtx); err != nil {
		return fmt.Errorf("backend not reachable: %v", err)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
