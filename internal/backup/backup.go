// Package backup snapshots the player's store before risky operations
// and on demand, keeping a bounded history next to the store file.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is how many snapshots are kept before rotation.
	MaxBackups = 14
	// BackupDirName is the directory created next to the store file.
	BackupDirName = "backups"
	// BackupFilePrefix marks snapshot files as ours.
	BackupFilePrefix = "widescreen-"
)

const timestampFormat = "20060102-150405"

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots and restores a store file. It handles both the
// sqlite database and the JSON file store; sqlite snapshots go through
// VACUUM INTO so a live database copies cleanly.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

// NewManager creates a manager for the given store file.
func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		suffix:    filepath.Ext(storePath),
	}
}

// BackupDir returns where snapshots are written.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create takes a snapshot of the store and rotates old ones out.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	path, err := m.unusedSnapshotPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = m.copySQLite(path)
	} else {
		err = copyFile(m.storePath, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to snapshot store: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}
	return path, nil
}

// unusedSnapshotPath picks a timestamped filename, appending a counter
// when snapshots land within the same second.
func (m *Manager) unusedSnapshotPath() (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}
	for counter := 1; counter <= 100; counter++ {
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, m.suffix))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) isSQLite() bool {
	return m.suffix != ".json"
}

// copySQLite copies the database with VACUUM INTO, falling back to a
// plain file copy when the sqlite build does not support it.
func (m *Manager) copySQLite(destPath string) error {
	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix)
		// Strip a same-second counter suffix
		if idx := strings.LastIndex(stamp, "-"); idx > 0 && len(stamp)-idx-1 < 4 {
			stamp = stamp[:idx]
		}
		timestamp, err := time.Parse(timestampFormat, stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store with the given snapshot. The current
// store is snapshotted first, and the swap is an atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if m.isSQLite() {
		if err := m.verifySQLite(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		current, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to backup current store before restore: %w", err)
		}
		fmt.Printf("Created backup of current store: %s\n", filepath.Base(current))
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}

func (m *Manager) verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
