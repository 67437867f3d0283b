package notifier

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/bpstudios/widescreen/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func TestTrayConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) { return tempDir, nil }

	dir, err := TrayConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tempDir, constants.TrayAppIdentifier); dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}

	// A custom lockfile dir in settings.json wins
	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	settings := `{"settings": {"lockfile_dir": "/custom/lockfiles"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}
	dir, err = TrayConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/custom/lockfiles" {
		t.Errorf("dir = %q, want custom lockfile dir", dir)
	}
}

func TestReadLockfile(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "widescreen-tray"}, nil
	}

	dir := t.TempDir()
	path := filepath.Join(dir, constants.NotifierLockfileName)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid", "8123|4242|s3cret", ""},
		{"malformed", "8123|4242", "malformed"},
		{"bad port", "notaport|4242|s3cret", "invalid port"},
		{"port out of range", "70000|4242|s3cret", "invalid port"},
		{"bad pid", "8123|x|s3cret", "invalid process id"},
		{"empty secret", "8123|4242| ", "secret in lockfile is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			port, secret, err := readLockfile(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if port != "8123" || secret != "s3cret" {
					t.Errorf("got port=%q secret=%q", port, secret)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadLockfileMissing(t *testing.T) {
	_, _, err := readLockfile(filepath.Join(t.TempDir(), "nope.lock"))
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("err = %v", err)
	}
}

func TestReadLockfileWrongExecutable(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "impostor"}, nil
	}

	path := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
	if err := os.WriteFile(path, []byte("8123|4242|s3cret"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := readLockfile(path); err == nil || !strings.Contains(err.Error(), "not widescreen-tray") {
		t.Errorf("err = %v", err)
	}
}
