// Package notifier delivers desktop notifications through the tray
// helper's local webhook. The helper writes a lockfile with its port,
// pid and shared secret; we verify the pid still belongs to it before
// posting.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/bpstudios/widescreen/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier posts notifications to the running tray helper.
type Notifier struct{}

type webhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify shows text as a desktop notification. Fails when the tray
// helper is not running.
func (n *Notifier) Notify(text string) error {
	configDir, err := TrayConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := readLockfile(filepath.Join(configDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return post(port, secret, webhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDuration,
	})
}

// TrayConfigDir returns the directory the tray helper keeps its
// lockfile in, honoring a custom lockfile_dir from its settings.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
			return *store.Settings.LockfileDir, nil
		}
	}
	return trayDir, nil
}

// readLockfile parses "port|pid|secret" and checks the pid is a live
// tray helper process.
func readLockfile(path string) (port, secret string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.New("widescreen-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port = parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", errors.New("invalid port in lockfile")
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process id in lockfile")
	}

	secret = parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("widescreen-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppIdentifier) {
		return "", "", fmt.Errorf("process with pid %d is not widescreen-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func post(port, secret string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://127.0.0.1:%s", port), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Widescreen-Secret", secret)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	text, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, text)
}
