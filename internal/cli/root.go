package cli

import (
	"strings"

	"go.uber.org/zap"

	"github.com/bpstudios/widescreen/internal/api"
	"github.com/bpstudios/widescreen/internal/backup"
	"github.com/bpstudios/widescreen/internal/storage"
)

// Context carries the shared app state into every command.
type Context struct {
	Store  storage.Provider
	API    *api.Client
	Logger *zap.Logger
}

// Data wraps the store in the typed access layer.
func (c *Context) Data() *storage.Data {
	return storage.NewData(c.Store)
}

// PerformAutomaticBackup snapshots the store and silently handles
// errors, so a failing backup never blocks play.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		c.Logger.Warn("automatic backup failed", zap.Error(err))
	}
}

// joinArgs rebuilds a multi-word title from positional args.
func joinArgs(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}
