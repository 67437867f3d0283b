package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bpstudios/widescreen/internal/api"
	"github.com/bpstudios/widescreen/internal/cli"
	"github.com/bpstudios/widescreen/internal/logging"
	"github.com/bpstudios/widescreen/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store file path." type:"path" default:"~/.config/widescreen/widescreen.db"`
	APIBase  string `help:"Backend base URL." name:"api-base"`
	LogFile  string `help:"Log file path." type:"path" default:"~/.config/widescreen/widescreen.log"`
	LogLevel string `help:"Minimum log level (debug, info, warn, error)." default:"info"`

	Init      cli.InitCmd      `cmd:"" help:"Initialize widescreen storage and identity."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive interface." default:"1"`
	Today     cli.TodayCmd     `cmd:"" help:"Show today's round."`
	Guess     cli.GuessCmd     `cmd:"" help:"Guess today's film."`
	Rate      cli.RateCmd      `cmd:"" help:"Rate a film you identified."`
	Watchlist cli.WatchlistCmd `cmd:"" help:"Manage your watchlist."`
	Prefs     cli.PrefsCmd     `cmd:"" help:"View or change preferences."`
	Profile   cli.ProfileCmd   `cmd:"" help:"View or edit your profile."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage store backups."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks."`
	Debug     cli.DebugCmd     `cmd:"" help:"Debugging helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("widescreen"),
		kong.Description("Daily movie-guessing game for the terminal"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	logger, err := logging.New(CLI.LogFile, CLI.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appCtx := &cli.Context{
		Store:  store,
		API:    api.New(CLI.APIBase, api.WithLogger(logger)),
		Logger: logger,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
