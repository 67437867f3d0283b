package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bpstudios/widescreen/internal/dayclock"
	"github.com/bpstudios/widescreen/internal/models"
)

type DebugCmd struct {
	StorePath *DebugStorePathCmd `cmd:"" help:"Show store path."`
	DumpKeys  *DebugDumpKeysCmd  `cmd:"" help:"Dump stored keys and values as JSON."`
	Get       *DebugGetCmd       `cmd:"" help:"Read one stored key."`
	Day       *DebugDayCmd       `cmd:"" help:"Show the current day id and countdown."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpKeysCmd struct {
	Prefix string `help:"Only dump keys with this prefix."`
}

func (cmd *DebugDumpKeysCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	keys, err := ctx.Store.AllKeys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)

	dump := make(map[string]string)
	for _, key := range keys {
		if cmd.Prefix != "" && !strings.HasPrefix(key, cmd.Prefix) {
			continue
		}
		value, ok, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read key %q: %w", key, err)
		}
		if ok {
			dump[key] = value
		}
	}

	jsonBytes, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dump: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugGetCmd struct {
	Key string `arg:"" help:"Key to read."`
}

func (cmd *DebugGetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	value, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read key %q: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("key %q not found", cmd.Key)
	}
	fmt.Println(value)
	return nil
}

type DebugDayCmd struct{}

func (cmd *DebugDayCmd) Run(ctx *Context) error {
	now := time.Now()
	output := map[string]any{
		"day_id":         dayclock.DayID(now),
		"until_midnight": dayclock.UntilMidnight(now),
		"frame_count":    models.FrameCount,
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
