package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lifetracks/internal/cli"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database path."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored document keys."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump a stored document as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":      ctx.Store.GetConfigPath(),
		"configDir": ctx.ConfigDir,
	})
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return printJSON(ctx, keys)
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Document key, e.g. notes, widgets, dashboardCats or appTheme."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	raw, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("document not found: %s", cmd.Key)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		// The theme is stored as a bare string
		doc = string(raw)
	}
	return printJSON(ctx, doc)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out().Out, string(jsonBytes))
	return nil
}
