package settings

import (
	"fmt"

	"github.com/julianstephens/lifetracks/internal/ai"
	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/printers"
)

type SettingsCmd struct{}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	snap := ctx.App().Snapshot()
	out := ctx.Out().Out

	configFile := cfg.File
	if configFile == "" {
		configFile = "(none, using defaults)"
	}
	aiStatus := "disabled"
	if _, off := ctx.AI.(ai.Disabled); !off && ctx.AI != nil {
		aiStatus = fmt.Sprintf("Vertex AI %s in %s", cfg.AIProject, cfg.AIRegion)
	}

	fmt.Fprintln(out, "Current Settings:")
	fmt.Fprintf(out, "  Store:            %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintf(out, "  Config file:      %s\n", configFile)
	fmt.Fprintf(out, "  Config dir:       %s\n", ctx.ConfigDir)
	fmt.Fprintf(out, "  Backup dir:       %s\n", ctx.Backups.GetBackupDir())
	fmt.Fprintf(out, "  Backups kept:     %d\n", cfg.BackupMax)
	fmt.Fprintf(out, "  Debug logging:    %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log file:         %s\n", logger.Path(ctx.ConfigDir))
	fmt.Fprintf(out, "  AI collaborator:  %s\n", aiStatus)
	fmt.Fprintf(out, "  Theme:            %s\n", printers.Swatch(snap.ThemeColor))
	return nil
}

type ThemeCmd struct {
	Color string `arg:"" optional:"" help:"Theme color from the palette. Omit to list the palette."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	if c.Color == "" {
		ctx.Out().Palette(constants.ThemePalette, ctrl.Snapshot().ThemeColor)
		return nil
	}
	if err := ctrl.SetTheme(c.Color); err != nil {
		return err
	}
	ctx.Out().Success("Theme set to %s", printers.Swatch(ctrl.Snapshot().ThemeColor))
	return ctx.Done()
}
