package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifetracks/internal/ai"
	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/cli/backups"
	"github.com/julianstephens/lifetracks/internal/cli/categories"
	"github.com/julianstephens/lifetracks/internal/cli/notes"
	"github.com/julianstephens/lifetracks/internal/cli/settings"
	"github.com/julianstephens/lifetracks/internal/cli/system"
	"github.com/julianstephens/lifetracks/internal/cli/widgets"
	"github.com/julianstephens/lifetracks/internal/config"
	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/printers"
	"github.com/julianstephens/lifetracks/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file (YAML). Defaults to config.yaml in the config directory." type:"path"`
	Store    string `help:"Storage locator: a SQLite path, a .json file, diskv:<dir>, postgres, or a PostgreSQL URL without a password. Overrides the config file."`
	DebugLog bool   `name:"debug" help:"Write debug logs."`
	Yes      bool   `short:"y" help:"Answer yes to every confirmation."`

	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Note     notes.NoteCmd          `cmd:"" help:"Manage notes."`
	Widget   widgets.WidgetCmd      `cmd:"" help:"Manage dashboard widgets."`
	Category categories.CategoryCmd `cmd:"" help:"Manage dashboard categories."`
	Backup   backups.BackupCmd      `cmd:"" help:"Backups, export, import and clearing data."`
	Theme    settings.ThemeCmd      `cmd:"" help:"Show the palette or set the theme color."`
	Settings settings.SettingsCmd   `cmd:"" help:"Show current settings."`
	Init     system.InitCmd         `cmd:"" help:"Initialize lifetracks storage."`
	Migrate  system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  system.KeyringCmd      `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug    system.DebugCmd        `cmd:"" help:"Debug commands for troubleshooting."`
}

// Commands that manage storage themselves and must not require a loaded store.
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lifetracks"),
		kong.Description("Notes, trackers and a dashboard for everyday life"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config, config.DefaultDir())
	if err != nil {
		apperr.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	cfg.Debug = cfg.Debug || CLI.DebugLog

	store, err := storage.Open(cfg.Store)
	if err != nil {
		apperr.Fatal(err)
	}
	configDir := storage.ConfigDir(store)

	command := ""
	if sel := ctx.Selected(); sel != nil {
		command = rootCommand(sel)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir, Quiet: command == "tui"}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath())

	if command != "" && !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperr.Fatal(err)
		}
	}
	defer store.Close()

	bm := backup.NewManager(configDir)
	bm.SetRetention(cfg.BackupMax)

	collab, closeAI := ai.New(context.Background(), ai.Config{
		Project: cfg.AIProject,
		Region:  cfg.AIRegion,
		Model:   cfg.AIModel,
	})
	defer closeAI()

	appCtx := &cli.Context{
		Store:     store,
		Config:    cfg,
		ConfigDir: configDir,
		Backups:   bm,
		AI:        collab,
		Confirmer: cli.NewConfirmer(CLI.Yes),
		Printer:   printers.New(os.Stdout),
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		closeAI()
		apperr.Fatal(err)
	}
}

// rootCommand returns the top-level command name of a selected node.
func rootCommand(node *kong.Node) string {
	for node.Parent != nil && node.Parent.Type != kong.ApplicationNode {
		node = node.Parent
	}
	return node.Name
}
