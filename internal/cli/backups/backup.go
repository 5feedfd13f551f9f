package backups

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/cli"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" default:"1" help:"Create a backup file."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup file."`
	Export  BackupExportCmd  `cmd:"" help:"Write the whole state as a JSON or YAML document."`
	Import  BackupImportCmd  `cmd:"" help:"Restore from an exported document."`
	Clear   BackupClearCmd   `cmd:"" help:"Delete all notes and records, keeping widgets and categories."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.App().CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Out().Success("Backup created: %s", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	backups, err := ctx.App().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	ctx.Out().Backups(backups, ctx.Backups.GetBackupDir(), ctx.Config.BackupMax)
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	backupPath := c.BackupFile
	// A file in the working directory wins over one in the backup directory.
	if _, err := os.Stat(backupPath); err == nil {
		if abs, err := filepath.Abs(backupPath); err == nil {
			backupPath = abs
		}
	}

	pp := ctx.Out()
	pp.Warning("This replaces the parts of your data present in the backup.")
	pp.Warning("Stop any running TUI first; it would overwrite the restore on its next save.")
	if err := ctx.App().RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	pp.Success("Restored from %s", filepath.Base(backupPath))
	return ctx.Done()
}

type BackupExportCmd struct {
	Format    string `help:"json or yaml." enum:"json,yaml" default:"json"`
	Output    string `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Clipboard bool   `help:"Copy to the system clipboard."`
}

func (c *BackupExportCmd) Run(ctx *cli.Context) error {
	format, err := backup.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	doc, err := ctx.App().Export(format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	switch {
	case c.Clipboard:
		if err := backup.CopyToClipboard(doc); err != nil {
			return err
		}
		ctx.Out().Success("Backup copied to clipboard (%d bytes)", len(doc))
	case c.Output != "":
		if err := os.WriteFile(c.Output, doc, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Output, err)
		}
		ctx.Out().Success("Backup written to %s", c.Output)
	default:
		_, err := ctx.Out().Out.Write(append(doc, '\n'))
		return err
	}
	return nil
}

type BackupImportCmd struct {
	File      string `arg:"" optional:"" help:"Document to import; - reads stdin." type:"path"`
	Clipboard bool   `help:"Read the document from the system clipboard."`
}

func (c *BackupImportCmd) Run(ctx *cli.Context) error {
	var (
		doc []byte
		err error
	)
	switch {
	case c.Clipboard:
		doc, err = backup.PasteFromClipboard()
	case c.File == "" || c.File == "-":
		doc, err = io.ReadAll(os.Stdin)
	default:
		doc, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if err := ctx.App().Restore(doc); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Out().Success("Backup imported")
	return ctx.Done()
}

type BackupClearCmd struct {
	NoBackup bool `help:"Skip the safety backup taken before clearing."`
}

func (c *BackupClearCmd) Run(ctx *cli.Context) error {
	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}
	if err := ctx.App().ClearData(); err != nil {
		return err
	}
	ctx.Out().Success("All notes and records cleared")
	return ctx.Done()
}
