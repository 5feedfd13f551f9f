package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/storage"
	"github.com/julianstephens/lifetracks/internal/validation"
)

var errNoSchema = errors.New("store has no versioned schema")

type DoctorCmd struct {
	Fix bool `help:"Repair fixable data conflicts and save the result."`
}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	pp := ctx.Out()
	fmt.Fprintln(pp.Out, "Running diagnostics...")
	pp.NewLine()

	checks := []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Data validation", needsDB: true, run: cmd.checkData},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(pp.Out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case errors.Is(err, errNoSchema):
			fmt.Fprintf(pp.Out, "⊘ %s: SKIPPED (%v)\n", c.name, err)
		case err != nil && c.warnOnly:
			pp.Warning("%s: WARNING", c.name)
			fmt.Fprintf(pp.Out, "   %v\n", err)
		case err != nil:
			pp.Failure("%s: FAIL", c.name)
			fmt.Fprintf(pp.Out, "   Error: %v\n", err)
			hasError = true
		default:
			pp.Success("%s: OK", c.name)
			if i == 0 {
				dbReachable = true
			}
		}
	}

	pp.NewLine()
	if hasError {
		fmt.Fprintln(pp.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(pp.Out, "All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return errNoSchema
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run '%s migrate'", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Backups == nil {
		return fmt.Errorf("backups are not configured")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func (cmd *DoctorCmd) checkData(ctx *cli.Context) error {
	snap := storage.LoadSnapshot(ctx.Store, time.Now())
	validator := validation.New()
	result := validator.ValidateSnapshot(snap)
	if !result.HasConflicts() {
		return nil
	}

	pp := ctx.Out()
	if !cmd.Fix {
		pp.Report(result)
		return fmt.Errorf("%d conflict(s) found, run with --fix to repair the fixable ones", len(result.Conflicts))
	}

	if ctx.Backups != nil {
		if _, err := ctx.Backups.CreateBackup(snap); err != nil {
			return fmt.Errorf("failed to create safety backup before repair: %w", err)
		}
	}
	fixed, dirty, actions := validation.AutoFix(snap, result.Conflicts)
	if err := storage.SaveSnapshot(ctx.Store, fixed, dirty); err != nil {
		return fmt.Errorf("failed to save repaired data: %w", err)
	}
	pp.Fixes(actions)

	remaining := validator.ValidateSnapshot(fixed)
	if remaining.HasConflicts() {
		pp.Report(remaining)
		return fmt.Errorf("%d conflict(s) need manual repair", len(remaining.Conflicts))
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
