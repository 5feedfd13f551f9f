package system

import (
	"fmt"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	out := ctx.Out().Out
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		fmt.Fprintln(out, "Store has no schema to migrate.")
		return nil
	}

	before := 0
	if err := ctx.Store.Load(); err == nil {
		if before, _, err = v.SchemaVersion(); err != nil {
			return err
		}
	}

	// Init applies every pending embedded migration.
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	after, _, err := v.SchemaVersion()
	if err != nil {
		return err
	}

	if after == before {
		fmt.Fprintln(out, "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(out, "Successfully applied %d migration(s).\n", after-before)
	}
	return nil
}
