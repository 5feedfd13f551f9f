package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source store locator (path, diskv:<dir> or connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Out().Out
	dest := ctx.Store.GetConfigPath()

	if c.Force {
		if c.Source != "" && samePath(c.Source, dest) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dest)
		}
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized lifetracks storage at: %s\n", dest)

	if c.Source != "" {
		fmt.Fprintf(out, "Migrating data from: %s\n", c.Source)
		n, err := copyDocuments(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(out, "  Migrated %d documents\n", n)
		fmt.Fprintln(out, "Migration completed successfully!")
	}
	return nil
}

// reset removes file-backed data outright. Other backends are emptied
// key by key once initialized.
func (c *InitCmd) reset(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err == nil:
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if info.IsDir() {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return fmt.Errorf("failed to delete existing data: %w", err)
		}
		fmt.Fprintf(ctx.Out().Out, "Deleted existing data at: %s\n", path)
		return nil
	}

	// Not a path, e.g. a PostgreSQL connection.
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list existing documents: %w", err)
	}
	for _, key := range keys {
		if err := ctx.Store.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	logger.Info("Reset store", "documents", len(keys))
	return nil
}

func copyDocuments(dest storage.Provider, locator string) (int, error) {
	src, err := storage.Open(locator)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source documents: %w", err)
	}
	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dest.Put(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(storage.ExpandHome(a))
	absB, errB := filepath.Abs(storage.ExpandHome(b))
	return errA == nil && errB == nil && absA == absB
}
