package categories

import (
	"github.com/julianstephens/lifetracks/internal/cli"
)

type CategoryCmd struct {
	List   CategoryListCmd   `cmd:"" default:"1" help:"List dashboard categories."`
	Add    CategoryAddCmd    `cmd:"" help:"Add a dashboard category."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category. Its widgets keep the old name. An empty name deletes it."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category. Its widgets are kept."`
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	st := ctx.App().State()
	ctx.Out().Categories("Dashboard categories", st.Snapshot.DashboardCats, st.ActiveCategory)
	return nil
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().AddDashboardCategory(c.Name); err != nil {
		return err
	}
	ctx.Out().Success("Category added: %s", c.Name)
	return ctx.Done()
}

type CategoryRenameCmd struct {
	Old string `arg:"" help:"Current name."`
	New string `arg:"" optional:"" help:"New name."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().RenameDashboardCategory(c.Old, c.New); err != nil {
		return err
	}
	if c.New == "" {
		ctx.Out().Success("Category deleted: %s", c.Old)
	} else {
		ctx.Out().Success("Category renamed: %s → %s", c.Old, c.New)
	}
	return ctx.Done()
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteDashboardCategory(c.Name); err != nil {
		return err
	}
	ctx.Out().Success("Category deleted: %s", c.Name)
	return ctx.Done()
}
