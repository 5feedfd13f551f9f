package widgets

import (
	"github.com/julianstephens/lifetracks/internal/cli"
)

type TabCmd struct {
	Add    TabAddCmd    `cmd:"" help:"Add a tab."`
	Rename TabRenameCmd `cmd:"" help:"Rename a tab. Items keep their old tab name."`
	Remove TabRemoveCmd `cmd:"" help:"Remove a tab. Items are kept."`
}

type TabAddCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Name string `arg:"" help:"Tab name."`
}

func (c *TabAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().AddItemCategory(c.ID, c.Name); err != nil {
		return err
	}
	ctx.Out().Success("Tab added: %s", c.Name)
	return ctx.Done()
}

type TabRenameCmd struct {
	ID  string `arg:"" help:"Widget ID."`
	Old string `arg:"" help:"Current tab name."`
	New string `arg:"" help:"New tab name."`
}

func (c *TabRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().RenameItemCategory(c.ID, c.Old, c.New); err != nil {
		return err
	}
	ctx.Out().Success("Tab renamed: %s → %s", c.Old, c.New)
	return ctx.Done()
}

type TabRemoveCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Name string `arg:"" help:"Tab name."`
}

func (c *TabRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().RemoveItemCategory(c.ID, c.Name); err != nil {
		return err
	}
	ctx.Out().Success("Tab removed: %s", c.Name)
	return ctx.Done()
}

type ItemsCmd struct {
	Delete ItemsDeleteCmd `cmd:"" help:"Delete items from a list, rating or notebook widget."`
	Move   ItemsMoveCmd   `cmd:"" help:"Move list or rating items to another tab."`
}

type ItemsDeleteCmd struct {
	ID    string   `arg:"" help:"Widget ID."`
	Items []string `arg:"" name:"item" help:"Item IDs."`
}

func (c *ItemsDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteWidgetItems(c.ID, cli.Selection(c.Items)); err != nil {
		return err
	}
	ctx.Out().Success("Deleted %d item(s)", len(c.Items))
	return ctx.Done()
}

type ItemsMoveCmd struct {
	ID    string   `arg:"" help:"Widget ID."`
	To    string   `required:"" help:"Target tab."`
	Items []string `arg:"" name:"item" help:"Item IDs."`
}

func (c *ItemsMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().MoveWidgetItems(c.ID, cli.Selection(c.Items), c.To); err != nil {
		return err
	}
	ctx.Out().Success("Moved %d item(s) to %s", len(c.Items), c.To)
	return ctx.Done()
}
