package widgets

import (
	"strings"

	"github.com/julianstephens/lifetracks/internal/cli"
)

type ListCmd struct {
	Add    ListAddCmd    `cmd:"" help:"Add an item at the top."`
	Edit   ListEditCmd   `cmd:"" help:"Rename an item."`
	Toggle ListToggleCmd `cmd:"" help:"Toggle an item's completion."`
	Star   ListStarCmd   `cmd:"" help:"Toggle an item's star."`
	Delete ListDeleteCmd `cmd:"" help:"Delete an item."`
	Pick   ListPickCmd   `cmd:"" help:"Pick a random open item."`
}

type ListAddCmd struct {
	ID       string   `arg:"" help:"Widget ID."`
	Title    []string `arg:"" help:"Item title."`
	Category string   `help:"Tab, defaults to the first." short:"c"`
}

func (c *ListAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().AddListItem(c.ID, strings.Join(c.Title, " "), c.Category); err != nil {
		return err
	}
	ctx.Out().Success("Item added")
	return ctx.Done()
}

type ListEditCmd struct {
	ID    string   `arg:"" help:"Widget ID."`
	Item  string   `arg:"" help:"Item ID."`
	Title []string `arg:"" help:"New title."`
}

func (c *ListEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().EditListItem(c.ID, c.Item, strings.Join(c.Title, " ")); err != nil {
		return err
	}
	ctx.Out().Success("Item updated")
	return ctx.Done()
}

type ListToggleCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Item ID."`
}

func (c *ListToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().ToggleListItem(c.ID, c.Item); err != nil {
		return err
	}
	ctx.Out().Success("Item toggled")
	return ctx.Done()
}

type ListStarCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Item ID."`
}

func (c *ListStarCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().StarListItem(c.ID, c.Item); err != nil {
		return err
	}
	ctx.Out().Success("Star toggled")
	return ctx.Done()
}

type ListDeleteCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Item ID."`
}

func (c *ListDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteListItem(c.ID, c.Item); err != nil {
		return err
	}
	ctx.Out().Success("Item deleted")
	return ctx.Done()
}

type ListPickCmd struct {
	ID       string `arg:"" help:"Widget ID."`
	Category string `help:"Pick only from this tab." short:"c"`
}

func (c *ListPickCmd) Run(ctx *cli.Context) error {
	it, err := ctx.App().PickListItem(c.ID, c.Category)
	if err != nil {
		return err
	}
	ctx.Out().Success("%s (%s)", it.Title, it.Category)
	return nil
}
