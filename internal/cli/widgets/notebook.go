package widgets

import (
	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/printers"
)

type NotebookCmd struct {
	Add    NotebookAddCmd    `cmd:"" help:"Write a notebook entry."`
	Edit   NotebookEditCmd   `cmd:"" help:"Replace an entry's content."`
	Delete NotebookDeleteCmd `cmd:"" help:"Delete an entry."`
	Search NotebookSearchCmd `cmd:"" help:"Search entries by text or tag."`
}

type NotebookAddCmd struct {
	ID   string   `arg:"" help:"Widget ID."`
	Text []string `arg:"" optional:"" help:"Entry text."`
	File string   `help:"Read content from a markup or .html file." type:"existingfile"`
}

func (c *NotebookAddCmd) Run(ctx *cli.Context) error {
	content, err := cli.ReadContent(c.Text, c.File)
	if err != nil {
		return err
	}
	if err := ctx.App().AddNotebookItem(c.ID, content); err != nil {
		return err
	}
	ctx.Out().Success("Entry added")
	return ctx.Done()
}

type NotebookEditCmd struct {
	ID   string   `arg:"" help:"Widget ID."`
	Item string   `arg:"" help:"Entry ID."`
	Text []string `arg:"" optional:"" help:"New text."`
	File string   `help:"Read content from a markup or .html file." type:"existingfile"`
}

func (c *NotebookEditCmd) Run(ctx *cli.Context) error {
	content, err := cli.ReadContent(c.Text, c.File)
	if err != nil {
		return err
	}
	if err := ctx.App().EditNotebookItem(c.ID, c.Item, content); err != nil {
		return err
	}
	ctx.Out().Success("Entry updated")
	return ctx.Done()
}

type NotebookDeleteCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Entry ID."`
}

func (c *NotebookDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteNotebookItem(c.ID, c.Item); err != nil {
		return err
	}
	ctx.Out().Success("Entry deleted")
	return ctx.Done()
}

type NotebookSearchCmd struct {
	ID      string `arg:"" help:"Widget ID."`
	Query   string `arg:"" help:"Text or tag to look for."`
	ShowIDs bool   `help:"Show entry IDs." name:"show-ids"`
}

func (c *NotebookSearchCmd) Run(ctx *cli.Context) error {
	w, err := ctx.App().Widget(c.ID)
	if err != nil {
		return err
	}
	pp := ctx.Out()
	pp.ShowID = c.ShowIDs
	pp.Widget(w, printers.DetailOptions{Query: c.Query})
	return nil
}
