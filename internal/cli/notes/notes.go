package notes

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/richtext"
)

type NoteCmd struct {
	Add     NoteAddCmd     `cmd:"" help:"Add a note. #tags in the text are picked up."`
	List    NoteListCmd    `cmd:"" default:"1" help:"List notes, newest first."`
	Edit    NoteEditCmd    `cmd:"" help:"Replace a note's content."`
	Delete  NoteDeleteCmd  `cmd:"" help:"Delete notes."`
	Move    NoteMoveCmd    `cmd:"" help:"Move notes into the first notebook widget."`
	Tags    NoteTagsCmd    `cmd:"" help:"List tags."`
	Image   NoteImageCmd   `cmd:"" help:"Attach an image to a note."`
	Suggest NoteSuggestCmd `cmd:"" help:"Ask the AI collaborator for tags."`
}

type NoteAddCmd struct {
	Text  []string `arg:"" optional:"" help:"Note text. Supports **bold**, ==highlight== and '- ' list items."`
	File  string   `help:"Read content from a markup or .html file." type:"existingfile"`
	Tag   []string `help:"Append a #tag." short:"t"`
	Image string   `help:"Attach an image file." type:"existingfile"`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	content, err := cli.ReadContent(c.Text, c.File)
	if err != nil {
		return err
	}
	for _, t := range c.Tag {
		content = richtext.AppendTag(content, t)
	}
	if c.Image != "" {
		url, err := richtext.EncodeImageFile(c.Image)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		content = richtext.Concat(content, richtext.Image(url))
	}

	n, err := ctx.App().AddNote(content)
	if err != nil {
		return err
	}
	ctx.Out().Success("Note added: %s", n.ID)
	return ctx.Done()
}

type NoteListCmd struct {
	Tag     string `help:"Only notes carrying this tag." short:"t"`
	ShowIDs bool   `help:"Show note IDs." name:"show-ids"`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	ctrl.SetTagFilter(c.Tag)
	title := "Notes"
	if c.Tag != "" {
		title = "Notes #" + c.Tag
	}
	pp := ctx.Out()
	pp.ShowID = c.ShowIDs
	pp.Notes(title, ctrl.VisibleNotes())
	return nil
}

type NoteEditCmd struct {
	ID   string   `arg:"" help:"Note ID."`
	Text []string `arg:"" optional:"" help:"New note text."`
	File string   `help:"Read content from a markup or .html file." type:"existingfile"`
}

func (c *NoteEditCmd) Run(ctx *cli.Context) error {
	content, err := cli.ReadContent(c.Text, c.File)
	if err != nil {
		return err
	}
	if err := ctx.App().EditNote(c.ID, content); err != nil {
		return err
	}
	ctx.Out().Success("Note updated: %s", c.ID)
	return ctx.Done()
}

type NoteDeleteCmd struct {
	IDs []string `arg:"" name:"id" help:"Note IDs. More than one asks for confirmation."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	var err error
	if len(c.IDs) == 1 {
		err = ctrl.DeleteNote(c.IDs[0])
	} else {
		err = ctrl.DeleteNotes(cli.Selection(c.IDs))
	}
	if err != nil {
		return err
	}
	ctx.Out().Success("Deleted %d note(s)", len(c.IDs))
	return ctx.Done()
}

type NoteMoveCmd struct {
	IDs []string `arg:"" name:"id" help:"Note IDs."`
}

func (c *NoteMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().MoveNotesToNotebook(cli.Selection(c.IDs)); err != nil {
		return err
	}
	ctx.Out().Success("Moved %d note(s) to the notebook", len(c.IDs))
	return ctx.Done()
}

type NoteTagsCmd struct {
	Recent bool `help:"Only the most recently used tags."`
}

func (c *NoteTagsCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	if c.Recent {
		ctx.Out().TagCloud("Recent tags", ctrl.RecentTags())
	} else {
		ctx.Out().TagCloud("Tags", ctrl.AllTags())
	}
	return nil
}

type NoteImageCmd struct {
	ID   string `arg:"" help:"Note ID."`
	Path string `arg:"" help:"Image file." type:"existingfile"`
}

func (c *NoteImageCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	errc := make(chan error, 1)
	ctx.App().AttachNoteImage(c.ID, f, func(err error) { errc <- err })
	if err := <-errc; err != nil {
		return err
	}
	ctx.Out().Success("Image attached to %s", c.ID)
	return ctx.Done()
}

type NoteSuggestCmd struct {
	ID      string        `arg:"" help:"Note ID."`
	Timeout time.Duration `help:"How long to wait for the collaborator." default:"30s"`
}

type suggestion struct {
	added []string
	err   error
}

func (c *NoteSuggestCmd) Run(ctx *cli.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	res := make(chan suggestion, 1)
	ctx.App().SuggestTags(reqCtx, c.ID, func(added []string, err error) {
		res <- suggestion{added, err}
	})
	r := <-res
	if r.err != nil {
		return r.err
	}
	pp := ctx.Out()
	if len(r.added) == 0 {
		pp.Empty("no new tags suggested")
		return ctx.Done()
	}
	pp.TagCloud("Added tags", r.added)
	return ctx.Done()
}
