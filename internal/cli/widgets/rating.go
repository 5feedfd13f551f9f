package widgets

import (
	"os"
	"strings"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	engine "github.com/julianstephens/lifetracks/internal/widgets"
)

type RatingCmd struct {
	Add    RatingAddCmd    `cmd:"" help:"Add a rated item at the top."`
	Edit   RatingEditCmd   `cmd:"" help:"Edit a rated item."`
	Delete RatingDeleteCmd `cmd:"" help:"Delete a rated item."`
	Pick   RatingPickCmd   `cmd:"" help:"Pick a random item."`
	Cover  RatingCoverCmd  `cmd:"" help:"Set an item's cover image."`
}

type RatingAddCmd struct {
	ID       string   `arg:"" help:"Widget ID."`
	Title    []string `arg:"" help:"Item title."`
	Rating   float64  `help:"Rating from 0 to 5 in half steps." short:"r" default:"0"`
	Category string   `help:"Tab, defaults to the first." short:"c"`
	Review   string   `help:"Short review."`
	Cover    string   `help:"Cover image file." type:"existingfile"`
}

func (c *RatingAddCmd) Run(ctx *cli.Context) error {
	in := engine.RatingInput{
		Title:    strings.Join(c.Title, " "),
		Rating:   c.Rating,
		Category: c.Category,
		Review:   c.Review,
	}
	if c.Cover != "" {
		url, err := richtext.EncodeImageFile(c.Cover)
		if err != nil {
			return err
		}
		in.Cover = url
	}
	if err := ctx.App().AddRatingItem(c.ID, in); err != nil {
		return err
	}
	ctx.Out().Success("Item added")
	return ctx.Done()
}

type RatingEditCmd struct {
	ID       string   `arg:"" help:"Widget ID."`
	Item     string   `arg:"" help:"Item ID."`
	Title    *string  `help:"New title."`
	Rating   *float64 `help:"New rating." short:"r"`
	Category *string  `help:"New tab." short:"c"`
	Review   *string  `help:"New review."`
}

func (c *RatingEditCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	cur, err := ratingItem(ctrl.Widget, c.ID, c.Item)
	if err != nil {
		return err
	}
	in := engine.RatingInput{
		Title:    cur.Title,
		Rating:   cur.Rating,
		Category: cur.Category,
		Cover:    cur.Cover,
		Review:   cur.Review,
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Rating != nil {
		in.Rating = *c.Rating
	}
	if c.Category != nil {
		in.Category = *c.Category
	}
	if c.Review != nil {
		in.Review = *c.Review
	}
	if err := ctrl.EditRatingItem(c.ID, c.Item, in); err != nil {
		return err
	}
	ctx.Out().Success("Item updated")
	return ctx.Done()
}

func ratingItem(find func(string) (models.Widget, error), id, itemID string) (models.RatingItem, error) {
	w, err := find(id)
	if err != nil {
		return models.RatingItem{}, err
	}
	d, ok := w.Data.(models.RatingData)
	if !ok {
		return models.RatingItem{}, engine.ErrWrongType
	}
	for _, it := range d.Items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return models.RatingItem{}, engine.ErrItemNotFound
}

type RatingDeleteCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Item ID."`
}

func (c *RatingDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteRatingItem(c.ID, c.Item); err != nil {
		return err
	}
	ctx.Out().Success("Item deleted")
	return ctx.Done()
}

type RatingPickCmd struct {
	ID       string `arg:"" help:"Widget ID."`
	Category string `help:"Pick only from this tab." short:"c"`
}

func (c *RatingPickCmd) Run(ctx *cli.Context) error {
	it, err := ctx.App().PickRatingItem(c.ID, c.Category)
	if err != nil {
		return err
	}
	ctx.Out().Success("%s %s (%s)", it.Title, dashboard.Stars(it.Rating), it.Category)
	return nil
}

type RatingCoverCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Item string `arg:"" help:"Item ID."`
	Path string `arg:"" help:"Image file." type:"existingfile"`
}

func (c *RatingCoverCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	errc := make(chan error, 1)
	ctx.App().SetRatingCover(c.ID, c.Item, f, func(err error) { errc <- err })
	if err := <-errc; err != nil {
		return err
	}
	ctx.Out().Success("Cover set")
	return ctx.Done()
}
