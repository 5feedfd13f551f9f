package widgets

import (
	"strings"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/printers"
)

type WidgetCmd struct {
	Ls     WidgetLsCmd     `cmd:"" default:"1" help:"Show the dashboard."`
	Show   WidgetShowCmd   `cmd:"" help:"Show one widget in detail."`
	Add    WidgetAddCmd    `cmd:"" help:"Add a widget."`
	Delete WidgetDeleteCmd `cmd:"" help:"Delete widgets."`
	Move   WidgetMoveCmd   `cmd:"" help:"Move widgets to a dashboard category."`
	Title  WidgetTitleCmd  `cmd:"" help:"Rename a widget."`
	Color  WidgetColorCmd  `cmd:"" help:"Set a countdown or last-done accent color."`
	Tab    TabCmd          `cmd:"" help:"Manage list and rating tabs."`
	Items  ItemsCmd        `cmd:"" help:"Bulk item actions."`

	List      ListCmd      `cmd:"" help:"LIST widget items."`
	Rating    RatingCmd    `cmd:"" help:"RATING widget items."`
	Countdown CountdownCmd `cmd:"" help:"COUNTDOWN widget."`
	Lastdone  LastDoneCmd  `cmd:"" name:"lastdone" help:"LAST_DONE widget."`
	Plan      PlanCmd      `cmd:"" help:"PLAN widget questions and answers."`
	Data      DataCmd      `cmd:"" help:"DATA widget points."`
	Notebook  NotebookCmd  `cmd:"" help:"NOTE widget items."`
}

// ParseType accepts widget types in any case, with - or _ separators.
func ParseType(s string) (models.WidgetType, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if norm == "LASTDONE" {
		norm = string(models.WidgetLastDone)
	}
	return models.ParseWidgetType(norm)
}

type WidgetLsCmd struct {
	Category string `help:"Only this dashboard category." short:"c"`
	ShowIDs  bool   `help:"Show widget IDs." name:"show-ids"`
}

func (c *WidgetLsCmd) Run(ctx *cli.Context) error {
	snap := ctx.App().Snapshot()
	pp := ctx.Out()
	pp.ShowID = c.ShowIDs
	if c.Category != "" {
		grid := dashboard.Grid(snap.Widgets, c.Category)
		pp.TitleWithCount(c.Category, len(grid), "widgets")
		pp.Cards(grid)
		return nil
	}
	pp.Dashboard(dashboard.Rows(snap.DashboardCats, snap.Widgets))
	if orphans := dashboard.Orphans(snap.DashboardCats, snap.Widgets); len(orphans) > 0 {
		pp.TitleWithCount("Uncategorized", len(orphans), "widgets")
		pp.Cards(orphans)
	}
	return nil
}

type WidgetShowCmd struct {
	ID       string `arg:"" help:"Widget ID."`
	Category string `help:"List or rating tab." short:"c"`
	Date     string `help:"Plan day (YYYY-MM-DD), default today."`
	Query    string `help:"Notebook search." short:"q"`
	ShowIDs  bool   `help:"Show item IDs." name:"show-ids"`
}

func (c *WidgetShowCmd) Run(ctx *cli.Context) error {
	w, err := ctx.App().Widget(c.ID)
	if err != nil {
		return err
	}
	pp := ctx.Out()
	pp.ShowID = c.ShowIDs
	pp.Widget(w, printers.DetailOptions{Category: c.Category, Date: c.Date, Query: c.Query})
	return nil
}

type WidgetAddCmd struct {
	Type     string `arg:"" help:"One of list, rating, countdown, lastdone, plan, data, note."`
	Category string `help:"Dashboard category, defaults to the first." short:"c"`
	Title    string `help:"Widget title."`
}

func (c *WidgetAddCmd) Run(ctx *cli.Context) error {
	t, err := ParseType(c.Type)
	if err != nil {
		return err
	}
	ctrl := ctx.App()
	w, err := ctrl.AddWidget(t, c.Category)
	if err != nil {
		return err
	}
	if c.Title != "" {
		if err := ctrl.SetWidgetTitle(w.ID, c.Title); err != nil {
			return err
		}
	}
	ctx.Out().Success("%s widget added: %s", t, w.ID)
	return ctx.Done()
}

type WidgetDeleteCmd struct {
	IDs []string `arg:"" name:"id" help:"Widget IDs."`
}

func (c *WidgetDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteWidgets(cli.Selection(c.IDs)); err != nil {
		return err
	}
	ctx.Out().Success("Deleted %d widget(s)", len(c.IDs))
	return ctx.Done()
}

type WidgetMoveCmd struct {
	To  string   `required:"" help:"Target dashboard category."`
	IDs []string `arg:"" name:"id" help:"Widget IDs."`
}

func (c *WidgetMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().MoveWidgets(cli.Selection(c.IDs), c.To); err != nil {
		return err
	}
	ctx.Out().Success("Moved %d widget(s) to %s", len(c.IDs), c.To)
	return ctx.Done()
}

type WidgetTitleCmd struct {
	ID    string   `arg:"" help:"Widget ID."`
	Title []string `arg:"" help:"New title."`
}

func (c *WidgetTitleCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().SetWidgetTitle(c.ID, strings.Join(c.Title, " ")); err != nil {
		return err
	}
	ctx.Out().Success("Widget renamed")
	return ctx.Done()
}

type WidgetColorCmd struct {
	ID    string `arg:"" help:"Widget ID."`
	Color string `arg:"" optional:"" help:"Accent color from the palette. Omit to list the palette."`
}

func (c *WidgetColorCmd) Run(ctx *cli.Context) error {
	if c.Color == "" {
		w, err := ctx.App().Widget(c.ID)
		if err != nil {
			return err
		}
		ctx.Out().Palette(constants.AccentPalette, w.Color)
		return nil
	}
	if err := ctx.App().SetWidgetColor(c.ID, c.Color); err != nil {
		return err
	}
	ctx.Out().Success("Color set to %s", printers.Swatch(strings.ToLower(c.Color)))
	return ctx.Done()
}
