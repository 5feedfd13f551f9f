package widgets

import (
	"context"
	"time"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

type DataCmd struct {
	Add     DataAddCmd     `cmd:"" help:"Record a value. A value on the same date replaces it."`
	Delete  DataDeleteCmd  `cmd:"" help:"Delete the value on a date."`
	Meta    DataMetaCmd    `cmd:"" help:"Set the label and unit."`
	Analyze DataAnalyzeCmd `cmd:"" help:"Ask the AI collaborator about the recent trend."`
}

type DataAddCmd struct {
	ID    string `arg:"" help:"Widget ID."`
	Value string `arg:"" help:"Numeric value."`
	Date  string `help:"Day (YYYY-MM-DD), default today." short:"d"`
}

func (c *DataAddCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}
	if err := ctx.App().AddDataPoint(c.ID, date, c.Value); err != nil {
		return err
	}
	ctx.Out().Success("Recorded %s on %s", c.Value, date)
	return ctx.Done()
}

type DataDeleteCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Date string `arg:"" help:"Day (YYYY-MM-DD)."`
}

func (c *DataDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeleteDataPoint(c.ID, c.Date); err != nil {
		return err
	}
	ctx.Out().Success("Deleted value on %s", c.Date)
	return ctx.Done()
}

type DataMetaCmd struct {
	ID    string  `arg:"" help:"Widget ID."`
	Label *string `help:"Series label."`
	Unit  *string `help:"Unit suffix."`
}

func (c *DataMetaCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	w, err := ctrl.Widget(c.ID)
	if err != nil {
		return err
	}
	cur, _ := w.Data.(models.SeriesData)
	label, unit := cur.Label, cur.Unit
	if c.Label != nil {
		label = *c.Label
	}
	if c.Unit != nil {
		unit = *c.Unit
	}
	if err := ctrl.SetSeriesMeta(c.ID, label, unit); err != nil {
		return err
	}
	ctx.Out().Success("Series is now %s (%s)", label, unit)
	return ctx.Done()
}

type DataAnalyzeCmd struct {
	ID      string        `arg:"" help:"Widget ID."`
	Timeout time.Duration `help:"How long to wait for the collaborator." default:"30s"`
}

type analysis struct {
	text string
	err  error
}

func (c *DataAnalyzeCmd) Run(ctx *cli.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	res := make(chan analysis, 1)
	ctx.App().AnalyzeTrend(reqCtx, c.ID, func(text string, err error) {
		res <- analysis{text, err}
	})
	r := <-res
	if r.err != nil {
		return r.err
	}
	ctx.Out().Title("Trend")
	ctx.Out().Empty(r.text)
	return ctx.Done()
}
