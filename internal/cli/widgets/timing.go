package widgets

import (
	"strconv"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/models"
)

type CountdownCmd struct {
	Set CountdownSetCmd `cmd:"" help:"Set the event name and target date."`
}

type CountdownSetCmd struct {
	ID    string  `arg:"" help:"Widget ID."`
	Event *string `help:"Event name." short:"e"`
	Date  *string `help:"Target date (YYYY-MM-DD)." short:"d"`
}

func (c *CountdownSetCmd) Run(ctx *cli.Context) error {
	ctrl := ctx.App()
	w, err := ctrl.Widget(c.ID)
	if err != nil {
		return err
	}
	cur, _ := w.Data.(models.CountdownData)
	event, date := cur.EventName, cur.TargetDate
	if c.Event != nil {
		event = *c.Event
	}
	if c.Date != nil {
		date = *c.Date
	}
	if err := ctrl.EditCountdown(c.ID, event, date); err != nil {
		return err
	}
	ctx.Out().Success("Countdown set: %s on %s", event, date)
	return ctx.Done()
}

type LastDoneCmd struct {
	Done      LastDoneMarkCmd      `cmd:"" help:"Record that it was done now."`
	Frequency LastDoneFrequencyCmd `cmd:"" help:"Set the expected interval in days."`
}

type LastDoneMarkCmd struct {
	ID string `arg:"" help:"Widget ID."`
}

func (c *LastDoneMarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().MarkDone(c.ID); err != nil {
		return err
	}
	ctx.Out().Success("Marked done")
	return ctx.Done()
}

type LastDoneFrequencyCmd struct {
	ID   string `arg:"" help:"Widget ID."`
	Days string `arg:"" help:"Positive number of days."`
}

func (c *LastDoneFrequencyCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().SetFrequency(c.ID, c.Days); err != nil {
		return err
	}
	n, _ := strconv.Atoi(c.Days)
	ctx.Out().Success("Frequency set to every %d day(s)", n)
	return ctx.Done()
}
