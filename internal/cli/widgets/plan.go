package widgets

import (
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
)

type PlanCmd struct {
	Answer   PlanAnswerCmd   `cmd:"" help:"Answer a question for a day. An empty answer clears it."`
	Question PlanQuestionCmd `cmd:"" help:"Manage questions."`
}

type PlanAnswerCmd struct {
	ID       string   `arg:"" help:"Widget ID."`
	Question string   `arg:"" help:"Question ID."`
	Answer   []string `arg:"" optional:"" help:"Answer text."`
	Date     string   `help:"Day (YYYY-MM-DD), default today." short:"d"`
}

func (c *PlanAnswerCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}
	if err := ctx.App().AnswerPlan(c.ID, date, c.Question, strings.Join(c.Answer, " ")); err != nil {
		return err
	}
	ctx.Out().Success("Answer saved for %s", date)
	return ctx.Done()
}

type PlanQuestionCmd struct {
	Add    PlanQuestionAddCmd    `cmd:"" help:"Add a question."`
	Delete PlanQuestionDeleteCmd `cmd:"" help:"Delete a question. Past answers are kept."`
}

type PlanQuestionAddCmd struct {
	ID   string   `arg:"" help:"Widget ID."`
	Text []string `arg:"" help:"Question text."`
}

func (c *PlanQuestionAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().AddPlanQuestion(c.ID, strings.Join(c.Text, " ")); err != nil {
		return err
	}
	ctx.Out().Success("Question added")
	return ctx.Done()
}

type PlanQuestionDeleteCmd struct {
	ID       string `arg:"" help:"Widget ID."`
	Question string `arg:"" help:"Question ID."`
}

func (c *PlanQuestionDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.App().DeletePlanQuestion(c.ID, c.Question); err != nil {
		return err
	}
	ctx.Out().Success("Question deleted")
	return ctx.Done()
}
