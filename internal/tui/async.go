package tui

import (
	"context"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/storage"
)

const collaboratorTimeout = 30 * time.Second

type tagsSuggestedMsg struct {
	tags []string
	err  error
}

type trendMsg struct {
	title string
	text  string
	err   error
}

type attachedMsg struct {
	what string
	err  error
}

// The controller reports async results through callbacks; each command
// below waits on its callback so the result comes back as a message.

func suggestTagsCmd(ctrl *app.Controller, noteID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()
		ch := make(chan tagsSuggestedMsg, 1)
		ctrl.SuggestTags(ctx, noteID, func(tags []string, err error) {
			ch <- tagsSuggestedMsg{tags: tags, err: err}
		})
		return <-ch
	}
}

func analyzeTrendCmd(ctrl *app.Controller, widgetID, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()
		ch := make(chan trendMsg, 1)
		ctrl.AnalyzeTrend(ctx, widgetID, func(text string, err error) {
			ch <- trendMsg{title: title, text: text, err: err}
		})
		return <-ch
	}
}

// attachCmd opens path and hands it to attach, which must call done once.
func attachCmd(what, path string, attach func(f *os.File, done func(error))) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(storage.ExpandHome(strings.TrimSpace(path)))
		if err != nil {
			return attachedMsg{what: what, err: err}
		}
		defer f.Close()
		ch := make(chan error, 1)
		attach(f, func(err error) { ch <- err })
		return attachedMsg{what: what, err: <-ch}
	}
}
