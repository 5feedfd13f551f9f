package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lifetracks/internal/ai"
	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/config"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/printers"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/storage"
)

// ErrNotSaved is returned when a command changed state but the store
// rejected the write.
var ErrNotSaved = errors.New("changes were applied but could not be saved")

type Context struct {
	Store     storage.Provider
	Config    *config.Config
	ConfigDir string
	Backups   *backup.Manager
	AI        ai.Collaborator
	Confirmer app.Confirmer
	Printer   *printers.PrettyPrint

	ctrl *app.Controller
}

// App returns the controller, loading the state tree on first use.
func (c *Context) App() *app.Controller {
	if c.ctrl == nil {
		opts := []app.Option{app.WithBackups(c.Backups)}
		if c.Confirmer != nil {
			opts = append(opts, app.WithConfirmer(c.Confirmer))
		}
		if c.AI != nil {
			opts = append(opts, app.WithCollaborator(c.AI))
		}
		c.ctrl = app.New(c.Store, opts...)
	}
	return c.ctrl
}

// Done flushes pending work and reports a failed save.
func (c *Context) Done() error {
	if c.ctrl == nil {
		return nil
	}
	c.ctrl.Close()
	if err := c.ctrl.PersistErr(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSaved, err)
	}
	return nil
}

// Out returns the printer, creating a default one when unset.
func (c *Context) Out() *printers.PrettyPrint {
	if c.Printer == nil {
		c.Printer = printers.New(nil)
	}
	return c.Printer
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Backups == nil {
		return
	}
	if _, err := c.Backups.CreateBackup(c.App().Snapshot()); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ReadContent builds note content from inline text, a markup file, or both.
// Markup supports **bold**, ==highlight== and "- " list items; a file ending
// in .html is parsed as HTML.
func ReadContent(text []string, file string) (richtext.Document, error) {
	doc := richtext.ParseMarkup(strings.Join(text, " "))
	if file == "" {
		return doc, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	var fromFile richtext.Document
	if strings.HasSuffix(strings.ToLower(file), ".html") {
		fromFile = richtext.ParseHTML(string(data))
	} else {
		fromFile = richtext.ParseMarkup(string(data))
	}
	if len(doc) == 0 {
		return fromFile, nil
	}
	return richtext.Concat(doc, richtext.Document{{Kind: richtext.KindBreak}}, fromFile), nil
}

// Selection builds a selection from command-line IDs.
func Selection(ids []string) models.Selection {
	return models.NewSelection(ids...)
}
