package printers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/validation"
)

// Dashboard prints one table of cards per row.
func (pp *PrettyPrint) Dashboard(rows []dashboard.Row) {
	for _, row := range rows {
		pp.TitleWithCount(row.Category, len(row.Widgets), plural(len(row.Widgets), "widget"))
		if len(row.Widgets) == 0 {
			pp.Empty("none")
			pp.NewLine()
			continue
		}
		pp.Cards(row.Widgets)
	}
}

// Cards prints widget previews.
func (pp *PrettyPrint) Cards(list []models.Widget) {
	tbl := pp.table()
	for _, w := range list {
		card := dashboard.Preview(w, pp.Now())
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, pp.id(card.ID))
		}
		title := card.Title
		if card.Accent != "" {
			title = color.New(Nearest(card.Accent)).Sprint("▍") + title
		}
		headline := card.Headline
		if card.Alert {
			headline = warnStyle.Sprint(headline)
		}
		detail := card.Detail
		if len(card.Spark) > 0 {
			detail = strings.TrimSpace(Sparkline(card.Spark) + " " + detail)
		}
		row = append(row, title, faint.Sprint(string(card.Type)), headline, detail)
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Categories prints a category list, marking the active one.
func (pp *PrettyPrint) Categories(title string, cats []string, active string) {
	pp.TitleWithCount(title, len(cats), plural(len(cats), "category"))
	for _, c := range cats {
		marker := "  "
		if c == active {
			marker = okStyle.Sprint("▸ ")
		}
		_, _ = fmt.Fprintf(pp.Out, "%s%s\n", marker, c)
	}
}

// Backups prints backup files newest first.
func (pp *PrettyPrint) Backups(list []backup.BackupInfo, dir string, retention int) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(pp.Out, "No backups found.")
		_, _ = fmt.Fprintf(pp.Out, "Backups are stored in: %s\n", dir)
		return
	}
	_, _ = fmt.Fprintf(pp.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(list), retention)
	tbl := pp.table()
	for _, b := range list {
		tbl.AddRow(
			"  "+b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			faint.Sprint(humanize.Bytes(uint64(b.Size))),
			faint.Sprint(humanize.RelTime(b.Timestamp, pp.Now(), "ago", "from now")),
		)
	}
	pp.flush(tbl)
	_, _ = fmt.Fprintf(pp.Out, "Backup directory: %s\n", dir)
}

// Report prints an integrity report.
func (pp *PrettyPrint) Report(result validation.ValidationResult) {
	if !result.HasConflicts() {
		pp.Success("%s", result.FormatReport())
		return
	}
	for _, c := range result.Conflicts {
		if c.Fixable {
			pp.Warning("%s %s", c.Description, faint.Sprint("(fixable)"))
		} else {
			pp.Failure("%s", c.Description)
		}
	}
}

// Fixes prints the actions an auto-fix took.
func (pp *PrettyPrint) Fixes(actions []validation.FixAction) {
	for _, a := range actions {
		pp.Success("%s", a.Action)
	}
}
