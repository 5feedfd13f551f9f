package cli

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/logger"
)

// NewConfirmer returns the confirmation prompt for destructive commands.
// With assumeYes every prompt is approved without asking.
func NewConfirmer(assumeYes bool) app.Confirmer {
	if assumeYes {
		return app.AlwaysConfirm
	}
	return app.ConfirmFunc(promptConfirm)
}

func promptConfirm(prompt string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		// No terminal or the user aborted: treat as a "no".
		logger.Debug("Confirmation prompt failed", "error", err)
		return false
	}
	return ok
}
