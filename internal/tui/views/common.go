// Package views provides TUI view components for the ByeTax application.
package views

import "github.com/byetax/byetax/internal/tui"

// ExitHint renders the Ctrl+C hint, switching to the confirmation prompt
// while a second press is pending.
func ExitHint(pending bool) string {
	if pending {
		return tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}
	return tui.DimStyle.Render("Ctrl+C: Exit")
}

// boxWidth clamps a box to max or the screen, whichever is smaller.
func boxWidth(screen, max int) int {
	w := max
	if screen-4 < w {
		w = screen - 4
	}
	if w < 20 {
		w = 20
	}
	return w
}
