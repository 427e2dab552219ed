package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/popcal/internal/theme"
)

// StatusBar renders the bottom row with the picker state and shortcuts.
type StatusBar struct {
	mode  Mode
	state string
	open  bool
	width int
}

// NewStatusBar creates a status bar for mode.
func NewStatusBar(mode Mode) StatusBar {
	return StatusBar{mode: mode, state: "closed"}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the picker state shown on the left.
func (s *StatusBar) Update(state string, open bool) {
	s.state = state
	s.open = open
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := s.mode.String() + " · " + s.state

	var shortcuts []string
	if s.open {
		shortcuts = []string{
			theme.StatusBarKeyStyle.Render("←↑↓→") + ": move",
			theme.StatusBarKeyStyle.Render("[ ]") + ": month",
			theme.StatusBarKeyStyle.Render("Enter") + ": pick",
			theme.StatusBarKeyStyle.Render("Esc") + ": close",
		}
	} else {
		shortcuts = []string{
			theme.StatusBarKeyStyle.Render("↓") + ": open",
			theme.StatusBarKeyStyle.Render("Enter") + ": confirm",
			theme.StatusBarKeyStyle.Render("Esc") + ": cancel",
		}
	}
	right := strings.Join(shortcuts, " · ")

	gap := s.width - 2 - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	content := left + strings.Repeat(" ", gap) + right
	if s.width > 2 {
		content = ansi.Truncate(content, s.width-2, "…")
	}
	if s.width <= 0 {
		return theme.StatusBarStyle.Render(content)
	}
	return theme.StatusBarStyle.Width(s.width).Render(content)
}
