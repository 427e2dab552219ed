// Package theme holds the Catppuccin palette and the lipgloss styles shared
// by the picker container, the calendar panels and the TUI.
package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	ColorBase     = lipgloss.Color(flavor.Base().Hex)
	ColorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	ColorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	ColorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	ColorText     = lipgloss.Color(flavor.Text().Hex)
	ColorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	ColorBlue     = lipgloss.Color(flavor.Blue().Hex)
	ColorGreen    = lipgloss.Color(flavor.Green().Hex)
	ColorRed      = lipgloss.Color(flavor.Red().Hex)
	ColorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	ColorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	ColorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Container styles.
var (
	// ContainerStyle frames the floating picker.
	ContainerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Background(ColorMantle).
			Foreground(ColorText).
			Padding(0, 1)

	// ArrowStyle colors the arrow pointing at the anchor.
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)
)

// Calendar styles.
var (
	// MonthHeaderStyle is the "March 2024" title line.
	MonthHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorMauve).
				Bold(true)

	// WeekdayStyle labels the weekday columns.
	WeekdayStyle = lipgloss.NewStyle().
			Foreground(ColorOverlay0)

	// DayStyle is an ordinary day cell.
	DayStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// OutsideDayStyle is a day belonging to the previous or next month.
	OutsideDayStyle = lipgloss.NewStyle().
			Foreground(ColorSurface1)

	// TodayStyle marks today.
	TodayStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// SelectedDayStyle marks the selected date or a range endpoint.
	SelectedDayStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorBlue).
				Bold(true)

	// InRangeDayStyle marks days strictly inside a selected range.
	InRangeDayStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface1)

	// FocusedDayStyle marks the keyboard cursor.
	FocusedDayStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Underline(true)
)

// Host screen styles.
var (
	// TitleStyle is the heading of the host screen.
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	// InputStyle frames the anchor input.
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSurface1).
			Padding(0, 1)

	// InputFocusedStyle frames the anchor input while the picker is open.
	InputFocusedStyle = InputStyle.
				BorderForeground(ColorBlue)

	// HelpStyle is the dim key hint line.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorOverlay0)

	// ErrorStyle renders parse errors under the input.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext0).
			Background(ColorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Background(ColorSurface0).
				Bold(true)
)
