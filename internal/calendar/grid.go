// Package calendar provides terminal calendar panels for the date and
// range pickers. Date math here is limited to what the month grid needs.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/popcal/internal/theme"
)

// Option configures a panel.
type Option func(*grid)

// WithWeekStart sets the first column of the grid.
func WithWeekStart(d time.Weekday) Option {
	return func(g *grid) { g.weekStart = d }
}

// WithToday overrides the clock used to highlight today.
func WithToday(fn func() time.Time) Option {
	return func(g *grid) { g.today = fn }
}

// grid is the month view and keyboard cursor shared by both panels.
type grid struct {
	visible   time.Time // first day of the shown month
	focus     time.Time
	weekStart time.Weekday
	today     func() time.Time
}

func newGrid(opts []Option) grid {
	g := grid{weekStart: time.Monday, today: time.Now}
	for _, opt := range opts {
		opt(&g)
	}
	now := Day(g.today())
	g.visible = monthStart(now)
	g.focus = now
	return g
}

// Day truncates t to midnight in its own location. The zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// setVisible moves the grid to the month of t and puts the cursor on t.
func (g *grid) setVisible(t time.Time) {
	if t.IsZero() {
		return
	}
	t = Day(t)
	g.visible = monthStart(t)
	g.focus = t
}

func (g *grid) moveFocus(days int) {
	g.focus = g.focus.AddDate(0, 0, days)
	g.visible = monthStart(g.focus)
}

func (g *grid) shiftMonth(months int) {
	g.visible = g.visible.AddDate(0, months, 0)
	day := g.focus.Day()
	last := g.visible.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	g.focus = time.Date(g.visible.Year(), g.visible.Month(), day, 0, 0, 0, 0, g.visible.Location())
}

// navigate applies a movement key. It reports whether the key was used.
func (g *grid) navigate(key string) bool {
	switch key {
	case "left", "h":
		g.moveFocus(-1)
	case "right", "l":
		g.moveFocus(1)
	case "up", "k":
		g.moveFocus(-7)
	case "down", "j":
		g.moveFocus(7)
	case "pgup", "[":
		g.shiftMonth(-1)
	case "pgdown", "]":
		g.shiftMonth(1)
	case "home":
		g.setVisible(g.today())
	default:
		return false
	}
	return true
}

// weeks returns six rows of seven days covering the visible month.
func (g *grid) weeks() [][]time.Time {
	offset := (int(g.visible.Weekday()) - int(g.weekStart) + 7) % 7
	first := g.visible.AddDate(0, 0, -offset)
	rows := make([][]time.Time, 6)
	for w := range rows {
		rows[w] = make([]time.Time, 7)
		for d := range rows[w] {
			rows[w][d] = first.AddDate(0, 0, w*7+d)
		}
	}
	return rows
}

const gridWidth = 7*3 - 1

// render draws the month. cellStyle picks the style for an in-month day;
// it returns false to fall back to the default.
func (g *grid) render(cellStyle func(d time.Time) (lipgloss.Style, bool)) string {
	var b strings.Builder

	header := fmt.Sprintf("‹ %s %d ›", g.visible.Month(), g.visible.Year())
	b.WriteString(theme.MonthHeaderStyle.Render(lipgloss.PlaceHorizontal(gridWidth, lipgloss.Center, header)))
	b.WriteString("\n")

	names := make([]string, 7)
	for i := range names {
		names[i] = (time.Weekday((int(g.weekStart) + i) % 7)).String()[:2]
	}
	b.WriteString(theme.WeekdayStyle.Render(strings.Join(names, " ")))

	today := g.today()
	for _, week := range g.weeks() {
		b.WriteString("\n")
		cells := make([]string, len(week))
		for i, d := range week {
			label := fmt.Sprintf("%2d", d.Day())
			style := theme.DayStyle
			switch {
			case d.Month() != g.visible.Month():
				style = theme.OutsideDayStyle
			default:
				if s, ok := cellStyle(d); ok {
					style = s
				} else if sameDay(d, today) {
					style = theme.TodayStyle
				}
			}
			if sameDay(d, g.focus) {
				style = style.Inherit(theme.FocusedDayStyle).Underline(true)
			}
			cells[i] = style.Render(label)
		}
		b.WriteString(strings.Join(cells, " "))
	}
	return b.String()
}
