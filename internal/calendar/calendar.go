package calendar

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/popcal/internal/picker"
	"github.com/ruminaider/popcal/internal/stream"
	"github.com/ruminaider/popcal/internal/theme"
)

// Calendar selects a single day.
type Calendar struct {
	grid
	date    time.Time
	changes *stream.Subject[time.Time]
}

var _ picker.DatePanel[time.Time] = (*Calendar)(nil)

// New returns a calendar showing the current month with nothing selected.
func New(opts ...Option) *Calendar {
	return &Calendar{
		grid:    newGrid(opts),
		changes: stream.NewSubject[time.Time](),
	}
}

// Date returns the selected day, zero when none.
func (c *Calendar) Date() time.Time {
	return c.date
}

// SetDate selects d without emitting a change.
func (c *Calendar) SetDate(d time.Time) {
	c.date = Day(d)
}

// VisibleDate returns the first day of the shown month.
func (c *Calendar) VisibleDate() time.Time {
	return c.visible
}

// SetVisibleDate shows the month containing d. Zero is ignored.
func (c *Calendar) SetVisibleDate(d time.Time) {
	c.setVisible(d)
}

// Focus returns the keyboard cursor.
func (c *Calendar) Focus() time.Time {
	return c.focus
}

// DateChange emits every day the user selects.
func (c *Calendar) DateChange() stream.Observable[time.Time] {
	return c.changes.AsObservable()
}

// Select picks d as if the user chose it.
func (c *Calendar) Select(d time.Time) {
	c.date = Day(d)
	c.setVisible(c.date)
	c.changes.Next(c.date)
}

// HandleKey moves the cursor or selects the focused day on enter/space.
func (c *Calendar) HandleKey(key string) bool {
	switch key {
	case "enter", " ":
		c.Select(c.focus)
		return true
	}
	return c.navigate(key)
}

// View renders the month grid.
func (c *Calendar) View() string {
	return c.render(func(d time.Time) (lipgloss.Style, bool) {
		if sameDay(d, c.date) {
			return theme.SelectedDayStyle, true
		}
		return lipgloss.Style{}, false
	})
}

// Destroy completes the change stream.
func (c *Calendar) Destroy() {
	c.changes.Complete()
}
