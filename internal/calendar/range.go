package calendar

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/popcal/internal/picker"
	"github.com/ruminaider/popcal/internal/stream"
	"github.com/ruminaider/popcal/internal/theme"
)

// Range is a day range as used by RangeCalendar.
type Range = picker.Range[time.Time]

// RangeCalendar selects a start day and then an end day.
type RangeCalendar struct {
	grid
	rng     Range
	changes *stream.Subject[Range]
}

var _ picker.RangePanel[time.Time] = (*RangeCalendar)(nil)

// NewRange returns a range calendar showing the current month.
func NewRange(opts ...Option) *RangeCalendar {
	return &RangeCalendar{
		grid:    newGrid(opts),
		changes: stream.NewSubject[Range](),
	}
}

// Range returns the current selection; End is zero mid-selection.
func (c *RangeCalendar) Range() Range {
	return c.rng
}

// SetRange replaces the selection without emitting a change.
func (c *RangeCalendar) SetRange(r Range) {
	c.rng = Range{Start: Day(r.Start), End: Day(r.End)}
}

// VisibleDate returns the first day of the shown month.
func (c *RangeCalendar) VisibleDate() time.Time {
	return c.visible
}

// SetVisibleDate shows the month containing d. Zero is ignored.
func (c *RangeCalendar) SetVisibleDate(d time.Time) {
	c.setVisible(d)
}

// Focus returns the keyboard cursor.
func (c *RangeCalendar) Focus() time.Time {
	return c.focus
}

// RangeChange emits after every selection step, including the start-only
// step.
func (c *RangeCalendar) RangeChange() stream.Observable[Range] {
	return c.changes.AsObservable()
}

// Select feeds one click into the selection. A fresh or complete range
// starts over at d; otherwise d closes the range, swapping bounds when it
// precedes the start.
func (c *RangeCalendar) Select(d time.Time) {
	d = Day(d)
	switch {
	case c.rng.Start.IsZero() || c.rng.Complete():
		c.rng = Range{Start: d}
	case d.Before(c.rng.Start):
		c.rng = Range{Start: d, End: c.rng.Start}
	default:
		c.rng = Range{Start: c.rng.Start, End: d}
	}
	c.changes.Next(c.rng)
}

// HandleKey moves the cursor or selects the focused day on enter/space.
func (c *RangeCalendar) HandleKey(key string) bool {
	switch key {
	case "enter", " ":
		c.Select(c.focus)
		return true
	}
	return c.navigate(key)
}

func (c *RangeCalendar) inside(d time.Time) bool {
	return c.rng.Complete() && d.After(c.rng.Start) && d.Before(c.rng.End)
}

// View renders the month grid with the range highlighted.
func (c *RangeCalendar) View() string {
	return c.render(func(d time.Time) (lipgloss.Style, bool) {
		switch {
		case sameDay(d, c.rng.Start), sameDay(d, c.rng.End):
			return theme.SelectedDayStyle, true
		case c.inside(d):
			return theme.InRangeDayStyle, true
		}
		return lipgloss.Style{}, false
	})
}

// Destroy completes the change stream.
func (c *RangeCalendar) Destroy() {
	c.changes.Complete()
}
