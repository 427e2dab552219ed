package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedToday() Option {
	return WithToday(func() time.Time { return date(2024, time.March, 15) })
}

func TestNew_ShowsTodaysMonth(t *testing.T) {
	c := New(fixedToday())
	assert.Equal(t, date(2024, time.March, 1), c.VisibleDate())
	assert.Equal(t, date(2024, time.March, 15), c.Focus())
	assert.True(t, c.Date().IsZero())
}

func TestCalendar_SetVisibleDate(t *testing.T) {
	c := New(fixedToday())
	c.SetVisibleDate(date(2023, time.December, 25))
	assert.Equal(t, date(2023, time.December, 1), c.VisibleDate())

	c.SetVisibleDate(time.Time{})
	assert.Equal(t, date(2023, time.December, 1), c.VisibleDate(), "zero is ignored")
}

func TestCalendar_SelectEmits(t *testing.T) {
	c := New(fixedToday())
	var got []time.Time
	c.DateChange().Subscribe(func(d time.Time) { got = append(got, d) })

	c.Select(time.Date(2024, time.April, 2, 13, 45, 0, 0, time.UTC))
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.April, 2), got[0])
	assert.Equal(t, date(2024, time.April, 2), c.Date())
	assert.Equal(t, date(2024, time.April, 1), c.VisibleDate())
}

func TestCalendar_SetDateDoesNotEmit(t *testing.T) {
	c := New(fixedToday())
	count := 0
	c.DateChange().Subscribe(func(time.Time) { count++ })
	c.SetDate(date(2024, time.March, 3))
	assert.Equal(t, 0, count)
}

func TestCalendar_HandleKey(t *testing.T) {
	c := New(fixedToday())
	var got []time.Time
	c.DateChange().Subscribe(func(d time.Time) { got = append(got, d) })

	assert.True(t, c.HandleKey("right"))
	assert.True(t, c.HandleKey("down"))
	assert.Equal(t, date(2024, time.March, 23), c.Focus())

	assert.True(t, c.HandleKey("]"))
	assert.Equal(t, date(2024, time.April, 1), c.VisibleDate())
	assert.Equal(t, date(2024, time.April, 23), c.Focus())

	assert.True(t, c.HandleKey("enter"))
	assert.Equal(t, []time.Time{date(2024, time.April, 23)}, got)

	assert.False(t, c.HandleKey("x"))
}

func TestShiftMonth_ClampsDay(t *testing.T) {
	c := New(WithToday(func() time.Time { return date(2024, time.January, 31) }))
	c.HandleKey("pgdown")
	assert.Equal(t, date(2024, time.February, 29), c.Focus())
}

func TestWeeks_StartOnConfiguredDay(t *testing.T) {
	c := New(fixedToday(), WithWeekStart(time.Sunday))
	weeks := c.weeks()
	require.Len(t, weeks, 6)
	// March 1st 2024 is a Friday; the Sunday before is Feb 25.
	assert.Equal(t, date(2024, time.February, 25), weeks[0][0])
	assert.Equal(t, time.Sunday, weeks[0][0].Weekday())

	c = New(fixedToday())
	assert.Equal(t, date(2024, time.February, 26), c.weeks()[0][0])
}

func TestCalendar_View(t *testing.T) {
	c := New(fixedToday())
	view := c.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "March 2024")
	assert.Contains(t, lines[1], "Mo Tu We Th Fr Sa Su")
	assert.Contains(t, view, "15")
}

func TestCalendar_DestroyCompletes(t *testing.T) {
	c := New(fixedToday())
	count := 0
	c.DateChange().Subscribe(func(time.Time) { count++ })
	c.Destroy()
	c.Select(date(2024, time.March, 1))
	assert.Equal(t, 0, count)
}

func TestRangeCalendar_Select(t *testing.T) {
	c := NewRange(fixedToday())
	var got []Range
	c.RangeChange().Subscribe(func(r Range) { got = append(got, r) })

	c.Select(date(2024, time.March, 10))
	c.Select(date(2024, time.March, 12))
	c.Select(date(2024, time.March, 20))
	c.Select(date(2024, time.March, 5))

	assert.Equal(t, []Range{
		{Start: date(2024, time.March, 10)},
		{Start: date(2024, time.March, 10), End: date(2024, time.March, 12)},
		{Start: date(2024, time.March, 20)},
		{Start: date(2024, time.March, 5), End: date(2024, time.March, 20)},
	}, got)
}

func TestRangeCalendar_SetRange(t *testing.T) {
	c := NewRange(fixedToday())
	c.SetVisibleDate(date(2024, time.June, 3))
	c.SetRange(Range{Start: date(2024, time.June, 3)})

	assert.Equal(t, date(2024, time.June, 1), c.VisibleDate())
	assert.False(t, c.Range().Complete())
	assert.True(t, c.Range().End.IsZero())
}

func TestRangeCalendar_Inside(t *testing.T) {
	c := NewRange(fixedToday())
	c.SetRange(Range{Start: date(2024, time.March, 10), End: date(2024, time.March, 12)})
	assert.True(t, c.inside(date(2024, time.March, 11)))
	assert.False(t, c.inside(date(2024, time.March, 10)))
	assert.False(t, c.inside(date(2024, time.March, 13)))
}

func TestFormatAndParseDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}, DefaultLayout))
	assert.Equal(t, "2024-03-15", FormatDate(date(2024, time.March, 15), DefaultLayout))

	d, err := ParseDate(" 2024-03-15 ", DefaultLayout, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), d)

	d, err = ParseDate("", DefaultLayout, time.UTC)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("15/03/2024", DefaultLayout, time.UTC)
	assert.Error(t, err)
}

func TestFormatAndParseRange(t *testing.T) {
	full := Range{Start: date(2024, time.March, 1), End: date(2024, time.March, 9)}
	text := FormatRange(full, DefaultLayout, DefaultSeparator)
	assert.Equal(t, "2024-03-01 - 2024-03-09", text)

	r, err := ParseRange(text, DefaultLayout, DefaultSeparator, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, full, r)

	partial := FormatRange(Range{Start: date(2024, time.March, 1)}, DefaultLayout, DefaultSeparator)
	assert.Equal(t, "2024-03-01 - ", partial)

	for _, in := range []string{partial, "2024-03-01 -", "2024-03-01"} {
		r, err = ParseRange(in, DefaultLayout, DefaultSeparator, time.UTC)
		require.NoError(t, err, in)
		assert.Equal(t, Range{Start: date(2024, time.March, 1)}, r, in)
	}

	_, err = ParseRange("2024-03-09 - 2024-03-01", DefaultLayout, DefaultSeparator, time.UTC)
	assert.Error(t, err)

	r, err = ParseRange("   ", DefaultLayout, DefaultSeparator, time.UTC)
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}
