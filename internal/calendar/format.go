package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLayout is the date layout used when none is configured.
const DefaultLayout = "2006-01-02"

// DefaultSeparator joins range bounds in text form.
const DefaultSeparator = " - "

// FormatDate renders d with layout; the zero time renders empty.
func FormatDate(d time.Time, layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(layout)
}

// ParseDate parses s with layout in loc. Blank input yields the zero time.
func ParseDate(s, layout string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatRange renders "start - end", or "start - " while the end is unset.
func FormatRange(r Range, layout, sep string) string {
	if r.IsZero() {
		return ""
	}
	return FormatDate(r.Start, layout) + sep + FormatDate(r.End, layout)
}

// ParseRange parses the output of FormatRange. A missing end is allowed.
func ParseRange(s, layout, sep string, loc *time.Location) (Range, error) {
	if strings.TrimSpace(s) == "" {
		return Range{}, nil
	}
	startText, endText, found := strings.Cut(s, sep)
	if !found {
		// "start -" once trailing blanks are gone.
		startText = strings.TrimSuffix(strings.TrimSpace(s), strings.TrimSpace(sep))
	}
	start, err := ParseDate(startText, layout, loc)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseDate(endText, layout, loc)
	if err != nil {
		return Range{}, err
	}
	if !end.IsZero() && end.Before(start) {
		return Range{}, fmt.Errorf("range end %s is before start %s", FormatDate(end, layout), FormatDate(start, layout))
	}
	return Range{Start: start, End: end}, nil
}
