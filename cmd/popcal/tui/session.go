package tui

import (
	"errors"
	"time"

	"github.com/ruminaider/popcal/internal/calendar"
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/picker"
)

var (
	ErrNothingPicked   = errors.New("nothing picked")
	ErrIncompleteRange = errors.New("range needs an end date")
)

// controller is the lifecycle surface shared by both picker kinds.
type controller interface {
	Attach(host overlay.Element) error
	Show() error
	Hide()
	Toggle() error
	IsOpen() bool
	State() picker.State
	Destroy()
}

// session binds one picker to the text of the anchor input.
type session interface {
	controller
	// text formats the picker value for the input.
	text() string
	// setText parses s and makes it the picker value.
	setText(s string) error
	// handleKey forwards a key to the open panel.
	handleKey(key string) bool
	// ready reports why the current value cannot be confirmed, if it
	// cannot.
	ready() error
	// drain reports whether the value changed since the last call and
	// whether the selection is finished.
	drain() (changed, done bool)
}

type keyHandler interface {
	HandleKey(key string) bool
}

func panelKey(panel any, ok bool, key string) bool {
	if !ok {
		return false
	}
	h, isHandler := panel.(keyHandler)
	return isHandler && h.HandleKey(key)
}

type dateSession struct {
	*picker.Datepicker[time.Time]
	layout  string
	loc     *time.Location
	changed bool
}

func newDateSession(deps picker.Deps, opts picker.Options, layout string, loc *time.Location, cal []calendar.Option) *dateSession {
	s := &dateSession{layout: layout, loc: loc}
	s.Datepicker = picker.NewDatepicker(deps, opts, func() picker.DatePanel[time.Time] {
		return calendar.New(cal...)
	})
	s.ValueChange().Subscribe(func(time.Time) { s.changed = true })
	return s
}

func (s *dateSession) text() string {
	return calendar.FormatDate(s.Value(), s.layout)
}

func (s *dateSession) setText(text string) error {
	d, err := calendar.ParseDate(text, s.layout, s.loc)
	if err != nil {
		return err
	}
	s.SetValue(d)
	return nil
}

func (s *dateSession) handleKey(key string) bool {
	panel, ok := s.Panel()
	return panelKey(panel, ok, key)
}

func (s *dateSession) ready() error {
	if s.Value().IsZero() {
		return ErrNothingPicked
	}
	return nil
}

// A single pick finishes a date selection.
func (s *dateSession) drain() (bool, bool) {
	changed := s.changed
	s.changed = false
	return changed, changed
}

type rangeSession struct {
	*picker.Rangepicker[time.Time]
	layout  string
	sep     string
	loc     *time.Location
	changed bool
	last    calendar.Range
}

func newRangeSession(deps picker.Deps, opts picker.Options, layout, sep string, loc *time.Location, cal []calendar.Option) *rangeSession {
	s := &rangeSession{layout: layout, sep: sep, loc: loc}
	s.Rangepicker = picker.NewRangepicker(deps, opts, func() picker.RangePanel[time.Time] {
		return calendar.NewRange(cal...)
	})
	s.ValueChange().Subscribe(func(r calendar.Range) {
		s.changed = true
		s.last = r
	})
	return s
}

func (s *rangeSession) text() string {
	return calendar.FormatRange(s.Value(), s.layout, s.sep)
}

func (s *rangeSession) setText(text string) error {
	r, err := calendar.ParseRange(text, s.layout, s.sep, s.loc)
	if err != nil {
		return err
	}
	s.SetValue(r)
	return nil
}

func (s *rangeSession) handleKey(key string) bool {
	panel, ok := s.Panel()
	return panelKey(panel, ok, key)
}

func (s *rangeSession) ready() error {
	r := s.Value()
	switch {
	case r.IsZero():
		return ErrNothingPicked
	case !r.Complete():
		return ErrIncompleteRange
	}
	return nil
}

// The range is finished once both bounds are picked.
func (s *rangeSession) drain() (bool, bool) {
	changed := s.changed
	s.changed = false
	return changed, changed && s.last.Complete()
}
