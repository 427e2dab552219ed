package picker

import (
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/stream"
)

// Range is a date range. End is the zero D while a selection is in
// progress.
type Range[D comparable] struct {
	Start D
	End   D
}

// IsZero reports whether neither bound is set.
func (r Range[D]) IsZero() bool {
	return r == Range[D]{}
}

// Complete reports whether both bounds are set.
func (r Range[D]) Complete() bool {
	var zero D
	return r.Start != zero && r.End != zero
}

// RangePanel is a calendar grid selecting a range.
type RangePanel[D comparable] interface {
	overlay.Component
	Range() Range[D]
	SetRange(Range[D])
	SetVisibleDate(D)
	RangeChange() stream.Observable[Range[D]]
}

// Rangepicker pops a RangePanel up under its anchor.
type Rangepicker[D comparable] struct {
	*BasePicker[Range[D], RangePanel[D]]
}

var _ Picker[Range[int]] = (*Rangepicker[int])(nil)

// NewRangepicker returns an unattached range picker whose panels are built
// by newPanel.
func NewRangepicker[D comparable](deps Deps, opts Options, newPanel func() RangePanel[D]) *Rangepicker[D] {
	return &Rangepicker[D]{
		BasePicker: NewBasePicker(deps, opts, Adapter[Range[D], RangePanel[D]]{
			Panel:   overlay.NewPortal(newPanel),
			Get:     func(p RangePanel[D]) Range[D] { return p.Range() },
			Set:     setRange[D],
			Changes: func(p RangePanel[D]) stream.Observable[Range[D]] { return p.RangeChange() },
		}),
	}
}

// setRange moves the visible month to the range start, even when only the
// end is set, and assigns the range. The zero range is ignored.
func setRange[D comparable](p RangePanel[D], r Range[D]) {
	if r.IsZero() {
		return
	}
	p.SetVisibleDate(r.Start)
	p.SetRange(r)
}
