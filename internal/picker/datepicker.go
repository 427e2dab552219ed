package picker

import (
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/stream"
)

// DatePanel is a calendar grid selecting a single date.
type DatePanel[D comparable] interface {
	overlay.Component
	Date() D
	SetDate(D)
	SetVisibleDate(D)
	DateChange() stream.Observable[D]
}

// Datepicker pops a DatePanel up under its anchor. The zero D means "no
// date".
type Datepicker[D comparable] struct {
	*BasePicker[D, DatePanel[D]]
}

var _ Picker[int] = (*Datepicker[int])(nil)

// NewDatepicker returns an unattached date picker whose panels are built by
// newPanel.
func NewDatepicker[D comparable](deps Deps, opts Options, newPanel func() DatePanel[D]) *Datepicker[D] {
	return &Datepicker[D]{
		BasePicker: NewBasePicker(deps, opts, Adapter[D, DatePanel[D]]{
			Panel:   overlay.NewPortal(newPanel),
			Get:     func(p DatePanel[D]) D { return p.Date() },
			Set:     setDate[D],
			Changes: func(p DatePanel[D]) stream.Observable[D] { return p.DateChange() },
		}),
	}
}

// setDate moves the visible month to d and selects it. The zero date is
// ignored rather than clearing the selection.
func setDate[D comparable](p DatePanel[D], d D) {
	var zero D
	if d == zero {
		return
	}
	p.SetVisibleDate(d)
	p.SetDate(d)
}
