package tui

// Mode selects which picker the host drives.
type Mode int

const (
	ModeDate  Mode = iota // Single date
	ModeRange             // Start and end date
)

// String returns the display name for a mode.
func (m Mode) String() string {
	switch m {
	case ModeDate:
		return "date"
	case ModeRange:
		return "range"
	default:
		return "unknown"
	}
}

// --- Inter-component messages ---

// ScrollMsg is sent when the host content scrolls under the overlay.
type ScrollMsg struct{}

// PickedMsg is emitted once a selection is complete and the picker closes.
type PickedMsg struct{ Text string }
