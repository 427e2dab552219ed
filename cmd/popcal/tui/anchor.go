package tui

import "github.com/ruminaider/popcal/internal/overlay"

// Anchor is the input box the picker pops up from. It is a pointer type so
// trigger strategies can compare it by identity.
type Anchor struct {
	rect overlay.Rect
}

// NewAnchor returns an anchor occupying rect.
func NewAnchor(rect overlay.Rect) *Anchor {
	return &Anchor{rect: rect}
}

// Bounds implements overlay.Element.
func (a *Anchor) Bounds() overlay.Rect {
	return a.rect
}

// Move relocates the anchor, e.g. after a resize.
func (a *Anchor) Move(rect overlay.Rect) {
	a.rect = rect
}
