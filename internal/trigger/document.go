// Package trigger turns raw pointer and focus events into show/hide intents
// for an overlay connected to a host element.
package trigger

import (
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/stream"
)

// FocusEvent reports that Target gained focus. A nil Target means focus
// left every tracked element.
type FocusEvent struct {
	Target overlay.Element
}

// Document is the event source shared by all trigger strategies of one
// frame. The host program feeds it from its input loop.
type Document struct {
	clicks *stream.Subject[overlay.Point]
	moves  *stream.Subject[overlay.Point]
	focus  *stream.Subject[FocusEvent]
}

// NewDocument returns a Document with no listeners.
func NewDocument() *Document {
	return &Document{
		clicks: stream.NewSubject[overlay.Point](),
		moves:  stream.NewSubject[overlay.Point](),
		focus:  stream.NewSubject[FocusEvent](),
	}
}

// Click dispatches a primary-button press at p.
func (d *Document) Click(p overlay.Point) { d.clicks.Next(p) }

// Move dispatches pointer motion to p.
func (d *Document) Move(p overlay.Point) { d.moves.Next(p) }

// Focus dispatches a focus change.
func (d *Document) Focus(target overlay.Element) { d.focus.Next(FocusEvent{Target: target}) }

// Clicks streams click positions.
func (d *Document) Clicks() stream.Observable[overlay.Point] { return d.clicks.AsObservable() }

// Moves streams pointer positions.
func (d *Document) Moves() stream.Observable[overlay.Point] { return d.moves.AsObservable() }

// FocusChanges streams focus changes.
func (d *Document) FocusChanges() stream.Observable[FocusEvent] { return d.focus.AsObservable() }
