package overlay

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ruminaider/popcal/internal/stream"
)

// Position is the side of the anchor an overlay is placed on.
type Position int

const (
	PositionBottom Position = iota
	PositionTop
	PositionLeft
	PositionRight
)

// String returns the lowercase name of the position.
func (p Position) String() string {
	switch p {
	case PositionBottom:
		return "bottom"
	case PositionTop:
		return "top"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParsePosition parses a position name as written in config files.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom", "":
		return PositionBottom, nil
	case "top":
		return PositionTop, nil
	case "left":
		return PositionLeft, nil
	case "right":
		return PositionRight, nil
	}
	return PositionBottom, fmt.Errorf("unknown position %q", s)
}

// Adjustment decides which sides are tried, in order, when the preferred
// position does not fit the viewport.
type Adjustment int

const (
	AdjustmentNone Adjustment = iota
	AdjustmentClockwise
	AdjustmentCounterclockwise
)

func (a Adjustment) String() string {
	switch a {
	case AdjustmentNone:
		return "none"
	case AdjustmentClockwise:
		return "clockwise"
	case AdjustmentCounterclockwise:
		return "counterclockwise"
	default:
		return "unknown"
	}
}

// ParseAdjustment parses an adjustment name as written in config files.
func ParseAdjustment(s string) (Adjustment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "noop":
		return AdjustmentNone, nil
	case "clockwise":
		return AdjustmentClockwise, nil
	case "counterclockwise", "":
		return AdjustmentCounterclockwise, nil
	}
	return AdjustmentNone, fmt.Errorf("unknown adjustment %q", s)
}

// Sides in clockwise screen order.
var clockwise = []Position{PositionTop, PositionRight, PositionBottom, PositionLeft}

// Order lists the positions to try, starting with preferred.
func (a Adjustment) Order(preferred Position) []Position {
	if a == AdjustmentNone {
		return []Position{preferred}
	}
	start := 0
	for i, p := range clockwise {
		if p == preferred {
			start = i
			break
		}
	}
	n := len(clockwise)
	out := make([]Position, 0, n)
	for i := 0; i < n; i++ {
		idx := start + i
		if a == AdjustmentCounterclockwise {
			idx = start - i
		}
		out = append(out, clockwise[((idx%n)+n)%n])
	}
	return out
}

// Placement is the result of applying a position strategy.
type Placement struct {
	Position Position
	Origin   Point
}

// PositionStrategy computes where overlay content of a given size goes.
type PositionStrategy interface {
	Apply(content, viewport Size) Placement
	Dispose()
}

// PositionBuilder creates position strategies. The zero value is usable.
type PositionBuilder struct{}

// ConnectedTo returns a strategy anchored at el, preferring the bottom side
// with no adjustment until configured otherwise.
func (PositionBuilder) ConnectedTo(el Element) *AdjustableConnectedPositionStrategy {
	return &AdjustableConnectedPositionStrategy{
		anchor:   el,
		position: PositionBottom,
		changes:  stream.NewSubject[Position](),
	}
}

// AdjustableConnectedPositionStrategy places content next to an anchor and
// walks the adjustment order when the preferred side overflows.
type AdjustableConnectedPositionStrategy struct {
	mu         sync.Mutex
	anchor     Element
	position   Position
	adjustment Adjustment
	current    Position
	applied    bool
	changes    *stream.Subject[Position]
}

// Position sets the preferred side.
func (s *AdjustableConnectedPositionStrategy) Position(p Position) *AdjustableConnectedPositionStrategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = p
	return s
}

// Adjustment sets the overflow adjustment.
func (s *AdjustableConnectedPositionStrategy) Adjustment(a Adjustment) *AdjustableConnectedPositionStrategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustment = a
	return s
}

// PositionChange emits the chosen side whenever it differs from the last
// applied one, including the first application.
func (s *AdjustableConnectedPositionStrategy) PositionChange() stream.Observable[Position] {
	return s.changes.AsObservable()
}

// Current returns the last applied side, or the preferred side before the
// first application.
func (s *AdjustableConnectedPositionStrategy) Current() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.applied {
		return s.position
	}
	return s.current
}

// Apply picks the first side in adjustment order that fits. When none fits
// the preferred side is used and the origin is clamped into the viewport.
func (s *AdjustableConnectedPositionStrategy) Apply(content, viewport Size) Placement {
	s.mu.Lock()
	anchor := s.anchor.Bounds()
	order := s.adjustment.Order(s.position)

	chosen := Placement{Position: s.position, Origin: originFor(s.position, anchor, content)}
	for _, p := range order {
		origin := originFor(p, anchor, content)
		if fits(p, anchor, content, viewport) {
			chosen = Placement{Position: p, Origin: origin}
			break
		}
	}
	chosen.Origin = clamp(chosen.Origin, content, viewport)

	changed := !s.applied || s.current != chosen.Position
	s.applied = true
	s.current = chosen.Position
	s.mu.Unlock()

	if changed {
		s.changes.Next(chosen.Position)
	}
	return chosen
}

// Dispose completes the position change stream.
func (s *AdjustableConnectedPositionStrategy) Dispose() {
	s.changes.Complete()
}

func originFor(p Position, anchor Rect, content Size) Point {
	switch p {
	case PositionTop:
		return Point{X: anchor.X, Y: anchor.Y - content.Height}
	case PositionLeft:
		return Point{X: anchor.X - content.Width, Y: anchor.Y}
	case PositionRight:
		return Point{X: anchor.X + anchor.Width, Y: anchor.Y}
	default:
		return Point{X: anchor.X, Y: anchor.Y + anchor.Height}
	}
}

// fits only checks the main axis; the cross axis is clamped afterwards.
func fits(p Position, anchor Rect, content, viewport Size) bool {
	switch p {
	case PositionTop:
		return anchor.Y-content.Height >= 0
	case PositionLeft:
		return anchor.X-content.Width >= 0
	case PositionRight:
		return anchor.X+anchor.Width+content.Width <= viewport.Width
	default:
		return anchor.Y+anchor.Height+content.Height <= viewport.Height
	}
}

func clamp(origin Point, content, viewport Size) Point {
	if origin.X+content.Width > viewport.Width {
		origin.X = viewport.Width - content.Width
	}
	if origin.Y+content.Height > viewport.Height {
		origin.Y = viewport.Height - content.Height
	}
	if origin.X < 0 {
		origin.X = 0
	}
	if origin.Y < 0 {
		origin.Y = 0
	}
	return origin
}
