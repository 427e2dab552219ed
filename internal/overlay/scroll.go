package overlay

import (
	"fmt"
	"strings"

	"github.com/ruminaider/popcal/internal/stream"
)

// ScrollKind names a scroll strategy in config files.
type ScrollKind string

const (
	ScrollReposition ScrollKind = "reposition"
	ScrollClose      ScrollKind = "close"
	ScrollNoop       ScrollKind = "noop"
)

// ParseScrollKind validates a scroll strategy name.
func ParseScrollKind(s string) (ScrollKind, error) {
	switch k := ScrollKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return ScrollReposition, nil
	case ScrollReposition, ScrollClose, ScrollNoop:
		return k, nil
	}
	return ScrollReposition, fmt.Errorf("unknown scroll strategy %q", s)
}

// ScrollStrategy reacts to scrolling of the surface under a Ref. It is
// enabled while the ref hosts content.
type ScrollStrategy interface {
	enable(ref *Ref)
	disable()
}

// ScrollStrategyOptions builds strategies bound to a service's scroll events.
type ScrollStrategyOptions struct {
	scrolled stream.Observable[struct{}]
}

// Reposition re-applies the ref's position strategy on every scroll.
func (o ScrollStrategyOptions) Reposition() ScrollStrategy {
	return &scrollListener{scrolled: o.scrolled, react: (*Ref).UpdatePosition}
}

// Close detaches the ref's content on scroll.
func (o ScrollStrategyOptions) Close() ScrollStrategy {
	return &scrollListener{scrolled: o.scrolled, react: (*Ref).Detach}
}

// Noop ignores scrolling.
func (o ScrollStrategyOptions) Noop() ScrollStrategy {
	return noopScroll{}
}

// For returns the strategy named by kind.
func (o ScrollStrategyOptions) For(kind ScrollKind) ScrollStrategy {
	switch kind {
	case ScrollClose:
		return o.Close()
	case ScrollNoop:
		return o.Noop()
	default:
		return o.Reposition()
	}
}

type scrollListener struct {
	scrolled stream.Observable[struct{}]
	react    func(*Ref)
	sub      *stream.Subscription
}

func (s *scrollListener) enable(ref *Ref) {
	if s.sub != nil {
		return
	}
	s.sub = s.scrolled.Subscribe(func(struct{}) { s.react(ref) })
}

func (s *scrollListener) disable() {
	s.sub.Unsubscribe()
	s.sub = nil
}

type noopScroll struct{}

func (noopScroll) enable(*Ref) {}
func (noopScroll) disable()    {}
