package trigger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/stream"
)

// Kind selects the interaction pattern that opens and closes the overlay.
type Kind int

const (
	KindNoop Kind = iota
	KindClick
	KindHover
	KindFocus
)

func (k Kind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindClick:
		return "click"
	case KindHover:
		return "hover"
	case KindFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// ParseKind parses a trigger name as written in config files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "click", "":
		return KindClick, nil
	case "hover":
		return KindHover, nil
	case "focus":
		return KindFocus, nil
	case "noop", "none":
		return KindNoop, nil
	}
	return KindNoop, fmt.Errorf("unknown trigger %q", s)
}

var (
	ErrNoDocument = errors.New("trigger: document is required")
	ErrNoHost     = errors.New("trigger: host is required")
)

// Strategy emits show and hide intents.
type Strategy interface {
	Show() stream.Observable[struct{}]
	Hide() stream.Observable[struct{}]
	// Destroy stops listening to the document.
	Destroy()
}

// ContainerFunc returns the current overlay container, or nil when none is
// attached. It is called on every event, never cached.
type ContainerFunc func() overlay.Element

// Builder assembles a Strategy.
type Builder struct {
	document  *Document
	kind      Kind
	host      overlay.Element
	container ContainerFunc
	logger    *slog.Logger
}

// NewBuilder returns a builder defaulting to the click trigger.
func NewBuilder() *Builder {
	return &Builder{kind: KindClick}
}

func (b *Builder) Document(d *Document) *Builder       { b.document = d; return b }
func (b *Builder) Trigger(k Kind) *Builder             { b.kind = k; return b }
func (b *Builder) Host(h overlay.Element) *Builder     { b.host = h; return b }
func (b *Builder) Container(fn ContainerFunc) *Builder { b.container = fn; return b }
func (b *Builder) Logger(l *slog.Logger) *Builder      { b.logger = l; return b }

// Build validates the configuration and starts listening.
func (b *Builder) Build() (Strategy, error) {
	if b.document == nil {
		return nil, ErrNoDocument
	}
	if b.host == nil {
		return nil, ErrNoHost
	}
	container := b.container
	if container == nil {
		container = func() overlay.Element { return nil }
	}
	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	base := &base{
		host:      b.host,
		container: container,
		show:      stream.NewSubject[struct{}](),
		hide:      stream.NewSubject[struct{}](),
		logger:    logger.With("trigger", b.kind.String()),
	}

	switch b.kind {
	case KindClick:
		base.listen(b.document.Clicks(), base.onClick)
	case KindHover:
		base.listen(b.document.Moves(), base.onMove)
	case KindFocus:
		base.listenFocus(b.document.FocusChanges())
		base.listen(b.document.Clicks(), base.onClickOutside)
	case KindNoop:
	default:
		return nil, fmt.Errorf("unsupported trigger kind %d", b.kind)
	}
	return base, nil
}

type base struct {
	host      overlay.Element
	container ContainerFunc
	show      *stream.Subject[struct{}]
	hide      *stream.Subject[struct{}]
	subs      []*stream.Subscription
	logger    *slog.Logger
}

func (s *base) Show() stream.Observable[struct{}] { return s.show.AsObservable() }
func (s *base) Hide() stream.Observable[struct{}] { return s.hide.AsObservable() }

func (s *base) Destroy() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	s.show.Complete()
	s.hide.Complete()
}

func (s *base) listen(src stream.Observable[overlay.Point], fn func(overlay.Point)) {
	s.subs = append(s.subs, src.Subscribe(fn))
}

func (s *base) listenFocus(src stream.Observable[FocusEvent]) {
	s.subs = append(s.subs, src.Subscribe(s.onFocus))
}

func (s *base) inHost(p overlay.Point) bool {
	return s.host.Bounds().Contains(p)
}

func (s *base) inContainer(p overlay.Point) bool {
	c := s.container()
	return c != nil && c.Bounds().Contains(p)
}

func (s *base) emitShow() {
	s.logger.Debug("show intent")
	s.show.Next(struct{}{})
}

func (s *base) emitHide() {
	s.logger.Debug("hide intent")
	s.hide.Next(struct{}{})
}

// A click on the host opens a closed overlay. Any other click while open
// closes it, unless it lands inside the container.
func (s *base) onClick(p overlay.Point) {
	open := s.container() != nil
	switch {
	case !open && s.inHost(p):
		s.emitShow()
	case open && !s.inContainer(p):
		s.emitHide()
	}
}

// Entering the host opens; leaving both host and container closes.
func (s *base) onMove(p overlay.Point) {
	open := s.container() != nil
	over := s.inHost(p) || s.inContainer(p)
	switch {
	case !open && s.inHost(p):
		s.emitShow()
	case open && !over:
		s.emitHide()
	}
}

func (s *base) onFocus(e FocusEvent) {
	open := s.container() != nil
	switch {
	case e.Target == nil:
		if open {
			s.emitHide()
		}
	case !open && e.Target == s.host:
		s.emitShow()
	case open && e.Target != s.host && e.Target != s.container():
		s.emitHide()
	}
}

func (s *base) onClickOutside(p overlay.Point) {
	if s.container() != nil && !s.inHost(p) && !s.inContainer(p) {
		s.emitHide()
	}
}
