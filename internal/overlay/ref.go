package overlay

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/ruminaider/popcal/internal/stream"
)

var (
	// ErrRefDisposed is returned when attaching to a disposed Ref.
	ErrRefDisposed = errors.New("overlay ref disposed")
	// ErrRefAttached is returned when attaching to a Ref that already hosts content.
	ErrRefAttached = errors.New("overlay ref already has attached content")
	// ErrNoFactory is returned when attaching a zero Portal.
	ErrNoFactory   = errors.New("overlay portal has no factory")
)

// Config configures a Ref.
type Config struct {
	PositionStrategy PositionStrategy
	ScrollStrategy   ScrollStrategy
}

// Ref is a lease on one floating pane. It hosts at most one component at a
// time and is placed by its position strategy on every render.
type Ref struct {
	mu        sync.Mutex
	id        uuid.UUID
	cfg       Config
	service   *Service
	logger    *slog.Logger
	content   Component
	gen       uint64
	viewport  Size
	placement Placement
	size      Size
	disposed  bool
	detached  *stream.Subject[struct{}]
}

// ID identifies the ref within its service.
func (r *Ref) ID() uuid.UUID {
	return r.id
}

// Attach hosts c in the pane.
func (r *Ref) Attach(c Component) error {
	_, err := r.attach(c)
	return err
}

func (r *Ref) attach(c Component) (uint64, error) {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return 0, ErrRefDisposed
	}
	if r.content != nil {
		r.mu.Unlock()
		return 0, ErrRefAttached
	}
	r.content = c
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	if r.cfg.ScrollStrategy != nil {
		r.cfg.ScrollStrategy.enable(r)
	}
	r.logger.Debug("overlay attached", "ref", r.id)
	return gen, nil
}

// Detach removes the hosted component, if any.
func (r *Ref) Detach() {
	r.mu.Lock()
	had := r.content != nil
	r.content = nil
	r.size = Size{}
	r.mu.Unlock()

	if !had {
		return
	}
	if r.cfg.ScrollStrategy != nil {
		r.cfg.ScrollStrategy.disable()
	}
	r.logger.Debug("overlay detached", "ref", r.id)
	r.detached.Next(struct{}{})
}

// Detached emits after every detach, whoever caused it: the owner, a
// scroll strategy or Dispose. It completes on Dispose.
func (r *Ref) Detached() stream.Observable[struct{}] {
	return r.detached.AsObservable()
}

func (r *Ref) detachGeneration(gen uint64) {
	r.mu.Lock()
	current := r.gen == gen && r.content != nil
	r.mu.Unlock()
	if current {
		r.Detach()
	}
}

// HasAttached reports whether a component is hosted.
func (r *Ref) HasAttached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content != nil
}

// Disposed reports whether Dispose has run.
func (r *Ref) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

// Dispose detaches content, releases the position strategy and removes the
// ref from its service. Safe to call more than once.
func (r *Ref) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.Detach()

	r.mu.Lock()
	r.disposed = true
	r.mu.Unlock()

	if r.cfg.PositionStrategy != nil {
		r.cfg.PositionStrategy.Dispose()
	}
	if r.service != nil {
		r.service.remove(r)
	}
	r.detached.Complete()
	r.logger.Debug("overlay disposed", "ref", r.id)
}

// Bounds is the rectangle the pane occupied on the last render. Empty when
// nothing is attached.
func (r *Ref) Bounds() Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.content == nil {
		return Rect{}
	}
	return Rect{X: r.placement.Origin.X, Y: r.placement.Origin.Y, Width: r.size.Width, Height: r.size.Height}
}

// Placement returns the last applied placement.
func (r *Ref) Placement() Placement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.placement
}

// UpdatePosition re-applies the position strategy against the last known
// viewport and content size.
func (r *Ref) UpdatePosition() {
	r.mu.Lock()
	if r.content == nil || r.cfg.PositionStrategy == nil || r.viewport == (Size{}) {
		r.mu.Unlock()
		return
	}
	size, viewport := r.size, r.viewport
	r.mu.Unlock()

	placement := r.cfg.PositionStrategy.Apply(size, viewport)

	r.mu.Lock()
	r.placement = placement
	r.mu.Unlock()
}

// Render composites the hosted component into background.
func (r *Ref) Render(background string, viewport Size) string {
	r.mu.Lock()
	content := r.content
	r.mu.Unlock()
	if content == nil {
		return background
	}

	view := content.View()
	size := measure(view)

	r.mu.Lock()
	r.size = size
	r.viewport = viewport
	r.mu.Unlock()

	var placement Placement
	if r.cfg.PositionStrategy != nil {
		before := r.Placement().Position
		placement = r.cfg.PositionStrategy.Apply(size, viewport)
		if placement.Position != before {
			// The strategy may have patched the content, e.g. a container
			// drawing its arrow on the anchor side.
			view = content.View()
		}
	}

	r.mu.Lock()
	r.placement = placement
	r.mu.Unlock()

	return Place(background, view, placement.Origin, viewport)
}

func measure(view string) Size {
	lines := strings.Split(view, "\n")
	w := 0
	for _, l := range lines {
		if lw := ansi.StringWidth(l); lw > w {
			w = lw
		}
	}
	return Size{Width: w, Height: len(lines)}
}
