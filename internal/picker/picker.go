// Package picker implements the popup controller shared by the date and
// range pickers: it attaches an overlay to an anchor, opens and closes a
// calendar panel on trigger intents, and bridges the value between the
// panel and its listeners.
package picker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/stream"
	"github.com/ruminaider/popcal/internal/trigger"
)

var (
	ErrNotAttached     = errors.New("picker is not attached to a host")
	ErrAlreadyAttached = errors.New("picker is already attached")
	ErrDestroyed       = errors.New("picker has been destroyed")
	ErrNoHost          = errors.New("picker host is nil")
	ErrNoPanel         = errors.New("picker has no panel portal")
)

// State is the controller lifecycle state.
type State int

const (
	StateUnattached State = iota
	StateClosed
	StateOpen
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Picker is the value-level surface an input host needs, independent of
// payload shape.
type Picker[T any] interface {
	Value() T
	SetValue(T)
	ValueChange() stream.Observable[T]
	Attach(host overlay.Element) error
}

// Deps are the collaborators a controller builds its overlay from. Document
// and Overlays are required.
type Deps struct {
	Document  *trigger.Document
	Overlays  *overlay.Service
	Positions overlay.PositionBuilder
	Logger    *slog.Logger
}

// Options tune placement and interaction.
type Options struct {
	Position   overlay.Position
	Adjustment overlay.Adjustment
	Trigger    trigger.Kind
	Scroll     overlay.ScrollKind
}

// DefaultOptions places the panel below the anchor, flips counterclockwise
// on overflow, opens on click and follows scrolling.
func DefaultOptions() Options {
	return Options{
		Position:   overlay.PositionBottom,
		Adjustment: overlay.AdjustmentCounterclockwise,
		Trigger:    trigger.KindClick,
		Scroll:     overlay.ScrollReposition,
	}
}

// Adapter supplies the payload-specific half of a picker.
type Adapter[T any, P overlay.Component] struct {
	// Panel describes the panel to instantiate on show.
	Panel overlay.Portal[P]
	// Get reads the panel's current value.
	Get func(P) T
	// Set pushes a value into a live panel.
	Set func(P, T)
	// Changes is the panel's value-changed stream.
	Changes func(P) stream.Observable[T]
	// Flush writes the pending value into a freshly shown panel. Defaults
	// to Set.
	Flush func(P, T)
}

// BasePicker is the popup controller. All methods must be called from the
// host's event loop.
type BasePicker[T any, P overlay.Component] struct {
	deps    Deps
	opts    Options
	adapter Adapter[T, P]
	logger  *slog.Logger

	host             overlay.Element
	ref              *overlay.Ref
	positionStrategy *overlay.AdjustableConnectedPositionStrategy
	triggerStrategy  trigger.Strategy
	subs             []*stream.Subscription

	container *overlay.ComponentRef[*Container]
	pickerRef *overlay.ComponentRef[P]
	pickerSub *stream.Subscription

	onChange *stream.Subject[T]
	queue    T
	alive    bool
	state    State
}

// NewBasePicker returns an unattached controller.
func NewBasePicker[T any, P overlay.Component](deps Deps, opts Options, adapter Adapter[T, P]) *BasePicker[T, P] {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if adapter.Flush == nil {
		adapter.Flush = adapter.Set
	}
	return &BasePicker[T, P]{
		deps:     deps,
		opts:     opts,
		adapter:  adapter,
		logger:   logger.With("component", "picker"),
		onChange: stream.NewSubject[T](),
		alive:    true,
	}
}

// State returns the lifecycle state.
func (b *BasePicker[T, P]) State() State {
	return b.state
}

// IsOpen reports whether a panel is shown.
func (b *BasePicker[T, P]) IsOpen() bool {
	return b.state == StateOpen
}

// Panel returns the live panel, if any.
func (b *BasePicker[T, P]) Panel() (P, bool) {
	if b.pickerRef == nil {
		var zero P
		return zero, false
	}
	return b.pickerRef.Instance, true
}

// Container returns the live container, if any.
func (b *BasePicker[T, P]) Container() (*Container, bool) {
	if b.container == nil {
		return nil, false
	}
	return b.container.Instance, true
}

// Ref returns the overlay handle, nil before Attach.
func (b *BasePicker[T, P]) Ref() *overlay.Ref {
	return b.ref
}

// Host returns the anchor recorded by Attach.
func (b *BasePicker[T, P]) Host() overlay.Element {
	return b.host
}

// ValueChange streams every value the panel emits. The same stream is
// returned for the controller's lifetime; it completes on Destroy.
func (b *BasePicker[T, P]) ValueChange() stream.Observable[T] {
	return b.onChange.AsObservable()
}

// Value returns the panel's value while open, otherwise the pending value.
func (b *BasePicker[T, P]) Value() T {
	if b.pickerRef == nil {
		return b.queue
	}
	return b.adapter.Get(b.pickerRef.Instance)
}

// SetValue pushes v into the open panel, or queues it for the next show.
func (b *BasePicker[T, P]) SetValue(v T) {
	if b.pickerRef == nil {
		b.queue = v
		return
	}
	b.adapter.Set(b.pickerRef.Instance, v)
}

// Attach connects the controller to host: it creates the overlay handle and
// starts reacting to position changes and trigger intents.
func (b *BasePicker[T, P]) Attach(host overlay.Element) error {
	switch b.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateClosed, StateOpen:
		return ErrAlreadyAttached
	}
	if host == nil {
		return ErrNoHost
	}
	if !b.adapter.Panel.Valid() {
		return ErrNoPanel
	}
	if b.deps.Overlays == nil {
		return errors.New("picker: overlay service is required")
	}

	b.host = host
	b.positionStrategy = b.deps.Positions.ConnectedTo(host).
		Position(b.opts.Position).
		Adjustment(b.opts.Adjustment)
	b.ref = b.deps.Overlays.Create(overlay.Config{
		PositionStrategy: b.positionStrategy,
		ScrollStrategy:   b.deps.Overlays.ScrollStrategies().For(b.opts.Scroll),
	})
	b.subscribeOnPositionChange()
	b.subscribeOnDetach()

	if err := b.subscribeOnTriggers(); err != nil {
		b.unsubscribeAll()
		b.ref.Dispose()
		b.ref = nil
		b.positionStrategy = nil
		b.host = nil
		return fmt.Errorf("building trigger strategy: %w", err)
	}

	b.state = StateClosed
	b.logger.Debug("attached", "ref", b.ref.ID(), "position", b.opts.Position, "trigger", b.opts.Trigger)
	return nil
}

func (b *BasePicker[T, P]) isAlive() bool {
	return b.alive
}

func (b *BasePicker[T, P]) subscribeOnPositionChange() {
	sub := stream.SubscribeWhile(b.positionStrategy.PositionChange(), b.isAlive, func(p overlay.Position) {
		if b.container != nil {
			b.container.Instance.SetPosition(p)
		}
	})
	b.subs = append(b.subs, sub)
}

// subscribeOnDetach hides the panel when the overlay drops it on its own,
// e.g. through a close-on-scroll strategy, so state and the container slot
// seen by the trigger match what is on screen.
func (b *BasePicker[T, P]) subscribeOnDetach() {
	sub := stream.SubscribeWhile(b.ref.Detached(), b.isAlive, func(struct{}) {
		if b.pickerRef != nil {
			b.logger.Debug("overlay detached externally")
			b.Hide()
		}
	})
	b.subs = append(b.subs, sub)
}

// containerElement resolves the container at call time; it is nil until
// the first show and again after every hide.
func (b *BasePicker[T, P]) containerElement() overlay.Element {
	if b.container == nil {
		return nil
	}
	return b.container.Instance
}

func (b *BasePicker[T, P]) subscribeOnTriggers() error {
	ts, err := trigger.NewBuilder().
		Document(b.deps.Document).
		Trigger(b.opts.Trigger).
		Host(b.host).
		Container(b.containerElement).
		Logger(b.logger).
		Build()
	if err != nil {
		return err
	}
	b.triggerStrategy = ts

	b.subs = append(b.subs,
		stream.SubscribeWhile(ts.Show(), b.isAlive, func(struct{}) {
			if err := b.Show(); err != nil {
				b.logger.Warn("show from trigger failed", "error", err)
			}
		}),
		stream.SubscribeWhile(ts.Hide(), b.isAlive, func(struct{}) {
			b.Hide()
		}),
	)
	return nil
}

// Show attaches the container, instantiates the panel, forwards its value
// changes and writes the pending value into it. Showing an open picker is a
// no-op.
func (b *BasePicker[T, P]) Show() error {
	switch b.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateUnattached:
		return ErrNotAttached
	case StateOpen:
		return nil
	}

	container, err := overlay.AttachPortal(b.ref, overlay.NewPortal(func() *Container {
		return NewContainer(b.ref.Bounds)
	}))
	if err != nil {
		return fmt.Errorf("attaching container: %w", err)
	}
	b.container = container
	b.container.Instance.SetPosition(b.positionStrategy.Current())

	b.pickerRef = attachPanel(container.Instance, b.adapter.Panel)
	b.pickerSub = stream.SubscribeWhile(b.adapter.Changes(b.pickerRef.Instance), b.isAlive, func(v T) {
		b.onChange.Next(v)
	})
	b.state = StateOpen

	b.adapter.Flush(b.pickerRef.Instance, b.queue)
	b.logger.Debug("shown")
	return nil
}

// Hide keeps the panel's value as the pending value, detaches the container
// and destroys the panel. Hiding a closed picker is a no-op.
func (b *BasePicker[T, P]) Hide() {
	if b.pickerRef == nil {
		return
	}
	panel := b.pickerRef
	b.pickerRef = nil
	b.queue = b.adapter.Get(panel.Instance)

	b.pickerSub.Unsubscribe()
	b.pickerSub = nil

	b.container = nil
	if b.state == StateOpen {
		b.state = StateClosed
	}

	// Slots are cleared first: Detach re-enters through the detach
	// subscription, which then finds nothing to hide.
	b.ref.Detach()
	panel.Destroy()
	b.logger.Debug("hidden")
}

// Toggle hides when the overlay hosts the container, shows otherwise.
func (b *BasePicker[T, P]) Toggle() error {
	if b.ref != nil && b.ref.HasAttached() {
		b.Hide()
		return nil
	}
	return b.Show()
}

// Destroy stops every subscription, hides the panel, disposes the overlay
// and completes the value stream. Safe to call in any state, repeatedly.
func (b *BasePicker[T, P]) Destroy() {
	if b.state == StateDestroyed {
		return
	}
	b.alive = false
	b.unsubscribeAll()
	if b.triggerStrategy != nil {
		b.triggerStrategy.Destroy()
	}
	b.Hide()
	if b.ref != nil {
		b.ref.Dispose()
	}
	b.onChange.Complete()
	b.state = StateDestroyed
	b.logger.Debug("destroyed")
}

func (b *BasePicker[T, P]) unsubscribeAll() {
	for _, sub := range b.subs {
		sub.Unsubscribe()
	}
	b.subs = nil
}
