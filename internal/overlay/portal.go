package overlay

import "sync"

// Component is renderable overlay content.
type Component interface {
	View() string
}

// Destroyer is implemented by components that hold resources, such as open
// streams, that must be released when the component goes away.
type Destroyer interface {
	Destroy()
}

// Portal describes a component type to instantiate. The component is not
// created until the portal is attached somewhere.
type Portal[C Component] struct {
	factory func() C
}

// NewPortal returns a portal producing components with factory.
func NewPortal[C Component](factory func() C) Portal[C] {
	return Portal[C]{factory: factory}
}

// Create instantiates the component.
func (p Portal[C]) Create() C {
	return p.factory()
}

// Valid reports whether the portal has a factory.
func (p Portal[C]) Valid() bool {
	return p.factory != nil
}

// ComponentRef is the handle returned when a portal is attached. Instance is
// the live component.
type ComponentRef[C Component] struct {
	Instance C

	once      sync.Once
	onDestroy func()
}

// NewComponentRef wraps an instance; onDestroy runs once when the ref is
// destroyed, after the instance's own Destroy.
func NewComponentRef[C Component](instance C, onDestroy func()) *ComponentRef[C] {
	return &ComponentRef[C]{Instance: instance, onDestroy: onDestroy}
}

// Destroy tears the instance down. Safe to call more than once.
func (r *ComponentRef[C]) Destroy() {
	r.once.Do(func() {
		if d, ok := any(r.Instance).(Destroyer); ok {
			d.Destroy()
		}
		if r.onDestroy != nil {
			r.onDestroy()
		}
	})
}

// AttachPortal instantiates p into ref. Destroying the returned handle
// detaches it again, unless something else was attached in the meantime.
func AttachPortal[C Component](ref *Ref, p Portal[C]) (*ComponentRef[C], error) {
	if !p.Valid() {
		return nil, ErrNoFactory
	}
	instance := p.Create()
	gen, err := ref.attach(instance)
	if err != nil {
		return nil, err
	}
	return NewComponentRef(instance, func() { ref.detachGeneration(gen) }), nil
}
