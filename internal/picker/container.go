package picker

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/theme"
)

// Container is the frame hosted in the overlay. It draws a border with an
// arrow pointing back at the anchor and hosts one panel at a time.
type Container struct {
	position overlay.Position
	content  overlay.Component
	gen      uint64
	release  func()
	bounds   func() overlay.Rect
}

// NewContainer returns an empty container. bounds reports where the overlay
// last placed it; nil means unknown.
func NewContainer(bounds func() overlay.Rect) *Container {
	return &Container{bounds: bounds}
}

// SetPosition patches the side of the anchor the container sits on.
func (c *Container) SetPosition(p overlay.Position) {
	c.position = p
}

// Position returns the current side.
func (c *Container) Position() overlay.Position {
	return c.position
}

// Bounds implements overlay.Element.
func (c *Container) Bounds() overlay.Rect {
	if c.bounds == nil {
		return overlay.Rect{}
	}
	return c.bounds()
}

// HasContent reports whether a panel is hosted.
func (c *Container) HasContent() bool {
	return c.content != nil
}

// Destroy destroys the hosted panel, if any.
func (c *Container) Destroy() {
	if c.release != nil {
		c.release()
	}
}

// View renders the hosted panel inside the frame.
func (c *Container) View() string {
	inner := ""
	if c.content != nil {
		inner = c.content.View()
	}
	return c.withArrow(theme.ContainerStyle.Render(inner))
}

func (c *Container) withArrow(framed string) string {
	lines := strings.Split(framed, "\n")
	if len(lines) < 3 {
		return framed
	}
	width := ansi.StringWidth(lines[0])

	row, col, glyph := 0, 2, "▲"
	switch c.position {
	case overlay.PositionTop:
		row, col, glyph = len(lines)-1, 2, "▼"
	case overlay.PositionRight:
		row, col, glyph = 1, 0, "◀"
	case overlay.PositionLeft:
		row, col, glyph = 1, width-1, "▶"
	}
	if col >= width {
		return framed
	}

	line := lines[row]
	lines[row] = ansi.Truncate(line, col, "") + theme.ArrowStyle.Render(glyph) + ansi.TruncateLeft(line, col+1, "")
	return strings.Join(lines, "\n")
}

// attachPanel instantiates portal inside c, destroying any panel already
// hosted. The returned handle detaches the panel from c when destroyed.
func attachPanel[P overlay.Component](c *Container, portal overlay.Portal[P]) *overlay.ComponentRef[P] {
	if c.release != nil {
		c.release()
	}
	instance := portal.Create()
	c.content = instance
	c.gen++
	gen := c.gen

	ref := overlay.NewComponentRef(instance, func() {
		if c.gen == gen {
			c.content = nil
			c.release = nil
		}
	})
	c.release = ref.Destroy
	return ref
}
