package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/popcal/internal/calendar"
	"github.com/ruminaider/popcal/internal/config"
	"github.com/ruminaider/popcal/internal/overlay"
	"github.com/ruminaider/popcal/internal/picker"
	"github.com/ruminaider/popcal/internal/theme"
	"github.com/ruminaider/popcal/internal/trigger"
)

// Layout of the host screen.
const (
	anchorRow   = 2  // title, blank line, then the input box
	anchorInner = 30 // input box width inside its border
)

// Options configure a picker session.
type Options struct {
	Mode     Mode
	Config   config.Config
	Value    string // initial input text
	Title    string
	Location *time.Location
	Today    func() time.Time
	Logger   *slog.Logger
}

// Model is the host screen: an input box acting as the picker anchor, with
// the picker composited over it.
type Model struct {
	mode     Mode
	title    string
	hint     string
	input    textinput.Model
	anchor   *Anchor
	doc      *trigger.Document
	overlays *overlay.Service
	session  session
	trigger  trigger.Kind
	status   StatusBar
	logger   *slog.Logger
	err      error
	width    int
	height   int
	quitting bool

	// Result is the confirmed input text.
	Result string

	// Confirmed is true when the user accepted with Enter.
	Confirmed bool
}

// NewModel builds the host screen, attaches the picker to the input and
// applies the initial value.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	pickerOpts, err := cfg.PickerOptions()
	if err != nil {
		return Model{}, err
	}
	weekStart, err := cfg.Weekday()
	if err != nil {
		return Model{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	calOpts := []calendar.Option{calendar.WithWeekStart(weekStart)}
	if opts.Today != nil {
		calOpts = append(calOpts, calendar.WithToday(opts.Today))
	}

	doc := trigger.NewDocument()
	overlays := overlay.NewService(logger)
	deps := picker.Deps{Document: doc, Overlays: overlays, Logger: logger}

	var sess session
	switch opts.Mode {
	case ModeDate:
		sess = newDateSession(deps, pickerOpts, cfg.DateFormat, loc, calOpts)
	case ModeRange:
		sess = newRangeSession(deps, pickerOpts, cfg.DateFormat, cfg.Separator(), loc, calOpts)
	default:
		return Model{}, fmt.Errorf("unsupported mode %d", opts.Mode)
	}

	anchor := NewAnchor(overlay.Rect{X: 0, Y: anchorRow, Width: anchorInner + 2, Height: 3})
	if err := sess.Attach(anchor); err != nil {
		return Model{}, fmt.Errorf("attaching picker: %w", err)
	}
	if err := sess.setText(opts.Value); err != nil {
		sess.Destroy()
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder(opts.Mode, cfg)
	ti.CharLimit = 64
	ti.Width = anchorInner - 3
	ti.SetValue(sess.text())
	ti.Focus()

	title := opts.Title
	if title == "" {
		title = "Pick a " + opts.Mode.String()
	}

	m := Model{
		mode:     opts.Mode,
		title:    title,
		hint:     "format: " + ti.Placeholder,
		input:    ti,
		anchor:   anchor,
		doc:      doc,
		overlays: overlays,
		session:  sess,
		trigger:  pickerOpts.Trigger,
		status:   NewStatusBar(opts.Mode),
		logger:   logger.With("component", "tui"),
	}
	if m.trigger == trigger.KindFocus {
		// The input starts focused.
		m.doc.Focus(m.anchor)
	}
	m.syncStatus()
	return m, nil
}

func placeholder(mode Mode, cfg config.Config) string {
	layout := cfg.DateFormat
	if mode == ModeRange {
		return layout + cfg.Separator() + layout
	}
	return layout
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.SetWidth(msg.Width)
		m.scrolled()
		return m, nil

	case ScrollMsg:
		m.scrolled()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := overlay.Point{X: msg.X, Y: msg.Y}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		m.scrolled()
	case msg.Action == tea.MouseActionMotion:
		m.doc.Move(p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.doc.Click(p)
		if m.anchor.Bounds().Contains(p) {
			m.doc.Focus(m.anchor)
		}
	}
	return m.afterPicker()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.session.Destroy()
		m.quitting = true
		return m, tea.Quit
	}

	if m.session.IsOpen() {
		switch key {
		case "esc":
			m.session.Hide()
			m.syncStatus()
			return m, nil
		case "tab":
			m.doc.Focus(nil)
			m.session.Hide()
			m.syncStatus()
			return m, nil
		}
		if m.session.handleKey(key) {
			return m.afterPicker()
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.session.Destroy()
		m.quitting = true
		return m, tea.Quit
	case "enter":
		return m.confirm()
	case "down", "ctrl+o":
		m.err = nil
		if err := m.session.setText(m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		if err := m.session.Show(); err != nil {
			m.err = err
		}
		m.syncStatus()
		return m, nil
	case "tab":
		m.doc.Focus(m.anchor)
		return m.afterPicker()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Partial input is only reported on enter or open.
	if err := m.session.setText(m.input.Value()); err == nil {
		m.err = nil
	}
	return m, cmd
}

// scrolled notifies scroll strategies; a close-on-scroll strategy may hide
// the picker.
func (m *Model) scrolled() {
	m.overlays.NotifyScroll()
	m.syncStatus()
}

// afterPicker copies a changed picker value into the input and closes the
// picker once the selection is finished.
func (m Model) afterPicker() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	changed, done := m.session.drain()
	if changed {
		m.err = nil
		m.input.SetValue(m.session.text())
		m.input.CursorEnd()
	}
	if done {
		m.session.Hide()
		text := m.input.Value()
		cmd = func() tea.Msg { return PickedMsg{Text: text} }
		m.logger.Debug("picked", "value", text)
	}
	m.syncStatus()
	return m, cmd
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	if err := m.session.setText(m.input.Value()); err != nil {
		m.err = err
		return m, nil
	}
	if err := m.session.ready(); err != nil {
		m.err = err
		return m, nil
	}
	m.Result = m.session.text()
	m.Confirmed = true
	m.session.Destroy()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) syncStatus() {
	m.status.Update(m.session.State().String(), m.session.IsOpen())
}

// IsOpen reports whether the picker panel is shown.
func (m Model) IsOpen() bool {
	return m.session.IsOpen()
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Err returns the last parse or open error.
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	boxStyle := theme.InputStyle
	if m.session.IsOpen() {
		boxStyle = theme.InputFocusedStyle
	}
	box := boxStyle.Width(anchorInner).Render(m.input.View())

	lines := []string{theme.TitleStyle.Render(m.title), ""}
	lines = append(lines, strings.Split(box, "\n")...)
	if m.err != nil {
		lines = append(lines, theme.ErrorStyle.Render(m.err.Error()))
	} else {
		lines = append(lines, theme.HelpStyle.Render(m.hint))
	}

	height := m.height
	if height <= 0 {
		height = len(lines) + 1
	}
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines[:height-1], m.status.View())

	background := strings.Join(lines, "\n")
	if m.width <= 0 || m.height <= 0 {
		return background
	}
	return m.overlays.Render(background, overlay.Size{Width: m.width, Height: m.height})
}
