package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/popcal/internal/config"
	"github.com/ruminaider/popcal/internal/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(mode Mode, value string) Options {
	return Options{
		Mode:     mode,
		Config:   config.Default(),
		Value:    value,
		Location: time.UTC,
		Today:    func() time.Time { return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) },
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := NewModel(opts)
	require.NoError(t, err)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestNewModel_InitialValue(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, "2024-03-10"))
	assert.Equal(t, "2024-03-10", m.Value())
	assert.False(t, m.IsOpen())
	assert.Equal(t, picker.StateClosed, m.session.State())
}

func TestNewModel_InvalidValue(t *testing.T) {
	_, err := NewModel(testOptions(ModeDate, "10/03/2024"))
	assert.Error(t, err)
}

func TestNewModel_InvalidConfig(t *testing.T) {
	opts := testOptions(ModeDate, "")
	opts.Config.Position = "diagonal"
	_, err := NewModel(opts)
	assert.Error(t, err)
}

func TestDatePick_Keyboard(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, "2024-03-10"))

	m, _ = send(m, keyMsg("down"))
	require.True(t, m.IsOpen())
	assert.Contains(t, m.View(), "March 2024")

	m, cmd := send(m, keyMsg("right"), keyMsg("enter"))
	assert.False(t, m.IsOpen(), "a single pick closes the picker")
	assert.Equal(t, "2024-03-11", m.Value())
	require.NotNil(t, cmd)
	assert.Equal(t, PickedMsg{Text: "2024-03-11"}, cmd())

	m, cmd = send(m, keyMsg("enter"))
	assert.True(t, m.Confirmed)
	assert.Equal(t, "2024-03-11", m.Result)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, picker.StateDestroyed, m.session.State())
}

func TestDatePick_EscClosesThenCancels(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, "2024-03-10"))
	m, _ = send(m, keyMsg("down"))
	require.True(t, m.IsOpen())

	m, cmd := send(m, keyMsg("esc"))
	assert.False(t, m.IsOpen())
	assert.Nil(t, cmd)
	assert.Equal(t, "2024-03-10", m.Value(), "closing keeps the value")

	m, cmd = send(m, keyMsg("esc"))
	assert.False(t, m.Confirmed)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestConfirm_RequiresValue(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, ""))
	m, cmd := send(m, keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.Confirmed)
	assert.ErrorIs(t, m.Err(), ErrNothingPicked)
	assert.Contains(t, m.View(), "nothing picked")
}

func TestView_FormatHintGivesWayToErrors(t *testing.T) {
	m := newTestModel(t, testOptions(ModeRange, ""))
	assert.Contains(t, m.View(), "format: 2006-01-02 - 2006-01-02")

	m, _ = send(m, keyMsg("enter"))
	view := m.View()
	assert.Contains(t, view, "nothing picked")
	assert.NotContains(t, view, "format:")
}

func TestConfirm_RejectsStartOnlyRange(t *testing.T) {
	m := newTestModel(t, testOptions(ModeRange, ""))
	m, _ = send(m, keyMsg("down"), keyMsg("enter"), keyMsg("esc"))
	require.False(t, m.IsOpen())
	assert.Equal(t, "2024-03-15 - ", m.Value())

	m, cmd := send(m, keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.Confirmed)
	assert.Empty(t, m.Result)
	assert.ErrorIs(t, m.Err(), ErrIncompleteRange)
	assert.Contains(t, m.View(), "range needs an end date")
}

func TestTypingThenOpen(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, ""))
	m, _ = send(m, keyMsg("2024-06-03"))
	assert.Equal(t, "2024-06-03", m.Value())

	m, _ = send(m, keyMsg("down"))
	require.True(t, m.IsOpen())
	assert.Contains(t, m.View(), "June 2024", "the panel opens on the typed month")
}

func TestOpen_RejectsUnparsableInput(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, ""))
	m, _ = send(m, keyMsg("2024-1"), keyMsg("down"))
	assert.False(t, m.IsOpen())
	assert.Error(t, m.Err())
}

func TestClickTrigger(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, "2024-03-10"))

	m, _ = send(m, click(3, 3))
	require.True(t, m.IsOpen(), "clicking the input opens")
	view := m.View()
	assert.Contains(t, view, "March 2024")
	assert.Len(t, strings.Split(view, "\n"), 24)

	m, _ = send(m, click(75, 20))
	assert.False(t, m.IsOpen(), "clicking elsewhere closes")
}

func TestFocusTrigger(t *testing.T) {
	opts := testOptions(ModeDate, "")
	opts.Config.Trigger = "focus"
	m := newTestModel(t, opts)
	assert.True(t, m.IsOpen(), "the focused input opens the picker")

	m, _ = send(m, keyMsg("tab"))
	assert.False(t, m.IsOpen())

	m, _ = send(m, keyMsg("tab"))
	assert.True(t, m.IsOpen())
}

func TestScrollWithCloseStrategy(t *testing.T) {
	opts := testOptions(ModeDate, "")
	opts.Config.Scroll = "close"
	m := newTestModel(t, opts)
	m, _ = send(m, keyMsg("down"))
	require.True(t, m.IsOpen())
	m.View()

	m, _ = send(m, ScrollMsg{})
	assert.False(t, m.IsOpen(), "scrolling closes the picker")

	m, _ = send(m, keyMsg("down"))
	assert.True(t, m.IsOpen())
	assert.Contains(t, m.View(), "March 2024")
}

func TestRangePick(t *testing.T) {
	m := newTestModel(t, testOptions(ModeRange, ""))
	m, _ = send(m, keyMsg("down"))
	require.True(t, m.IsOpen())

	m, cmd := send(m, keyMsg("enter"))
	assert.True(t, m.IsOpen(), "the start alone keeps the picker open")
	assert.Nil(t, cmd)
	assert.Equal(t, "2024-03-15 - ", m.Value())

	m, cmd = send(m, keyMsg("right"), keyMsg("right"), keyMsg("enter"))
	assert.False(t, m.IsOpen())
	assert.Equal(t, "2024-03-15 - 2024-03-17", m.Value())
	require.NotNil(t, cmd)
	assert.Equal(t, PickedMsg{Text: "2024-03-15 - 2024-03-17"}, cmd())

	m, _ = send(m, keyMsg("enter"))
	assert.True(t, m.Confirmed)
	assert.Equal(t, "2024-03-15 - 2024-03-17", m.Result)
}

func TestScrollWithRepositionStrategy(t *testing.T) {
	m := newTestModel(t, testOptions(ModeDate, ""))
	m, _ = send(m, keyMsg("down"))
	m.View()

	m, _ = send(m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.True(t, m.IsOpen())
}

func TestCtrlCDestroysPicker(t *testing.T) {
	m := newTestModel(t, testOptions(ModeRange, ""))
	m, _ = send(m, keyMsg("down"))
	m, cmd := send(m, keyMsg("ctrl+c"))
	assert.False(t, m.Confirmed)
	assert.Equal(t, picker.StateDestroyed, m.session.State())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar(ModeRange)
	s.SetWidth(100)
	s.Update("open", true)
	view := s.View()
	assert.Contains(t, view, "range · open")
	assert.Contains(t, view, "month")

	s.Update("closed", false)
	assert.Contains(t, s.View(), "confirm")
}
