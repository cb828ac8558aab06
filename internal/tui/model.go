// Package tui provides the Bubble Tea essay editor. It owns no editor state
// of its own beyond the textarea widget; every key press becomes a ui.Event
// and every ui.Command runs as a tea.Cmd.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"essaydesk/internal/ui"
)

// Key bindings outside the textarea.
const (
	keySubmit         = "ctrl+r"
	keySave           = "ctrl+s"
	keyDarkMode       = "ctrl+t"
	keyStopwatchStart = "f2"
	keyStopwatchStop  = "f3"
	keyStopwatchReset = "f4"
)

const appTitle = "Essay Checker"

// eventMsg carries the result of a ui.Command back into Update.
type eventMsg struct{ event ui.Event }

// Model implements the Bubble Tea editor UI.
type Model struct {
	ctx    context.Context
	ctrl   *ui.Controller
	editor textarea.Model

	width  int
	height int
}

// NewModel wraps ctrl. Commands started by the model stop when ctx ends.
func NewModel(ctx context.Context, ctrl *ui.Controller) *Model {
	ed := textarea.New()
	ed.Placeholder = "Paste or type your essay here..."
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.SetHeight(12)
	ed.SetValue(ctrl.Text())
	ed.Focus()
	return &Model{ctx: ctx, ctrl: ctrl, editor: ed}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.dispatch(ui.Loaded{}))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width-4, 20))
		return m, nil
	case eventMsg:
		cmd := m.dispatch(msg.event)
		if _, ok := msg.event.(ui.SubmitCompleted); ok && m.editor.Value() != m.ctrl.Text() {
			m.editor.SetValue(m.ctrl.Text())
		}
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.ctrl.Alert() != "" {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			return m.dispatch(ui.AlertDismissed{})
		}
		return nil
	}

	switch msg.String() {
	case keySubmit:
		return m.dispatch(ui.SubmitRequested{})
	case keySave:
		return m.dispatch(ui.SaveRequested{})
	case keyDarkMode:
		return m.dispatch(ui.DarkModeToggled{})
	case keyStopwatchStart:
		return m.dispatch(ui.StopwatchStarted{})
	case keyStopwatchStop:
		return m.dispatch(ui.StopwatchStopped{})
	case keyStopwatchReset:
		return m.dispatch(ui.StopwatchReset{})
	}

	var cmds []tea.Cmd
	if msg.Type == tea.KeyBackspace {
		cmds = append(cmds, m.dispatch(ui.KeyPressed{Key: ui.KeyBackspace}))
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	if after := m.editor.Value(); after != before {
		cmds = append(cmds, m.dispatch(ui.TextChanged{Text: after}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) dispatch(ev ui.Event) tea.Cmd {
	return m.run(m.ctrl.Dispatch(ev))
}

// run adapts a ui.Command to Bubble Tea. A command that yields no event
// (cancelled timers) produces no message.
func (m *Model) run(cmd ui.Command) tea.Cmd {
	if cmd == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		ev := cmd(ctx)
		if ev == nil {
			return nil
		}
		return eventMsg{event: ev}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	th := themeFor(m.ctrl.DarkMode())
	c := m.ctrl

	sections := []string{
		th.title.Render(appTitle) + "  " + th.muted.Render(c.ClockText()),
		m.renderStopwatch(th),
		m.editor.View(),
		th.muted.Render(renderStats(c)),
		renderButton(th, keySubmit, c.SubmitLabel(), c.ButtonsDisabled()) + " " +
			renderButton(th, keySave, c.SaveLabel(), c.ButtonsDisabled()),
	}
	if msg := c.InlineError(); msg != "" {
		sections = append(sections, th.err.Render(msg))
	}
	if msg := c.NavigationError(); msg != "" {
		sections = append(sections, th.err.Render("Submission failed: "+msg))
	}
	if c.Corrected() != "" {
		sections = append(sections, th.heading.Render("Corrected Text"), th.panel.Render(c.Corrected()))
	}
	if msg := c.Alert(); msg != "" {
		sections = append(sections, th.alert.Render(msg+"\n\n"+"Press Enter to continue"))
	}
	sections = append(sections, th.muted.Render("ctrl+t dark mode • ctrl+c quit"))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return th.base.Render(body)
	}
	return th.base.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) renderStopwatch(th theme) string {
	sw := m.ctrl.Stopwatch()
	controls := make([]string, 0, 3)
	if sw.StartVisible() {
		controls = append(controls, "[F2 Start]")
	}
	if sw.StopVisible() {
		controls = append(controls, "[F3 Stop]")
	}
	controls = append(controls, "[F4 Reset]")
	return "Stopwatch " + th.title.Render(sw.Text()) + " " + th.muted.Render(strings.Join(controls, " "))
}

func renderStats(c *ui.Controller) string {
	s := c.Stats()
	return fmt.Sprintf("Words: %d  Paragraphs: %d  Backspaces: %d", s.WordCount, s.ParagraphCount, s.BackspaceCount)
}

func renderButton(th theme, key, label string, disabled bool) string {
	style := th.button
	if disabled {
		style = th.buttonDisabled
	}
	return style.Render(fmt.Sprintf("%s (%s)", label, key))
}
