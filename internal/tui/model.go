package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/swatch/internal/app"
	"go.trai.ch/swatch/internal/ui/style"
)

// listWidth is the width of the component column, separator included.
const listWidth = 24

type styles struct {
	selected lipgloss.Style
	title    lipgloss.Style
	slot     lipgloss.Style
	muted    lipgloss.Style
	reloaded lipgloss.Style
}

// Model is the Bubble Tea model of the theme browser. The left column lists
// components; the right pane shows the selected component's default resolution.
type Model struct {
	report   *app.Report
	updates  <-chan *app.Report
	cursor   int
	reloads  int
	width    int
	height   int
	viewport viewport.Model
	styles   styles
}

// NewModel creates a browser for report. Reports received on updates replace
// the current one; updates may be nil.
func NewModel(report *app.Report, updates <-chan *app.Report) *Model {
	m := &Model{
		report:   report,
		updates:  updates,
		viewport: viewport.New(0, 0),
		styles: styles{
			selected: lipgloss.NewStyle().Bold(true).Foreground(style.Iris),
			title:    lipgloss.NewStyle().Bold(true),
			slot:     lipgloss.NewStyle().Foreground(style.Green),
			muted:    lipgloss.NewStyle().Foreground(style.Slate),
			reloaded: lipgloss.NewStyle().Foreground(style.Yellow),
		},
	}
	m.refresh()
	return m
}

// Init starts listening for reloaded reports.
func (m *Model) Init() tea.Cmd {
	return WaitForReport(m.updates)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case MsgReportUpdated:
		return m.handleReportUpdated(msg)
	case MsgUpdatesEnded:
		m.updates = nil
		return m, nil
	}
	return m, nil
}

// Selected returns the name of the highlighted component, or "" for an empty theme.
func (m *Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.report.Components) {
		return ""
	}
	return m.report.Components[m.cursor].Name
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
		return m, nil
	case "down", "j":
		m.move(1)
		return m, nil
	case "home", "g":
		m.move(-len(m.report.Components))
		return m, nil
	case "end", "G":
		m.move(len(m.report.Components))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = max(msg.Width-listWidth, 0)
	m.viewport.Height = max(msg.Height-1, 0)
	m.refresh()
	return m, nil
}

// handleReportUpdated swaps in the new report and keeps the selection on the
// same component when it still exists.
func (m *Model) handleReportUpdated(msg MsgReportUpdated) (tea.Model, tea.Cmd) {
	selected := m.Selected()
	m.report = msg.Report
	m.reloads++
	m.cursor = 0
	for i, c := range m.report.Components {
		if c.Name == selected {
			m.cursor = i
			break
		}
	}
	m.refresh()
	return m, WaitForReport(m.updates)
}

func (m *Model) move(delta int) {
	if len(m.report.Components) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.report.Components)-1)
	m.refresh()
}

// refresh renders the selected component into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.details())
	m.viewport.GotoTop()
}

func (m *Model) details() string {
	if len(m.report.Components) == 0 {
		return m.styles.muted.Render("theme has no component overrides")
	}
	c := m.report.Components[m.cursor]

	var s strings.Builder
	s.WriteString(m.styles.title.Render(c.Name) + "\n")
	if len(c.Defaults) > 0 {
		s.WriteString(m.styles.muted.Render("defaults: ") + c.Defaults.String() + "\n")
	}
	if len(c.Axes) > 0 {
		s.WriteString(m.styles.muted.Render("axes: ") + strings.Join(c.Axes, ", ") + "\n")
	}
	if c.Rules > 0 {
		s.WriteString(m.styles.muted.Render(fmt.Sprintf("compound rules: %d", c.Rules)) + "\n")
	}
	s.WriteString("\n")
	for _, slot := range c.Slots {
		classes := slot.Classes.String()
		if classes == "" {
			classes = m.styles.muted.Render("(none)")
		}
		s.WriteString(m.styles.slot.Render(slot.Name+":") + " " + classes + "\n")
	}
	return s.String()
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var list strings.Builder

	// Keep the cursor on screen when the list is taller than the window.
	start := 0
	rows := len(m.report.Components)
	if m.height > 1 && rows > m.height-1 {
		start = min(max(m.cursor-(m.height-2), 0), rows-(m.height-1))
		rows = start + m.height - 1
	}
	for i := start; i < rows; i++ {
		name := m.report.Components[i].Name
		if i == m.cursor {
			list.WriteString(m.styles.selected.Render("> "+name) + "\n")
			continue
		}
		list.WriteString("  " + name + "\n")
	}

	left := lipgloss.NewStyle().Width(listWidth).Render(strings.TrimSuffix(list.String(), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.viewport.View())

	return body + "\n" + m.status()
}

func (m *Model) status() string {
	src := m.report.Source
	line := m.styles.muted.Render(fmt.Sprintf("%s %s  ↑/↓ select  q quit", src.Path, src.Fingerprint))
	if m.reloads > 0 {
		line += "  " + m.styles.reloaded.Render(fmt.Sprintf("%s reloaded %d×", style.Check, m.reloads))
	}
	return line
}
