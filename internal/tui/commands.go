// Package tui provides an interactive terminal browser for a loaded theme.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/swatch/internal/app"
)

// WaitForReport returns a Bubble Tea command that reads the next report from updates.
// It returns MsgReportUpdated for every report and MsgUpdatesEnded once updates is closed.
// A nil channel yields no command.
func WaitForReport(updates <-chan *app.Report) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		report, ok := <-updates
		if !ok {
			return MsgUpdatesEnded{}
		}
		return MsgReportUpdated{Report: report}
	}
}
