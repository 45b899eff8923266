package tui

import "go.trai.ch/swatch/internal/app"

// MsgReportUpdated is sent when a reloaded theme replaced the one on screen.
type MsgReportUpdated struct {
	Report *app.Report
}

// MsgUpdatesEnded is sent when no more reloads will arrive.
type MsgUpdatesEnded struct{}
