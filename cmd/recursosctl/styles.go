package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
)

var (
	colorNational = lipgloss.Color("#C60B1E")
	colorOnline   = lipgloss.Color("#1E88E5")
	colorRegion   = lipgloss.Color("#2E7D32")
	colorLocal    = lipgloss.Color("#6D4C41")
	colorMuted    = lipgloss.Color("#757575")
	colorUrgent   = lipgloss.Color("#D32F2F")
	colorBorder   = lipgloss.Color("#BDBDBD")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(72)

	urgentCardStyle = cardStyle.BorderForeground(colorUrgent)

	nameStyle    = lipgloss.NewStyle().Bold(true)
	typeStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorUrgent).Bold(true)

	tagStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// scopeStyle picks the tag color for a scope kind.
func scopeStyle(kind string) lipgloss.Style {
	switch kind {
	case presentation.KindNational:
		return tagStyle.Foreground(colorNational)
	case presentation.KindOnline:
		return tagStyle.Foreground(colorOnline)
	case presentation.KindRegion:
		return tagStyle.Foreground(colorRegion)
	default:
		return tagStyle.Foreground(colorLocal)
	}
}
