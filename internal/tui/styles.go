package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

var (
	colorReview  = lipgloss.Color("214") // orange
	colorUpdated = lipgloss.Color("33")  // blue
	colorMarked  = lipgloss.Color("46")  // green
	colorMuted   = lipgloss.Color("240") // gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			PaddingLeft(1).
			PaddingRight(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	repoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginTop(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Background(lipgloss.Color("237"))

	markStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMarked)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

func reasonLabel(r inbox.Reason) string {
	switch r {
	case inbox.ReasonReviewRequested:
		return "review "
	case inbox.ReasonUpdatedSinceInteraction:
		return "updated"
	default:
		return "?      "
	}
}

func reasonColor(r inbox.Reason) lipgloss.Color {
	switch r {
	case inbox.ReasonReviewRequested:
		return colorReview
	case inbox.ReasonUpdatedSinceInteraction:
		return colorUpdated
	default:
		return colorMuted
	}
}
