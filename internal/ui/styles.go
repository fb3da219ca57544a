package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/todo"
)

const (
	colorHigh   = "#EF4444" // Red
	colorMedium = "#F59E0B" // Amber
	colorLow    = "#10B981" // Green
	colorOther  = "#60A5FA" // Blue
	colorMuted  = "#6B7280" // Gray
	colorTitle  = "#7C3AED" // Violet
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHigh))

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHigh)),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(colorMedium)),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorLow)),
	}
	otherPriorityStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(colorOther))
)

// priorityStyle returns the style used to render a priority label.
func priorityStyle(p todo.Priority) lipgloss.Style {
	if s, ok := priorityStyles[p]; ok {
		return s
	}
	return otherPriorityStyle
}
