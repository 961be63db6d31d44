package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/tidytask/internal/alert"
	"github.com/existflow/tidytask/internal/model"
)

// Color palette
var (
	// Status colors
	Pending    = lipgloss.Color("#FFFFFF")
	InProgress = lipgloss.Color("#FFB347") // Orange
	Completed  = lipgloss.Color("#95E1A3") // Green

	// Alert colors
	AlertError   = lipgloss.Color("#FF6B6B") // Red
	AlertWarning = lipgloss.Color("#FFE66D") // Yellow
	AlertSuccess = lipgloss.Color("#95E1A3") // Green
	AlertInfo    = lipgloss.Color("#4ECDC4") // Blue

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#4ECDC4")
)

// Styles
var (
	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			Width(20).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	// Task list
	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// List item
	ListItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ListItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	// Task item
	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetStatusStyle returns the style for a task status badge
func GetStatusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(Completed)
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(InProgress).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Pending)
	}
}

// FormatStatus returns a formatted status badge
func FormatStatus(status model.Status) string {
	return GetStatusStyle(status).Render(string(status))
}

// GetAlertStyle returns the style for an alert of type t
func GetAlertStyle(t alert.Type) lipgloss.Style {
	switch t {
	case alert.TypeError:
		return lipgloss.NewStyle().Foreground(AlertError).Bold(true)
	case alert.TypeWarning:
		return lipgloss.NewStyle().Foreground(AlertWarning)
	case alert.TypeSuccess:
		return lipgloss.NewStyle().Foreground(AlertSuccess)
	default:
		return lipgloss.NewStyle().Foreground(AlertInfo)
	}
}
