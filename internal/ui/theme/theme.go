package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/planner"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Tables
var (
	TableHeader = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	TableRule = lipgloss.NewStyle().
			Foreground(Border)

	Highlight = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Progress bars
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

var statusStyles = map[planner.SessionStatus]lipgloss.Style{
	planner.StatusScheduled:   lipgloss.NewStyle().Foreground(Text),
	planner.StatusInProgress:  lipgloss.NewStyle().Foreground(Accent).Bold(true),
	planner.StatusCompleted:   lipgloss.NewStyle().Foreground(Success),
	planner.StatusMissed:      lipgloss.NewStyle().Foreground(Error),
	planner.StatusRescheduled: lipgloss.NewStyle().Foreground(Primary),
}

// Status renders a session status in its color.
func Status(s planner.SessionStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		style = Body
	}
	return style.Render(string(s))
}
