package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vassapi/internal/version"
)

// Application branding constants
const (
	AppName   = "VASSCTL DASHBOARD"
	GitHubURL = "github.com/muurk/vassapi"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	DefaultWidth     = 80
	DefaultHeight    = 20
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	BorderColor = lipgloss.Color("#7D56F4")
)

var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	OnStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	OffStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// renderField renders one "label  value" row
func renderField(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}

// renderSwitch renders a boolean as a coloured on/off badge
func renderSwitch(label string, on bool) string {
	if on {
		return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), OnStyle.Render("● on"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), OffStyle.Render("○ muted"))
}

// renderContainer wraps content in the bordered application frame with a
// header line and a footer carrying help text.
func renderContainer(content, footer string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(AppName+" v"+version.Version),
		" ",
		lipgloss.NewStyle().Foreground(SubtleColor).Render(GitHubURL),
	)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(header),
		lipgloss.NewStyle().Width(width-4).Padding(1, 1).Render(content),
		footerStyle.Render(footer),
	)

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2)

	if height > 0 {
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, frame.Render(inner))
	}
	return frame.Render(inner)
}
