package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#d63384")
	periodColor  = lipgloss.Color("#e53935")
	ovulateColor = lipgloss.Color("#2196F3")
	mutedColor   = lipgloss.Color("#8a8f98")
	warningColor = lipgloss.Color("#FFC107")
	successColor = lipgloss.Color("#8BC34A")
)

// styles binds every style to the output writer's renderer so piped
// output and tests stay free of escape codes.
type styles struct {
	title     lipgloss.Style
	heading   lipgloss.Style
	label     lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errorText lipgloss.Style
	period    lipgloss.Style
	ovulation lipgloss.Style
	today     lipgloss.Style
	box       lipgloss.Style
}

func newStyles(out io.Writer) styles {
	renderer := lipgloss.NewRenderer(out)
	return styles{
		title:     renderer.NewStyle().Bold(true).Foreground(accentColor),
		heading:   renderer.NewStyle().Bold(true).Underline(true),
		label:     renderer.NewStyle().Foreground(mutedColor).Width(22),
		muted:     renderer.NewStyle().Foreground(mutedColor),
		success:   renderer.NewStyle().Foreground(successColor),
		warning:   renderer.NewStyle().Foreground(warningColor),
		errorText: renderer.NewStyle().Foreground(periodColor),
		period:    renderer.NewStyle().Foreground(periodColor).Bold(true),
		ovulation: renderer.NewStyle().Foreground(ovulateColor).Bold(true),
		today:     renderer.NewStyle().Reverse(true),
		box: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1),
	}
}
