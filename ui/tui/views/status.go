package views

import (
	"readtrack/ui/tui/state"
	"readtrack/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	LoadingText  = "Loading your reading data..."
	ErrorTitle   = "⚠️ Connection Error"
	RetryLabel   = "Try Again"
	statusFooter = "[R] Try again • [Q] Quit"
)

type LoadingView struct{}

func (v LoadingView) Render(s state.AppState, props ViewProps) string {
	content := lipgloss.JoinHorizontal(lipgloss.Left, props.SpinnerView, " ", LoadingText)
	return place(props, content)
}

type ErrorView struct{}

func (v ErrorView) Render(s state.AppState, props ViewProps) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(styles.Warning).Render(ErrorTitle),
		"",
		s.Err,
		"",
		zone.Mark(ZoneRetry, styles.ButtonStyle.Render(RetryLabel)),
		styles.HelpStyle.Render("\n"+statusFooter),
	)
	return place(props, content)
}

func place(props ViewProps, content string) string {
	if props.Width == 0 || props.Height == 0 {
		return content
	}
	return lipgloss.Place(props.Width, props.Height, lipgloss.Center, lipgloss.Center, content)
}
