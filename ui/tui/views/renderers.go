package views

import (
	"readtrack/ui/tui/state"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

func RenderLoading(width, height int, spinnerView string) string {
	v := LoadingView{}
	return v.Render(state.AppState{}, ViewProps{
		Width:       width,
		Height:      height,
		SpinnerView: spinnerView,
	})
}

func RenderError(s state.AppState, width, height int) string {
	v := ErrorView{}
	return zone.Scan(v.Render(s, ViewProps{Width: width, Height: height}))
}

func RenderBooks(s state.AppState, width int, chartView string) string {
	v := BooksView{}
	return v.Render(s, ViewProps{Width: width, ChartView: chartView})
}

func RenderDashboard(s state.AppState, width int) string {
	v := DashboardView{}
	return v.Render(s, ViewProps{Width: width})
}

// RenderTabs draws the header, the tab strip and whichever tab is active.
func RenderTabs(s state.AppState, width int, animTab float64, chartView string) string {
	header := HeaderView{}.Render(s, ViewProps{Width: width, AnimTab: animTab})

	var body string
	switch s.ActiveTab {
	case state.TabDashboard:
		body = RenderDashboard(s, width)
	default:
		body = RenderBooks(s, width, chartView)
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, renderHelp()))
}
