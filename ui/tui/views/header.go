package views

import (
	"strings"

	"readtrack/ui/tui/state"
	"readtrack/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	AppTitle    = "📚 Book Reading Tracker"
	AppTagline  = "Discover, track, and explore your reading journey"
	tabWidth    = 22
	helpBar     = "[Tab/←/→] Switch • [1/2] Jump • [R] Refresh • [Q] Quit"
	indicatorCh = "━"
)

var tabLabels = [state.TabCount]string{
	state.TabBooks:     "📖 Popular Books",
	state.TabDashboard: "📊 Dashboard",
}

type HeaderView struct{}

// Render draws the title bar and the tab strip. The indicator under the tabs
// slides with props.AnimTab, which the controller springs towards ActiveTab.
func (v HeaderView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			AppTitle,
			lipgloss.NewStyle().Bold(false).Render(AppTagline),
		),
	)

	tabs := make([]string, 0, state.TabCount)
	for i, label := range tabLabels {
		t := state.Tab(i)
		style := lipgloss.NewStyle().Width(tabWidth).Align(lipgloss.Center)
		if t == s.ActiveTab {
			style = style.Bold(true).Foreground(styles.BrandColor)
		} else {
			style = style.Foreground(styles.MutedColor)
		}
		tabs = append(tabs, zone.Mark(TabZoneID(t), style.Render(label)))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(strip),
		lipgloss.NewStyle().PaddingLeft(2).Render(indicator(props.AnimTab)),
	)
}

func indicator(anim float64) string {
	offset := int(anim*tabWidth + 0.5)
	maxOffset := tabWidth * (state.TabCount - 1)
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	bar := lipgloss.NewStyle().Foreground(styles.BrandColor).Render(strings.Repeat(indicatorCh, tabWidth))
	return strings.Repeat(" ", offset) + bar
}

func renderHelp() string {
	return styles.HelpStyle.Render("\n" + helpBar)
}
