package views

import (
	"readtrack/internal/output"
	"readtrack/ui/tui/state"
	"readtrack/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

const statCardWidth = 44

type DashboardView struct{}

func (v DashboardView) Render(s state.AppState, props ViewProps) string {
	if s.DashboardStats == nil {
		return ""
	}
	dashboard := output.BuildDashboard(*s.DashboardStats)

	var popularCol, readCol, topCol string

	if sec := dashboard.SectionByID(output.SectionPopularAuthor); sec != nil {
		popularCol = styles.HighlightCardStyle.Width(statCardWidth).Render(renderStat(sec))
	}
	if sec := dashboard.SectionByID(output.SectionBooksRead); sec != nil {
		readCol = styles.CardStyle.Width(statCardWidth).Render(renderStat(sec))
	}
	if sec := dashboard.SectionByID(output.SectionTopAuthors); sec != nil {
		topCol = styles.CardStyle.Width(statCardWidth*2 + 4).Render(renderTopAuthors(sec))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top, popularCol, readCol)
	if props.Width > 0 && props.Width < (statCardWidth+4)*2 {
		row1 = lipgloss.JoinVertical(lipgloss.Left, popularCol, readCol)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SectionTitleStyle.Render(dashboard.Title),
		styles.SubtitleStyle.Render(dashboard.Subtitle),
		row1,
		topCol,
	)
}

func sectionHeading(sec *output.Section) string {
	return lipgloss.NewStyle().Bold(true).Render(sec.Icon + " " + sec.Title)
}

func renderStat(sec *output.Section) string {
	lines := []string{sectionHeading(sec)}
	for _, item := range sec.Items {
		lines = append(lines,
			styles.ValueStyle.Render(item.Value),
			styles.DetailStyle.Render(item.Note),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTopAuthors(sec *output.Section) string {
	lines := []string{sectionHeading(sec)}
	if len(sec.Items) == 0 {
		lines = append(lines, styles.DetailStyle.Render(sec.Empty))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	for _, item := range sec.Items {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.RankStyle.Width(4).Render(item.Label),
			styles.ValueStyle.Render(item.Value),
			styles.DetailStyle.Render("  "+item.Note),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
