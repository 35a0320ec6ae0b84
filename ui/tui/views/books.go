package views

import (
	"readtrack/internal/output"
	"readtrack/ui/tui/state"
	"readtrack/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

const (
	bookCardWidth = 34
	readersIcon   = "👥 "
)

type BooksView struct{}

func (v BooksView) Render(s state.AppState, props ViewProps) string {
	books := output.BuildBooks(s.PopularBooks)

	cards := make([]string, 0, len(books.Cards))
	for _, c := range books.Cards {
		cards = append(cards, renderBookCard(c))
	}

	parts := []string{
		styles.SectionTitleStyle.Render(books.Title),
		styles.SubtitleStyle.Render(books.Subtitle),
	}
	if len(cards) > 0 {
		parts = append(parts, grid(cards, columns(props.Width)))
	}
	if props.ChartView != "" && len(cards) > 0 {
		parts = append(parts, props.ChartView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderBookCard(c output.BookCard) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.RankStyle.Render(c.Rank),
		styles.ValueStyle.Render(c.Title),
		styles.DetailStyle.Italic(true).Render(c.Author),
		"",
		c.Description,
		"",
		styles.ReadersStyle.Render(readersIcon+c.Readers),
	)
	return styles.CardStyle.Width(bookCardWidth).Render(body)
}

// columns returns how many book cards fit side by side.
func columns(width int) int {
	// border + margin on each side
	n := width / (bookCardWidth + 4)
	if n < 1 {
		return 1
	}
	return n
}

func grid(cells []string, cols int) string {
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
