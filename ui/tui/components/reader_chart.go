package components

import (
	"readtrack/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReaderChart plots reader counts against popularity rank.
type ReaderChart struct {
	Chart  linechart.Model
	Counts []float64
	Width  int
	Height int
}

func NewReaderChart(width, height int) *ReaderChart {
	return &ReaderChart{
		Chart:  linechart.New(width, height, 0, 1, 0, 1),
		Width:  width,
		Height: height,
	}
}

func (c *ReaderChart) Init() tea.Cmd {
	return nil
}

func (c *ReaderChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

// SetCounts replaces the plotted series and rescales both axes to fit it.
func (c *ReaderChart) SetCounts(counts []int) {
	c.Counts = make([]float64, len(counts))
	maxY := 1.0
	for i, n := range counts {
		c.Counts[i] = float64(n)
		if c.Counts[i] > maxY {
			maxY = c.Counts[i]
		}
	}
	maxX := float64(len(counts) - 1)
	if maxX < 1 {
		maxX = 1
	}
	// width, height, minX, maxX, minY, maxY
	c.Chart = linechart.New(c.Width, c.Height, 0, maxX, 0, maxY)
}

func (c *ReaderChart) Resize(w, h int) {
	c.Width = w
	c.Height = h
	c.Chart.Resize(w, h)
}

func (c *ReaderChart) Empty() bool {
	return len(c.Counts) == 0
}

func (c *ReaderChart) View() string {
	if c.Empty() {
		return ""
	}

	c.Chart.Clear()
	switch len(c.Counts) {
	case 1:
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: 0, Y: c.Counts[0]},
			canvas.Float64Point{X: 1, Y: c.Counts[0]},
		)
	default:
		for i := 0; i < len(c.Counts)-1; i++ {
			c.Chart.DrawBrailleLine(
				canvas.Float64Point{X: float64(i), Y: c.Counts[i]},
				canvas.Float64Point{X: float64(i + 1), Y: c.Counts[i+1]},
			)
		}
	}
	c.Chart.DrawXYAxisAndLabel()

	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("Readers by Rank"),
			c.Chart.View(),
		),
	)
}
