package tui

import (
	"context"
	"log/slog"
	"time"

	"readtrack/internal/collector"
	"readtrack/ui/tui/components"
	"readtrack/ui/tui/state"
	"readtrack/ui/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	ctx      context.Context
	provider collector.DataProvider
	state    state.AppState
	spinner  spinner.Model
	chart    *components.ReaderChart
	animTab  float64
	velocity float64 // Physics velocity
	spring   harmonica.Spring
	quitting bool
	width    int
	height   int
}

// Messages
type AnimateMsg time.Time

// DataLoadedMsg carries the outcome of one fetch cycle.
type DataLoadedMsg struct {
	Snapshot *collector.Snapshot
	Err      error
}

func InitialModel(ctx context.Context, provider collector.DataProvider) MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Frequency 12 with damping 0.9 settles quickly without overshoot.
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	return MainModel{
		ctx:      ctx,
		provider: provider,
		spinner:  s,
		chart:    components.NewReaderChart(60, 10),
		spring:   spring,
		state:    state.NewAppState(),
	}
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	return tea.Batch(
		m.spinner.Tick,
		fetchCmd(m.ctx, m.provider),
		animateCmd(),
	)
}

// Commands
func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func fetchCmd(ctx context.Context, p collector.DataProvider) tea.Cmd {
	return func() tea.Msg {
		snap, err := collector.Collect(ctx, p)
		return DataLoadedMsg{Snapshot: snap, Err: err}
	}
}

// refetch starts a new fetch cycle. A cycle already in flight is not
// cancelled; whichever DataLoadedMsg arrives last is what gets shown.
func (m *MainModel) refetch() tea.Cmd {
	m.state.BeginFetch()
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.provider))
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case DataLoadedMsg:
		return m.handleDataLoadedMsg(msg)

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r", "R":
		return m, m.refetch()
	}

	// Tabs only exist once data is on screen.
	if !m.state.Ready() {
		return m, nil
	}

	switch msg.String() {
	case "tab", "right", "l":
		m.state.NextTab()
	case "shift+tab", "left", "h":
		m.state.PrevTab()
	case "1":
		m.state.SetTab(state.TabBooks)
	case "2":
		m.state.SetTab(state.TabDashboard)
	}
	return m, nil
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.animTab, v = m.spring.Update(m.animTab, float64(m.state.ActiveTab), v)
	m.velocity = v
	return m, animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	newW := msg.Width - 10
	if newW > 10 {
		m.chart.Resize(newW, 10)
	}
	return m, nil
}

func (m *MainModel) handleDataLoadedMsg(msg DataLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Snapshot == nil {
		slog.Error("fetch cycle failed", "error", msg.Err)
		m.state.Fail()
		m.chart.SetCounts(nil)
		return m, nil
	}

	m.state.Commit(msg.Snapshot)

	counts := make([]int, len(msg.Snapshot.PopularBooks))
	for i, b := range msg.Snapshot.PopularBooks {
		counts[i] = b.ReaderCount
	}
	m.chart.SetCounts(counts)
	slog.Info("dashboard updated", "books", len(counts))
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if m.state.Err != "" && !m.state.Loading {
		if zone.Get(views.ZoneRetry).InBounds(msg) {
			return m, m.refetch()
		}
		return m, nil
	}

	if m.state.Ready() {
		for i := 0; i < state.TabCount; i++ {
			t := state.Tab(i)
			if zone.Get(views.TabZoneID(t)).InBounds(msg) {
				m.state.SetTab(t)
				return m, nil
			}
		}
	}
	return m, nil
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch {
	case m.state.Loading:
		return views.RenderLoading(m.width, m.height, m.spinner.View())
	case m.state.Err != "":
		return views.RenderError(m.state, m.width, m.height)
	default:
		return views.RenderTabs(m.state, m.width, m.animTab, m.chart.View())
	}
}

func Start(ctx context.Context, provider collector.DataProvider) error {
	m := InitialModel(ctx, provider)
	p := tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
