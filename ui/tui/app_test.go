package tui

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"readtrack/internal/collector"
	"readtrack/internal/models"
	"readtrack/ui/tui/state"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// MockDataProvider counts every call that reaches the fetch layer.
type MockDataProvider struct {
	Err   error
	calls atomic.Int32
}

func (m *MockDataProvider) PopularBooks(ctx context.Context) ([]models.Book, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return []models.Book{
		{ID: 1, Title: "Dune", Author: models.BookAuthor{Name: "Frank Herbert"}, ReaderCount: 4},
		{ID: 2, Title: "Emma", Author: models.BookAuthor{Name: "Jane Austen"}, ReaderCount: 1},
	}, nil
}

func (m *MockDataProvider) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.DashboardStats{
		MostPopularAuthor: models.Author{ID: 1, Name: "Frank Herbert", TotalReaders: 4},
		UserBooksRead:     1,
		UserTopAuthors:    []models.Author{{ID: 1, Name: "Frank Herbert", TotalReaders: 1}},
	}, nil
}

// runCmd executes cmd and any batched commands, returning the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func loadedMsg(t *testing.T, cmd tea.Cmd) DataLoadedMsg {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if dl, ok := msg.(DataLoadedMsg); ok {
			return dl
		}
	}
	t.Fatal("Expected the command to run a fetch cycle")
	return DataLoadedMsg{}
}

func loadedModel(t *testing.T, provider *MockDataProvider) *MainModel {
	t.Helper()
	model := InitialModel(context.Background(), provider)
	msg := loadedMsg(t, fetchCmd(model.ctx, provider))
	updatedModel, _ := model.Update(msg)
	return updatedModel.(*MainModel)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialState(t *testing.T) {
	model := InitialModel(context.Background(), &MockDataProvider{})

	if !model.state.Loading {
		t.Error("Expected Loading to be true before the first cycle completes")
	}
	if model.state.Err != "" || model.state.DashboardStats != nil {
		t.Errorf("Expected empty state, got %+v", model.state)
	}
	if model.state.ActiveTab != state.TabBooks {
		t.Errorf("Expected books tab, got %v", model.state.ActiveTab)
	}
}

func TestSuccessfulCycle(t *testing.T) {
	provider := &MockDataProvider{}
	m := loadedModel(t, provider)

	if m.state.Loading || m.state.Err != "" {
		t.Errorf("Expected loaded state without error, got %+v", m.state)
	}
	if len(m.state.PopularBooks) != 2 || m.state.DashboardStats == nil {
		t.Fatal("Expected both data fields to be committed")
	}
	if m.chart.Empty() {
		t.Error("Expected reader chart to be populated")
	}
	if provider.calls.Load() != 2 {
		t.Errorf("Expected one call per endpoint, got %d", provider.calls.Load())
	}
}

func TestFailedCycle(t *testing.T) {
	provider := &MockDataProvider{}
	m := loadedModel(t, provider)

	// A later failure wipes what the earlier success committed.
	provider.Err = errors.New("connection refused")
	cmd := m.refetch()
	if !m.state.Loading {
		t.Error("Expected Loading while a retry is in flight")
	}
	updatedModel, _ := m.Update(loadedMsg(t, cmd))
	m = updatedModel.(*MainModel)

	if m.state.Err != models.FetchFailedMessage {
		t.Errorf("Expected fixed error message, got %q", m.state.Err)
	}
	if m.state.Loading || m.state.PopularBooks != nil || m.state.DashboardStats != nil {
		t.Errorf("Expected cleared data after failure, got %+v", m.state)
	}

	// Failing again changes nothing.
	updatedModel, _ = m.Update(DataLoadedMsg{Err: provider.Err})
	m = updatedModel.(*MainModel)
	if m.state.Err != models.FetchFailedMessage || m.state.Loading {
		t.Errorf("Expected idempotent failure, got %+v", m.state)
	}
}

func TestRetryKeyRecovers(t *testing.T) {
	provider := &MockDataProvider{Err: errors.New("down")}
	model := InitialModel(context.Background(), provider)
	updatedModel, _ := model.Update(loadedMsg(t, fetchCmd(model.ctx, provider)))
	m := updatedModel.(*MainModel)
	if m.state.Err == "" {
		t.Fatal("Expected initial failure")
	}

	provider.Err = nil
	updatedModel, cmd := m.Update(key("r"))
	m = updatedModel.(*MainModel)
	if !m.state.Loading {
		t.Error("Expected Loading after pressing r")
	}

	updatedModel, _ = m.Update(loadedMsg(t, cmd))
	m = updatedModel.(*MainModel)
	if m.state.Err != "" || m.state.DashboardStats == nil {
		t.Errorf("Expected recovery after retry, got %+v", m.state)
	}
}

func TestTabSwitchDoesNotFetch(t *testing.T) {
	provider := &MockDataProvider{}
	m := loadedModel(t, provider)
	before := provider.calls.Load()

	tests := []struct {
		msg  tea.KeyMsg
		want state.Tab
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, state.TabDashboard},
		{tea.KeyMsg{Type: tea.KeyTab}, state.TabBooks},
		{tea.KeyMsg{Type: tea.KeyRight}, state.TabDashboard},
		{tea.KeyMsg{Type: tea.KeyLeft}, state.TabBooks},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, state.TabDashboard},
		{key("1"), state.TabBooks},
		{key("2"), state.TabDashboard},
		{key("h"), state.TabBooks},
		{key("l"), state.TabDashboard},
	}

	for _, tt := range tests {
		updatedModel, cmd := m.Update(tt.msg)
		m = updatedModel.(*MainModel)
		if m.state.ActiveTab != tt.want {
			t.Errorf("After %q expected tab %v, got %v", tt.msg.String(), tt.want, m.state.ActiveTab)
		}
		runCmd(cmd)
	}

	if got := provider.calls.Load(); got != before {
		t.Errorf("Expected no fetch on tab switch, calls went from %d to %d", before, got)
	}
	if m.state.DashboardStats == nil {
		t.Error("Expected data to survive tab switches")
	}
}

func TestTabKeysIgnoredWhileLoading(t *testing.T) {
	model := InitialModel(context.Background(), &MockDataProvider{})
	updatedModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := updatedModel.(*MainModel)

	if m.state.ActiveTab != state.TabBooks {
		t.Errorf("Expected tab to stay on books while loading, got %v", m.state.ActiveTab)
	}
}

func TestLastMessageWins(t *testing.T) {
	provider := &MockDataProvider{}
	m := loadedModel(t, provider)

	// Two cycles overlap; the failure lands after the success.
	m.refetch()
	m.refetch()
	updatedModel, _ := m.Update(loadedMsg(t, fetchCmd(m.ctx, provider)))
	m = updatedModel.(*MainModel)
	updatedModel, _ = m.Update(DataLoadedMsg{Err: errors.New("late failure")})
	m = updatedModel.(*MainModel)

	if m.state.Err == "" {
		t.Error("Expected the later failure to be shown")
	}
}

func TestTabAnimation(t *testing.T) {
	m := loadedModel(t, &MockDataProvider{})
	m.state.SetTab(state.TabDashboard)

	animateMsg := AnimateMsg(time.Now())
	updatedModel, _ := m.Update(animateMsg)
	m = updatedModel.(*MainModel)

	if m.animTab <= 0 {
		t.Errorf("Expected animTab to move after a frame, got %f", m.animTab)
	}
	if m.animTab >= 1.0 {
		t.Errorf("Expected animTab to not reach target immediately, got %f", m.animTab)
	}

	prev := m.animTab
	updatedModel, _ = m.Update(animateMsg)
	m = updatedModel.(*MainModel)
	if m.animTab <= prev {
		t.Errorf("Expected animTab to keep increasing, got %f (prev %f)", m.animTab, prev)
	}
}

func TestViewPerState(t *testing.T) {
	provider := &MockDataProvider{}
	model := InitialModel(context.Background(), provider)
	if model.View() == "" {
		t.Error("Expected loading view")
	}

	m := loadedModel(t, provider)
	if m.View() == "" {
		t.Error("Expected tab view")
	}

	updatedModel, cmd := m.Update(key("q"))
	m = updatedModel.(*MainModel)
	if cmd == nil || m.View() != "Bye!\n" {
		t.Error("Expected quit")
	}
}

var _ collector.DataProvider = (*MockDataProvider)(nil)
