package views

import (
	"os"
	"strings"
	"testing"

	"readtrack/internal/models"
	"readtrack/internal/output"
	"readtrack/ui/tui/state"

	zone "github.com/lrstanley/bubblezone"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func loadedState() state.AppState {
	s := state.NewAppState()
	s.Loading = false
	s.PopularBooks = []models.Book{
		{ID: 1, Title: "Dune", Description: "Spice.", Author: models.BookAuthor{Name: "Frank Herbert"}, ReaderCount: 1},
		{ID: 2, Title: "Emma", Author: models.BookAuthor{Name: "Jane Austen"}, ReaderCount: 3},
	}
	s.DashboardStats = &models.DashboardStats{
		MostPopularAuthor: models.Author{Name: "Jane Austen", TotalReaders: 3},
		UserBooksRead:     0,
		UserTopAuthors:    []models.Author{},
	}
	return s
}

func TestRenderBooks(t *testing.T) {
	out := RenderBooks(loadedState(), 120, "")

	for _, want := range []string{output.BooksTitle, output.BooksSubtitle, "#1", "#2", "Dune", "by Frank Herbert", "1 reader", "3 readers"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected books view to contain %q", want)
		}
	}
	if strings.Index(out, "Dune") > strings.Index(out, "Emma") {
		t.Error("Expected input order to be preserved")
	}
}

func TestRenderBooksEmpty(t *testing.T) {
	s := loadedState()
	s.PopularBooks = nil
	out := RenderBooks(s, 80, "chart")

	if !strings.Contains(out, output.BooksTitle) {
		t.Error("Expected header on empty list")
	}
	if strings.Contains(out, "#1") || strings.Contains(out, "chart") {
		t.Error("Expected no cards and no chart for empty list")
	}
}

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(loadedState(), 120)

	for _, want := range []string{
		output.DashboardTitle,
		"Most Popular Author",
		"3 total readers across all books",
		output.MsgStartReading,
		output.MsgNoHistory,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected dashboard to contain %q", want)
		}
	}
}

func TestRenderDashboardTopAuthors(t *testing.T) {
	s := loadedState()
	s.DashboardStats.UserBooksRead = 2
	s.DashboardStats.UserTopAuthors = []models.Author{{ID: 2, Name: "Jane Austen", TotalReaders: 1}}

	out := RenderDashboard(s, 120)
	for _, want := range []string{output.MsgKeepReading, "#1", "1 book read"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected dashboard to contain %q", want)
		}
	}
	if strings.Contains(out, output.MsgNoHistory) {
		t.Error("Expected no empty-history message")
	}
}

func TestRenderTabsSwitchesBody(t *testing.T) {
	s := loadedState()

	books := RenderTabs(s, 120, 0, "")
	if !strings.Contains(books, AppTitle) || !strings.Contains(books, output.BooksTitle) {
		t.Error("Expected header and books tab")
	}
	if strings.Contains(books, output.DashboardTitle) {
		t.Error("Expected dashboard to be hidden on books tab")
	}

	s.ActiveTab = state.TabDashboard
	dash := RenderTabs(s, 120, 1, "")
	if !strings.Contains(dash, output.DashboardTitle) || strings.Contains(dash, output.BooksTitle) {
		t.Error("Expected only the dashboard body on dashboard tab")
	}
}

func TestRenderStatusViews(t *testing.T) {
	loading := RenderLoading(0, 0, "*")
	if !strings.Contains(loading, LoadingText) {
		t.Errorf("Expected loading text, got %q", loading)
	}

	s := state.NewAppState()
	s.Fail()
	errView := RenderError(s, 0, 0)
	for _, want := range []string{ErrorTitle, models.FetchFailedMessage, RetryLabel} {
		if !strings.Contains(errView, want) {
			t.Errorf("Expected error view to contain %q", want)
		}
	}
}

func TestIndicatorClamps(t *testing.T) {
	if strings.HasPrefix(indicator(-1), " ") {
		t.Error("Expected no offset below zero")
	}
	far := indicator(10)
	if got := strings.Count(far[:strings.Index(far, indicatorCh)], " "); got > tabWidth {
		t.Errorf("Expected offset clamped to %d, got %d", tabWidth, got)
	}
}
