package state

import (
	"time"

	"readtrack/internal/collector"
	"readtrack/internal/models"
)

type Tab int

const (
	TabBooks Tab = iota
	TabDashboard
)

// TabCount is the number of selectable tabs.
const TabCount = 2

func (t Tab) String() string {
	switch t {
	case TabBooks:
		return "books"
	case TabDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// AppState holds what the dashboard currently shows. PopularBooks and
// DashboardStats are only ever replaced together.
type AppState struct {
	ActiveTab      Tab
	Loading        bool
	Err            string
	PopularBooks   []models.Book
	DashboardStats *models.DashboardStats
	LastUpdate     time.Time
}

// NewAppState returns the state of a dashboard that has just started its first fetch.
func NewAppState() AppState {
	return AppState{
		ActiveTab: TabBooks,
		Loading:   true,
	}
}

func (s *AppState) BeginFetch() {
	s.Loading = true
}

// Commit stores a completed fetch and clears any previous error.
func (s *AppState) Commit(snap *collector.Snapshot) {
	s.PopularBooks = snap.PopularBooks
	s.DashboardStats = snap.DashboardStats
	s.LastUpdate = snap.FetchedAt
	s.Err = ""
	s.Loading = false
}

// Fail drops all data, including what a previous cycle committed.
func (s *AppState) Fail() {
	s.PopularBooks = nil
	s.DashboardStats = nil
	s.Err = models.FetchFailedMessage
	s.Loading = false
}

// Ready reports whether the tabs can be rendered.
func (s AppState) Ready() bool {
	return !s.Loading && s.Err == "" && s.DashboardStats != nil
}

func (s *AppState) SetTab(t Tab) {
	if t < 0 || int(t) >= TabCount {
		return
	}
	s.ActiveTab = t
}

func (s *AppState) NextTab() {
	s.ActiveTab = (s.ActiveTab + 1) % TabCount
}

func (s *AppState) PrevTab() {
	s.ActiveTab = (s.ActiveTab + TabCount - 1) % TabCount
}
