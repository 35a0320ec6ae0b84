package output

import (
	"fmt"
	"strconv"

	"readtrack/internal/models"
)

// Section constants to avoid hardcoded strings
const (
	SectionPopularAuthor = "popular_author"
	SectionBooksRead     = "books_read"
	SectionTopAuthors    = "top_authors"
)

// Fixed copy shown by both renderers.
const (
	BooksTitle        = "Most Popular Books"
	BooksSubtitle     = "Based on number of readers"
	DashboardTitle    = "Your Reading Dashboard"
	DashboardSubtitle = "Personal reading statistics and insights"

	MsgStartReading   = "Start reading to see your progress!"
	MsgKeepReading    = "Keep up the great reading habit!"
	MsgNoHistory      = "No reading history yet. Start exploring books above!"
	totalReadersLabel = "total readers across all books"
)

// BookCard is one ranked entry of the popular books grid.
type BookCard struct {
	Rank        string // "#1" for index 0
	Title       string
	Author      string // "by <name>"
	Description string
	Readers     string // "1 reader" / "n readers"
	ReaderCount int
}

type BooksView struct {
	Title    string
	Subtitle string
	Cards    []BookCard
}

// UI/view-model types (no printing here)
type Item struct {
	Key   string
	Label string
	Value string
	Note  string
}

type Section struct {
	ID    string
	Icon  string
	Title string
	Items []Item
	Empty string // shown instead of Items when there are none
}

type DashboardView struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Pluralize returns "<n> <word>" with an "s" appended unless n is exactly 1.
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Rank formats a zero-based position as a one-based rank label.
func Rank(index int) string {
	return "#" + strconv.Itoa(index+1)
}

// BuildBooks keeps the order of books as given; the backend already ranks them.
func BuildBooks(books []models.Book) BooksView {
	v := BooksView{
		Title:    BooksTitle,
		Subtitle: BooksSubtitle,
		Cards:    make([]BookCard, 0, len(books)),
	}
	for i, b := range books {
		v.Cards = append(v.Cards, BookCard{
			Rank:        Rank(i),
			Title:       b.Title,
			Author:      "by " + b.Author.Name,
			Description: b.Description,
			Readers:     Pluralize(b.ReaderCount, "reader"),
			ReaderCount: b.ReaderCount,
		})
	}
	return v
}

// BuildDashboard converts the stats payload into the three dashboard cards.
func BuildDashboard(stats models.DashboardStats) DashboardView {
	popular := Section{
		ID:    SectionPopularAuthor,
		Icon:  "🏆",
		Title: "Most Popular Author",
		Items: []Item{{
			Key:   "name",
			Value: stats.MostPopularAuthor.Name,
			Note:  fmt.Sprintf("%d %s", stats.MostPopularAuthor.TotalReaders, totalReadersLabel),
		}},
	}

	readNote := MsgKeepReading
	if stats.UserBooksRead == 0 {
		readNote = MsgStartReading
	}
	read := Section{
		ID:    SectionBooksRead,
		Icon:  "📚",
		Title: "Books You've Read",
		Items: []Item{{
			Key:   "count",
			Value: strconv.Itoa(stats.UserBooksRead),
			Note:  readNote,
		}},
	}

	top := Section{
		ID:    SectionTopAuthors,
		Icon:  "⭐",
		Title: "Your Top Authors",
		Empty: MsgNoHistory,
	}
	for i, a := range stats.UserTopAuthors {
		// The count shown is total_readers as delivered by the backend.
		top.Items = append(top.Items, Item{
			Key:   fmt.Sprintf("rank_%d", i+1),
			Label: Rank(i),
			Value: a.Name,
			Note:  Pluralize(a.TotalReaders, "book") + " read",
		})
	}

	return DashboardView{
		Title:    DashboardTitle,
		Subtitle: DashboardSubtitle,
		Sections: []Section{popular, read, top},
	}
}

func (v DashboardView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
