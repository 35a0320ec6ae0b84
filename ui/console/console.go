package console

import (
	"fmt"
	"io"
	"strings"

	"readtrack/internal/output"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const labelWidth = 36

// Print renders both dashboard sections to the writer with ANSI colors.
func Print(w io.Writer, books output.BooksView, dash output.DashboardView) {
	p := printer{w: w, color: true}
	p.report(books, dash)
}

// PrintPlain is Print without escape codes, for pipes and tool output.
func PrintPlain(w io.Writer, books output.BooksView, dash output.DashboardView) {
	p := printer{w: w}
	p.report(books, dash)
}

// PrintBooks writes only the popular books section without colors.
func PrintBooks(w io.Writer, books output.BooksView) {
	p := printer{w: w}
	p.books(books)
}

// PrintDashboard writes only the reading statistics without colors.
func PrintDashboard(w io.Writer, dash output.DashboardView) {
	p := printer{w: w}
	p.dashboard(dash)
}

type printer struct {
	w     io.Writer
	color bool
}

func (p printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

func (p printer) report(books output.BooksView, dash output.DashboardView) {
	fmt.Fprintf(p.w, "%s\n", p.paint(colorCyan, "■ BOOK READING TRACKER"))
	p.books(books)
	p.dashboard(dash)
	fmt.Fprintln(p.w)
}

func (p printer) books(v output.BooksView) {
	fmt.Fprintf(p.w, "%s\n", p.paint(colorCyan, "─ "+v.Title+" ("+v.Subtitle+")"))
	for _, c := range v.Cards {
		label := truncate(c.Title+" "+c.Author, labelWidth)
		dots := strings.Repeat("·", labelWidth+2-len([]rune(label)))
		fmt.Fprintf(p.w, "  %-4s%s%s %s\n", c.Rank, label, p.paint(colorCyan, dots), p.paint(colorGreen, c.Readers))
	}
}

func (p printer) dashboard(v output.DashboardView) {
	fmt.Fprintf(p.w, "%s\n", p.paint(colorCyan, "─ "+v.Title))
	for _, sec := range v.Sections {
		fmt.Fprintf(p.w, "  %s\n", p.paint(colorFor(sec.ID), sec.Title))
		if len(sec.Items) == 0 && sec.Empty != "" {
			fmt.Fprintf(p.w, "    %s\n", sec.Empty)
			continue
		}
		for _, it := range sec.Items {
			prefix := ""
			if it.Label != "" {
				prefix = it.Label + " "
			}
			fmt.Fprintf(p.w, "    %s%s - %s\n", prefix, it.Value, it.Note)
		}
	}
}

func colorFor(sectionID string) string {
	switch sectionID {
	case output.SectionPopularAuthor:
		return colorYellow
	default:
		return colorGreen
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
