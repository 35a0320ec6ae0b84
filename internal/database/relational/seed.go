package relational

import (
	"context"
	"fmt"
	"log/slog"
)

var sampleAuthors = []NewAuthor{
	{Name: "J.K. Rowling", Bio: "British author, best known for Harry Potter series"},
	{Name: "George R.R. Martin", Bio: "American novelist and short story writer"},
	{Name: "Stephen King", Bio: "American author of horror, supernatural fiction"},
	{Name: "Agatha Christie", Bio: "English writer known for detective novels"},
	{Name: "Isaac Asimov", Bio: "American writer and professor of biochemistry"},
}

// sampleBooks refers to authors by their index in sampleAuthors.
var sampleBooks = []struct {
	title, description string
	author             int
}{
	{"Harry Potter and the Philosopher's Stone", "First book in the Harry Potter series", 0},
	{"Harry Potter and the Chamber of Secrets", "Second book in the Harry Potter series", 0},
	{"A Game of Thrones", "First book in A Song of Ice and Fire series", 1},
	{"A Clash of Kings", "Second book in A Song of Ice and Fire series", 1},
	{"The Shining", "Horror novel about the Overlook Hotel", 2},
	{"It", "Horror novel about a shape-shifting entity", 2},
	{"Murder on the Orient Express", "Classic detective novel featuring Hercule Poirot", 3},
	{"And Then There Were None", "Mystery novel about ten strangers on an island", 3},
	{"Foundation", "Science fiction novel about psychohistory", 4},
	{"I, Robot", "Collection of science fiction short stories", 4},
}

var sampleReaders = []NewReader{
	{Name: "Alice Johnson", Email: "alice@example.com"},
	{Name: "Bob Smith", Email: "bob@example.com"},
	{Name: "Charlie Brown", Email: "charlie@example.com"},
	{Name: "Diana Prince", Email: "diana@example.com"},
	{Name: "Eve Wilson", Email: "eve@example.com"},
}

// sampleReadings pairs (reader index, book index).
var sampleReadings = [][2]int{
	{0, 0}, {0, 1}, {0, 6}, {0, 7},
	{1, 2}, {1, 3}, {1, 4}, {1, 5},
	{2, 8}, {2, 9}, {2, 0},
	{3, 0}, {3, 1}, {3, 6}, {3, 7},
	{4, 4}, {4, 5}, {4, 8}, {4, 9},
	// Harry Potter ends up the most read
	{1, 0}, {2, 1}, {4, 0},
}

// Seed loads the sample catalogue unless at least one author already exists.
// It reports whether anything was inserted.
func (r *Repo) Seed(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return false, fmt.Errorf("count authors: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	authorIDs := make([]int64, len(sampleAuthors))
	for i, a := range sampleAuthors {
		rec, err := insertAuthor(ctx, tx, a)
		if err != nil {
			return false, err
		}
		authorIDs[i] = rec.ID
	}

	bookIDs := make([]int64, len(sampleBooks))
	for i, b := range sampleBooks {
		rec, err := insertBook(ctx, tx, NewBook{Title: b.title, Description: b.description, AuthorID: authorIDs[b.author]})
		if err != nil {
			return false, err
		}
		bookIDs[i] = rec.ID
	}

	readerIDs := make([]int64, len(sampleReaders))
	for i, rd := range sampleReaders {
		rec, err := insertReader(ctx, tx, rd)
		if err != nil {
			return false, err
		}
		readerIDs[i] = rec.ID
	}

	for _, p := range sampleReadings {
		if err := insertReading(ctx, tx, readerIDs[p[0]], bookIDs[p[1]]); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	slog.Info("seeded sample data",
		"authors", len(sampleAuthors),
		"books", len(sampleBooks),
		"readers", len(sampleReaders),
		"readings", len(sampleReadings),
	)
	return true, nil
}
