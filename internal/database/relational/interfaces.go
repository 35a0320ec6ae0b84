package relational

import (
	"context"

	"readtrack/internal/models"
)

// Store is everything the HTTP API needs from persistence.
type Store interface {
	// PopularBooks returns up to limit books ordered by reader count, highest first.
	PopularBooks(ctx context.Context, limit int) ([]models.Book, error)
	// DashboardStats computes the statistics for the simulated logged-in reader.
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)

	ListAuthors(ctx context.Context) ([]AuthorRecord, error)
	CreateAuthor(ctx context.Context, in NewAuthor) (AuthorRecord, error)
	ListBooks(ctx context.Context) ([]BookRecord, error)
	CreateBook(ctx context.Context, in NewBook) (BookRecord, error)
	ListReaders(ctx context.Context) ([]ReaderRecord, error)
	CreateReader(ctx context.Context, in NewReader) (ReaderRecord, error)
	// RecordReading marks a book as read by a reader. Repeats are ignored.
	RecordReading(ctx context.Context, readerID, bookID int64) error
}

var _ Store = (*Repo)(nil)
