package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"readtrack/internal/models"
)

const (
	// DefaultPopularLimit applies when a caller passes a non-positive limit.
	DefaultPopularLimit = 10
	topAuthorsLimit     = 3
)

// NoDataAuthor stands in for the most popular author when no book has an author.
var NoDataAuthor = models.Author{ID: 0, Name: "No data", TotalReaders: 0}

// PopularBooks ranks books by reader count. Ties keep insertion order.
func (r *Repo) PopularBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			b.id,
			b.title,
			COALESCE(b.description, '') AS description,
			a.id,
			a.name,
			COALESCE(a.bio, '') AS bio,
			COUNT(br.reader_id) AS reader_count
		FROM books b
		JOIN authors a ON b.author_id = a.id
		LEFT JOIN book_readers br ON b.id = br.book_id
		GROUP BY b.id, b.title, b.description, a.id, a.name, a.bio
		ORDER BY reader_count DESC, b.id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular books: %w", err)
	}
	defer rows.Close()

	books := make([]models.Book, 0, limit)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Author.ID, &b.Author.Name, &b.Author.Bio, &b.ReaderCount); err != nil {
			return nil, fmt.Errorf("scan popular book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// DashboardStats treats the reader with the lowest id as the logged-in user.
func (r *Repo) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM readers ORDER BY id LIMIT 1`).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoReaders
	}
	if err != nil {
		return nil, fmt.Errorf("query current user: %w", err)
	}

	stats := &models.DashboardStats{
		MostPopularAuthor: NoDataAuthor,
		UserTopAuthors:    []models.Author{},
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT a.id, a.name, COUNT(br.reader_id) AS total_readers
		FROM authors a
		JOIN books b ON a.id = b.author_id
		LEFT JOIN book_readers br ON b.id = br.book_id
		GROUP BY a.id, a.name
		ORDER BY total_readers DESC, a.id ASC
		LIMIT 1
	`).Scan(&stats.MostPopularAuthor.ID, &stats.MostPopularAuthor.Name, &stats.MostPopularAuthor.TotalReaders)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query most popular author: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM book_readers WHERE reader_id = ?`, userID,
	).Scan(&stats.UserBooksRead)
	if err != nil {
		return nil, fmt.Errorf("query books read: %w", err)
	}

	// total_readers carries the number of this user's books by that author.
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.name, COUNT(br.book_id) AS books_read
		FROM authors a
		JOIN books b ON a.id = b.author_id
		JOIN book_readers br ON b.id = br.book_id
		WHERE br.reader_id = ?
		GROUP BY a.id, a.name
		ORDER BY books_read DESC, a.id ASC
		LIMIT ?
	`, userID, topAuthorsLimit)
	if err != nil {
		return nil, fmt.Errorf("query top authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.TotalReaders); err != nil {
			return nil, fmt.Errorf("scan top author: %w", err)
		}
		stats.UserTopAuthors = append(stats.UserTopAuthors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repo) ListAuthors(ctx context.Context) ([]AuthorRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(bio, '') FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	authors := []AuthorRecord{}
	for rows.Next() {
		var a AuthorRecord
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *Repo) ListBooks(ctx context.Context) ([]BookRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			b.id,
			b.title,
			COALESCE(b.description, ''),
			a.id,
			a.name,
			COALESCE(a.bio, ''),
			COUNT(br.reader_id)
		FROM books b
		JOIN authors a ON b.author_id = a.id
		LEFT JOIN book_readers br ON b.id = br.book_id
		GROUP BY b.id, b.title, b.description, a.id, a.name, a.bio
		ORDER BY b.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := []BookRecord{}
	for rows.Next() {
		var b BookRecord
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Author.ID, &b.Author.Name, &b.Author.Bio, &b.ReaderCount); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.AuthorID = b.Author.ID
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *Repo) ListReaders(ctx context.Context) ([]ReaderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rd.id, rd.name, rd.email, COUNT(br.book_id)
		FROM readers rd
		LEFT JOIN book_readers br ON rd.id = br.reader_id
		GROUP BY rd.id, rd.name, rd.email
		ORDER BY rd.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query readers: %w", err)
	}
	defer rows.Close()

	readers := []ReaderRecord{}
	for rows.Next() {
		var rd ReaderRecord
		if err := rows.Scan(&rd.ID, &rd.Name, &rd.Email, &rd.BooksCount); err != nil {
			return nil, fmt.Errorf("scan reader: %w", err)
		}
		readers = append(readers, rd)
	}
	return readers, rows.Err()
}
