package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SchemaSQL creates the catalogue. Ids come from sequences so inserts can use
// RETURNING.
const SchemaSQL = `
CREATE SEQUENCE IF NOT EXISTS authors_id_seq START 1;
CREATE SEQUENCE IF NOT EXISTS books_id_seq START 1;
CREATE SEQUENCE IF NOT EXISTS readers_id_seq START 1;

CREATE TABLE IF NOT EXISTS authors (
  id    BIGINT PRIMARY KEY DEFAULT nextval('authors_id_seq'),
  name  VARCHAR NOT NULL,
  bio   VARCHAR
);

CREATE TABLE IF NOT EXISTS books (
  id          BIGINT PRIMARY KEY DEFAULT nextval('books_id_seq'),
  title       VARCHAR NOT NULL,
  description VARCHAR,
  author_id   BIGINT NOT NULL REFERENCES authors(id)
);

CREATE TABLE IF NOT EXISTS readers (
  id     BIGINT PRIMARY KEY DEFAULT nextval('readers_id_seq'),
  name   VARCHAR NOT NULL,
  email  VARCHAR NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS book_readers (
  book_id   BIGINT NOT NULL REFERENCES books(id),
  reader_id BIGINT NOT NULL REFERENCES readers(id),
  PRIMARY KEY(book_id, reader_id)
);
`

var (
	ErrNoReaders      = errors.New("no users found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrReaderNotFound = errors.New("reader not found")
	ErrEmailTaken     = errors.New("email already registered")
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repo) CreateAuthor(ctx context.Context, in NewAuthor) (AuthorRecord, error) {
	return insertAuthor(ctx, r.db, in)
}

func insertAuthor(ctx context.Context, q queryer, in NewAuthor) (AuthorRecord, error) {
	rec := AuthorRecord{Name: in.Name, Bio: in.Bio}
	err := q.QueryRowContext(ctx,
		`INSERT INTO authors(name, bio) VALUES (?, ?) RETURNING id`,
		in.Name, nullEmpty(in.Bio),
	).Scan(&rec.ID)
	if err != nil {
		return AuthorRecord{}, fmt.Errorf("insert author: %w", err)
	}
	return rec, nil
}

func (r *Repo) CreateBook(ctx context.Context, in NewBook) (BookRecord, error) {
	author, err := r.author(ctx, in.AuthorID)
	if err != nil {
		return BookRecord{}, err
	}
	rec, err := insertBook(ctx, r.db, in)
	if err != nil {
		return BookRecord{}, err
	}
	rec.Author = author
	return rec, nil
}

func insertBook(ctx context.Context, q queryer, in NewBook) (BookRecord, error) {
	rec := BookRecord{Title: in.Title, Description: in.Description, AuthorID: in.AuthorID}
	err := q.QueryRowContext(ctx,
		`INSERT INTO books(title, description, author_id) VALUES (?, ?, ?) RETURNING id`,
		in.Title, nullEmpty(in.Description), in.AuthorID,
	).Scan(&rec.ID)
	if err != nil {
		return BookRecord{}, fmt.Errorf("insert book: %w", err)
	}
	return rec, nil
}

func (r *Repo) CreateReader(ctx context.Context, in NewReader) (ReaderRecord, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM readers WHERE email = ?)`, in.Email).Scan(&exists)
	if err != nil {
		return ReaderRecord{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ReaderRecord{}, ErrEmailTaken
	}
	return insertReader(ctx, r.db, in)
}

func insertReader(ctx context.Context, q queryer, in NewReader) (ReaderRecord, error) {
	rec := ReaderRecord{Name: in.Name, Email: in.Email}
	err := q.QueryRowContext(ctx,
		`INSERT INTO readers(name, email) VALUES (?, ?) RETURNING id`,
		in.Name, in.Email,
	).Scan(&rec.ID)
	if err != nil {
		return ReaderRecord{}, fmt.Errorf("insert reader: %w", err)
	}
	return rec, nil
}

func (r *Repo) RecordReading(ctx context.Context, readerID, bookID int64) error {
	if err := r.mustExist(ctx, "readers", readerID, ErrReaderNotFound); err != nil {
		return err
	}
	if err := r.mustExist(ctx, "books", bookID, ErrBookNotFound); err != nil {
		return err
	}
	return insertReading(ctx, r.db, readerID, bookID)
}

func insertReading(ctx context.Context, q queryer, readerID, bookID int64) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO book_readers(book_id, reader_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		bookID, readerID,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *Repo) mustExist(ctx context.Context, table string, id int64, notFound error) error {
	var exists bool
	// table is one of a fixed set of identifiers, never user input.
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", table, err)
	}
	if !exists {
		return notFound
	}
	return nil
}

func (r *Repo) author(ctx context.Context, id int64) (AuthorRecord, error) {
	a := AuthorRecord{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, COALESCE(bio, '') FROM authors WHERE id = ?`, id,
	).Scan(&a.Name, &a.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthorRecord{}, ErrAuthorNotFound
	}
	if err != nil {
		return AuthorRecord{}, fmt.Errorf("lookup author: %w", err)
	}
	return a, nil
}

func nullEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
