// Package models holds the reading data exchanged with the books API.
package models

// FetchFailedMessage is the single user-visible error for a failed fetch cycle.
const FetchFailedMessage = "Failed to fetch data. Make sure the backend server is running."

// BookAuthor is the author reference nested inside a Book.
type BookAuthor struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	Bio  string `json:"bio,omitempty"`
}

// Book is one entry of the popular books list. ReaderCount is the number of
// distinct readers of the book.
type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Author      BookAuthor `json:"author"`
	ReaderCount int        `json:"reader_count" validate:"gte=0"`
}

// Author carries an aggregate reader count. In UserTopAuthors the backend
// fills TotalReaders with the number of books the user read by that author.
type Author struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	TotalReaders int    `json:"total_readers" validate:"gte=0"`
}

// DashboardStats is the personal statistics payload.
type DashboardStats struct {
	MostPopularAuthor Author   `json:"most_popular_author"`
	UserBooksRead     int      `json:"user_books_read"`
	UserTopAuthors    []Author `json:"user_top_authors"`
}
