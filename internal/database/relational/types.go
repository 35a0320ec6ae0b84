package relational

// AuthorRecord is a row of the authors table.
type AuthorRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// BookRecord is a book with its author and the number of readers who read it.
type BookRecord struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AuthorID    int64        `json:"author_id"`
	Author      AuthorRecord `json:"author"`
	ReaderCount int          `json:"reader_count"`
}

// ReaderRecord is a reader with the number of books they have read.
type ReaderRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	BooksCount int    `json:"books_count"`
}

type NewAuthor struct {
	Name string `json:"name" binding:"required"`
	Bio  string `json:"bio"`
}

type NewBook struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AuthorID    int64  `json:"author_id" binding:"required"`
}

type NewReader struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}
