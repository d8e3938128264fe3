package model

// TopAuthor is one row of the authors-by-published-books ranking.
type TopAuthor struct {
	AuthorID  int64  `json:"author_id" db:"author_id"`
	Name      string `json:"name" db:"name"`
	BookCount int64  `json:"book_count" db:"book_count"`
}

// TopAuthorsReport wraps the ranking together with the year it covers.
type TopAuthorsReport struct {
	Year    int         `json:"year"`
	Authors []TopAuthor `json:"authors"`
}
