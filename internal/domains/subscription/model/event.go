package model

// NewBookEvent carries everything the notification fan-out needs about a
// freshly created book. It is deliberately decoupled from the book domain
// types so the dependency points one way only.
type NewBookEvent struct {
	BookID  int64
	Title   string
	Authors []NewBookAuthor
}

type NewBookAuthor struct {
	ID   int64
	Name string
}
