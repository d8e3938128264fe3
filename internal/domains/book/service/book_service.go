package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	submodel "bookcatalog-backend/internal/domains/subscription/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type BookService struct {
	repo     repository.RepositoryInterface
	storage  CoverStore
	notifier Notifier
}

func NewBookService(repo repository.RepositoryInterface, storage CoverStore, notifier Notifier) *BookService {
	return &BookService{
		repo:     repo,
		storage:  storage,
		notifier: notifier,
	}
}

// Create persists the book together with its author links, then notifies
// subscribers. Notification failures are logged and swallowed: the book is
// already committed and stays committed.
func (s *BookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	b := &model.Book{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		PublicationYear: req.PublicationYear,
		ISBN:            normalizeISBN(req.ISBN),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkISBN(ctx, b.ISBN, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateWithAuthors(ctx, b, req.AuthorIDs)
	if err != nil {
		return nil, err
	}

	s.notifyCreated(ctx, created)
	s.decorate(created)
	return created, nil
}

func (s *BookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(b)
	return b, nil
}

func (s *BookService) GetAll(ctx context.Context, page, pageSize int, sortBy, order string) ([]model.Book, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := model.BookFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
		SortBy: sortBy,
		Order:  order,
	}
	books, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range books {
		s.decorate(&books[i])
	}
	return books, total, nil
}

// Update rewrites the book and replaces its full author set. Updates never
// trigger subscriber notifications, only creates do.
func (s *BookService) Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(req.Title)
	existing.Description = req.Description
	existing.PublicationYear = req.PublicationYear
	existing.ISBN = normalizeISBN(req.ISBN)
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkISBN(ctx, existing.ISBN, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateWithAuthors(ctx, existing, req.AuthorIDs)
	if err != nil {
		return nil, err
	}

	s.decorate(updated)
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if b.CoverImage != nil && *b.CoverImage != "" {
		s.storage.DeleteCover(*b.CoverImage)
	}
	return nil
}

// UpdateCover stores a newly uploaded cover and points the book at it. The
// previous file is removed once the new one is safely on disk.
func (s *BookService) UpdateCover(ctx context.Context, id int64, file *multipart.FileHeader) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := ""
	if b.CoverImage != nil {
		oldPath = *b.CoverImage
	}

	relPath, err := s.storage.SaveCover(file, oldPath)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCoverImage(ctx, id, relPath); err != nil {
		s.storage.DeleteCover(relPath)
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *BookService) notifyCreated(ctx context.Context, b *model.Book) {
	event := submodel.NewBookEvent{
		BookID: b.ID,
		Title:  b.Title,
	}
	for _, a := range b.Authors {
		event.Authors = append(event.Authors, submodel.NewBookAuthor{ID: a.ID, Name: a.Name})
	}

	if err := s.notifier.NotifyAboutNewBook(ctx, event); err != nil {
		log.Warn().Err(err).Int64("book_id", b.ID).Msg("subscriber notification failed")
	}
}

func (s *BookService) decorate(b *model.Book) {
	path := ""
	if b.CoverImage != nil {
		path = *b.CoverImage
	}
	b.CoverURL = s.storage.CoverURL(path)
}

func (s *BookService) checkISBN(ctx context.Context, isbn *string, excludeID int64) error {
	if isbn == nil {
		return nil
	}
	exists, err := s.repo.ISBNExists(ctx, *isbn, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrDuplicateISBN
	}
	return nil
}

func normalizeISBN(isbn *string) *string {
	if isbn == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*isbn)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
