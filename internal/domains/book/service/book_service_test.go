package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book/model"
	submodel "bookcatalog-backend/internal/domains/subscription/model"
)

type fakeBookRepo struct {
	books       map[int64]*model.Book
	authors     map[int64][]model.BookAuthor
	nextID      int64
	isbns       map[string]int64
	failCreate  error
	failUpdate  error
	coverByBook map[int64]string
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:       map[int64]*model.Book{},
		authors:     map[int64][]model.BookAuthor{},
		isbns:       map[string]int64{},
		coverByBook: map[int64]string{},
	}
}

// knownAuthors maps author ids to names for link resolution in the fake.
var knownAuthors = map[int64]string{1: "First Author", 2: "Second Author", 3: "Third Author"}

func (f *fakeBookRepo) linkAuthors(bookID int64, authorIDs []int64) error {
	links := make([]model.BookAuthor, 0, len(authorIDs))
	for _, id := range authorIDs {
		name, ok := knownAuthors[id]
		if !ok {
			return model.ErrAuthorNotFound
		}
		links = append(links, model.BookAuthor{ID: id, Name: name})
	}
	f.authors[bookID] = links
	return nil
}

func (f *fakeBookRepo) CreateWithAuthors(_ context.Context, b *model.Book, authorIDs []int64) (*model.Book, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	if err := f.linkAuthors(created.ID, authorIDs); err != nil {
		return nil, err
	}
	f.books[created.ID] = &created
	if created.ISBN != nil {
		f.isbns[*created.ISBN] = created.ID
	}
	return f.getWithAuthors(created.ID)
}

func (f *fakeBookRepo) UpdateWithAuthors(_ context.Context, b *model.Book, authorIDs []int64) (*model.Book, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	stored, ok := f.books[b.ID]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	if err := f.linkAuthors(b.ID, authorIDs); err != nil {
		return nil, err
	}
	stored.Title = b.Title
	stored.Description = b.Description
	stored.PublicationYear = b.PublicationYear
	stored.ISBN = b.ISBN
	return f.getWithAuthors(b.ID)
}

func (f *fakeBookRepo) getWithAuthors(id int64) (*model.Book, error) {
	stored, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b := *stored
	b.Authors = append([]model.BookAuthor{}, f.authors[id]...)
	return &b, nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id int64) (*model.Book, error) {
	return f.getWithAuthors(id)
}

func (f *fakeBookRepo) GetAll(_ context.Context, _ model.BookFilter) ([]model.Book, int64, error) {
	result := make([]model.Book, 0, len(f.books))
	for id := range f.books {
		b, _ := f.getWithAuthors(id)
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (f *fakeBookRepo) GetAuthorIDs(_ context.Context, bookID int64) ([]int64, error) {
	ids := make([]int64, 0, len(f.authors[bookID]))
	for _, a := range f.authors[bookID] {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (f *fakeBookRepo) ISBNExists(_ context.Context, isbn string, excludeID int64) (bool, error) {
	owner, ok := f.isbns[isbn]
	return ok && owner != excludeID, nil
}

func (f *fakeBookRepo) UpdateCoverImage(_ context.Context, id int64, path string) error {
	stored, ok := f.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	stored.CoverImage = &path
	f.coverByBook[id] = path
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	delete(f.authors, id)
	return nil
}

type fakeNotifier struct {
	events []submodel.NewBookEvent
}

func (f *fakeNotifier) NotifyAboutNewBook(_ context.Context, event submodel.NewBookEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeCoverStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeCoverStore) SaveCover(file *multipart.FileHeader, oldPath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := "uploads/covers/cover_test_" + file.Filename
	f.saved = append(f.saved, path)
	if oldPath != "" {
		f.deleted = append(f.deleted, oldPath)
	}
	return path, nil
}

func (f *fakeCoverStore) DeleteCover(relPath string) bool {
	f.deleted = append(f.deleted, relPath)
	return true
}

func (f *fakeCoverStore) CoverURL(relPath string) string {
	if relPath == "" {
		return "/images/no-cover.svg"
	}
	return "/" + relPath
}

func newTestService() (*BookService, *fakeBookRepo, *fakeNotifier, *fakeCoverStore) {
	repo := newFakeBookRepo()
	notifier := &fakeNotifier{}
	store := &fakeCoverStore{}
	return NewBookService(repo, store, notifier), repo, notifier, store
}

func isbn(s string) *string { return &s }

func TestCreate_NotifiesSubscribersOnce(t *testing.T) {
	svc, _, notifier, _ := newTestService()

	b, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:           "War and Peace",
		PublicationYear: 1869,
		AuthorIDs:       []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "/images/no-cover.svg", b.CoverURL)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, b.ID, event.BookID)
	assert.Equal(t, "War and Peace", event.Title)
	require.Len(t, event.Authors, 2)
	assert.Equal(t, "First Author", event.Authors[0].Name)
}

func TestCreateAndUpdate_CarryDescription(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	desc := "An annotated edition."
	created, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Annotated",
		Description:     &desc,
		PublicationYear: 2020,
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Description)
	assert.Equal(t, desc, *created.Description)

	// An update without a description clears it.
	updated, err := svc.Update(ctx, created.ID, &model.UpdateBookRequest{
		Title:           "Annotated",
		PublicationYear: 2020,
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateBookRequest{Title: "", PublicationYear: 2020})
	assert.Error(t, err)

	_, err = svc.Create(ctx, &model.CreateBookRequest{Title: "Future", PublicationYear: time.Now().Year() + 1})
	assert.Error(t, err)

	_, err = svc.Create(ctx, &model.CreateBookRequest{Title: "Ancient", PublicationYear: 999})
	assert.Error(t, err)

	assert.Empty(t, notifier.events)
}

func TestCreate_UnknownAuthorFailsWithoutNotification(t *testing.T) {
	svc, repo, notifier, _ := newTestService()

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:           "Ghost Written",
		PublicationYear: 2020,
		AuthorIDs:       []int64{99},
	})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Empty(t, notifier.events)
	assert.Empty(t, repo.books)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Original",
		PublicationYear: 2020,
		ISBN:            isbn("9785171234567"),
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Copycat",
		PublicationYear: 2021,
		ISBN:            isbn("9785171234567"),
		AuthorIDs:       []int64{2},
	})
	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
	assert.Len(t, notifier.events, 1)
}

func TestUpdate_ReplacesAuthorSetWithoutNotification(t *testing.T) {
	svc, repo, notifier, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Shifting Credits",
		PublicationYear: 2019,
		AuthorIDs:       []int64{1, 2},
	})
	require.NoError(t, err)
	require.Len(t, notifier.events, 1)

	updated, err := svc.Update(ctx, created.ID, &model.UpdateBookRequest{
		Title:           "Shifting Credits",
		PublicationYear: 2019,
		AuthorIDs:       []int64{3},
	})
	require.NoError(t, err)

	// The old links are gone, only the new set remains.
	ids, err := repo.GetAuthorIDs(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "Third Author", updated.Authors[0].Name)

	// Still just the create notification.
	assert.Len(t, notifier.events, 1)
}

func TestUpdate_KeepingOwnISBNIsNotADuplicate(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Stable",
		PublicationYear: 2020,
		ISBN:            isbn("9785170000001"),
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, &model.UpdateBookRequest{
		Title:           "Stable, Revised",
		PublicationYear: 2020,
		ISBN:            isbn("9785170000001"),
		AuthorIDs:       []int64{1},
	})
	assert.NoError(t, err)
}

func TestUpdateCover_StoresFileAndPath(t *testing.T) {
	svc, repo, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Covered",
		PublicationYear: 2020,
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)

	file := &multipart.FileHeader{Filename: "cover.png"}
	updated, err := svc.UpdateCover(ctx, created.ID, file)
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0], repo.coverByBook[created.ID])
	assert.Equal(t, "/"+store.saved[0], updated.CoverURL)
}

func TestDelete_RemovesCoverFile(t *testing.T) {
	svc, repo, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateBookRequest{
		Title:           "Doomed",
		PublicationYear: 2020,
		AuthorIDs:       []int64{1},
	})
	require.NoError(t, err)

	file := &multipart.FileHeader{Filename: "cover.jpg"}
	_, err = svc.UpdateCover(ctx, created.ID, file)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.books)
	assert.Contains(t, store.deleted, store.saved[0])
}

func TestGetAll_ClampsPagination(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.GetAll(context.Background(), -1, 1000, "", "")
	assert.NoError(t, err)
}
