package main

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var _ BookStorage = (*memoryBookStorage)(nil) // ensure memoryBookStorage implements BookStorage.

// memoryBookStorage keeps books in insertion order. Each
// operation runs under the mutex from start to finish.
type memoryBookStorage struct {
	logger *zap.Logger
	clock  Clocker
	ids    UIDHandler
	mu     sync.Mutex
	books  []Book
}

// NewMemoryBookStorage provides an empty in-memory book storage.
func NewMemoryBookStorage(logger *zap.Logger, clock Clocker, ids UIDHandler) BookStorage {
	return &memoryBookStorage{
		logger: logger,
		clock:  clock,
		ids:    ids,
		books:  []Book{},
	}
}

// Create validates the input then appends a new book at the end of the collection.
func (ms *memoryBookStorage) Create(_ context.Context, in BookInput) (string, error) {
	if in.Name == nil || *in.Name == "" {
		return "", &ValidationError{Reason: ReasonMissingName}
	}
	if in.ReadPage > in.PageCount {
		return "", &ValidationError{Reason: ReasonReadPageExceeded}
	}

	now := ms.clock.Now().UTC()
	book := Book{
		ID:         ms.ids.BookID(),
		Name:       *in.Name,
		Year:       in.Year,
		Author:     in.Author,
		Summary:    in.Summary,
		Publisher:  in.Publisher,
		PageCount:  in.PageCount,
		ReadPage:   in.ReadPage,
		Finished:   in.PageCount == in.ReadPage,
		Reading:    in.Reading,
		InsertedAt: now,
		UpdatedAt:  now,
	}

	ms.mu.Lock()
	ms.books = append(ms.books, book)
	ms.mu.Unlock()
	return book.ID, nil
}

// ListFiltered returns the summary of every book matching the first provided criterion.
func (ms *memoryBookStorage) ListFiltered(_ context.Context, filter BookFilter) ([]BookSummary, error) {
	var match func(Book) bool
	switch {
	case filter.Name != nil:
		name := strings.ToLower(*filter.Name)
		match = func(b Book) bool { return strings.Contains(strings.ToLower(b.Name), name) }
	case filter.Reading != nil:
		match = func(b Book) bool { return b.Reading == *filter.Reading }
	case filter.Finished != nil:
		match = func(b Book) bool { return b.Finished == *filter.Finished }
	default:
		match = func(Book) bool { return true }
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	summaries := []BookSummary{}
	for _, b := range ms.books {
		if match(b) {
			summaries = append(summaries, b.ToSummary())
		}
	}
	return summaries, nil
}

// GetByID retrieves a book record based on its ID.
func (ms *memoryBookStorage) GetByID(_ context.Context, id string) (Book, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if i := ms.indexOf(id); i >= 0 {
		return ms.books[i], nil
	}
	return Book{}, ErrBookNotFound
}

// UpdateByID replaces all fields of an existing book except its
// id and insertion time. The finished flag is derived again from
// the new page counters.
func (ms *memoryBookStorage) UpdateByID(_ context.Context, id string, in BookInput) (Book, error) {
	if in.ReadPage > in.PageCount {
		return Book{}, &ValidationError{Reason: ReasonReadPageExceeded}
	}
	if in.Name == nil || *in.Name == "" {
		return Book{}, &ValidationError{Reason: ReasonMissingName}
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := ms.indexOf(id)
	if i < 0 {
		return Book{}, ErrBookNotFound
	}

	book := ms.books[i]
	book.Name = *in.Name
	book.Year = in.Year
	book.Author = in.Author
	book.Summary = in.Summary
	book.Publisher = in.Publisher
	book.PageCount = in.PageCount
	book.ReadPage = in.ReadPage
	book.Finished = in.PageCount == in.ReadPage
	book.Reading = in.Reading
	book.UpdatedAt = ms.clock.Now().UTC()
	ms.books[i] = book
	return book, nil
}

// DeleteByID removes a book record based on its ID and keeps the order of the others.
func (ms *memoryBookStorage) DeleteByID(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := ms.indexOf(id)
	if i < 0 {
		return ErrBookNotFound
	}
	ms.books = append(ms.books[:i], ms.books[i+1:]...)
	ms.logger.Debug("storage: book removed", zap.String("book.id", id), zap.Int("books.count", len(ms.books)))
	return nil
}

// Exists reports whether a book with the given ID is stored.
func (ms *memoryBookStorage) Exists(_ context.Context, id string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.indexOf(id) >= 0
}

// Len returns the number of stored books.
func (ms *memoryBookStorage) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.books)
}

// indexOf must be called with the mutex held.
func (ms *memoryBookStorage) indexOf(id string) int {
	for i := range ms.books {
		if ms.books[i].ID == id {
			return i
		}
	}
	return -1
}
