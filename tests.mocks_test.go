package main

import (
	"context"
	"strconv"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	CreateFunc       func(ctx context.Context, in BookInput) (string, error)
	ListFilteredFunc func(ctx context.Context, filter BookFilter) ([]BookSummary, error)
	GetByIDFunc      func(ctx context.Context, id string) (Book, error)
	UpdateByIDFunc   func(ctx context.Context, id string, in BookInput) (Book, error)
	DeleteByIDFunc   func(ctx context.Context, id string) error
	ExistsFunc       func(ctx context.Context, id string) bool
	LenFunc          func() int
}

// Create mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Create(ctx context.Context, in BookInput) (string, error) {
	return m.CreateFunc(ctx, in)
}

// ListFiltered mocks the behavior of listing books by the repository.
func (m *MockBookStorage) ListFiltered(ctx context.Context, filter BookFilter) ([]BookSummary, error) {
	return m.ListFilteredFunc(ctx, filter)
}

// GetByID mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetByID(ctx context.Context, id string) (Book, error) {
	return m.GetByIDFunc(ctx, id)
}

// UpdateByID mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) UpdateByID(ctx context.Context, id string, in BookInput) (Book, error) {
	return m.UpdateByIDFunc(ctx, id, in)
}

// DeleteByID mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

// Exists defaults to true when not configured.
func (m *MockBookStorage) Exists(ctx context.Context, id string) bool {
	if m.ExistsFunc == nil {
		return true
	}
	return m.ExistsFunc(ctx, id)
}

func (m *MockBookStorage) Len() int {
	if m.LenFunc == nil {
		return 0
	}
	return m.LenFunc()
}

// MockQueuer records pushed books and replays the configured pop results.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, book Book) error
	PopFunc  func(ctx context.Context, qids ...string) (string, Book, error)
}

func (m *MockQueuer) Push(ctx context.Context, qid string, book Book) error {
	if m.PushFunc == nil {
		return nil
	}
	return m.PushFunc(ctx, qid, book)
}

func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, Book, error) {
	return m.PopFunc(ctx, qids...)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler. Book ids are
// built from the configured one followed by a sequence number.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
	count     int
}

// NewMockUIDHandler returns a mocked instance with predictable ids.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

func (muid *MockUIDHandler) BookID() string {
	muid.count++
	return muid.MockedUID + strconv.Itoa(muid.count)
}

func (muid *MockUIDHandler) RequestID() string {
	return RequestIDPrefix + ":" + muid.MockedUID
}

// IsValidRequestID mocks the validation by providing configured status.
func (muid *MockUIDHandler) IsValidRequestID(_ string) bool {
	return muid.Valid
}
