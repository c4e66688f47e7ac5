package main

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrBookNotCreated = errors.New("book not created")
)

// Validation failure reasons.
const (
	ReasonMissingName      = "missing name"
	ReasonReadPageExceeded = "readPage exceeds pageCount"
)

// ValidationError reports a rejected book payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid book: " + e.Reason
}

// Book represents a book entity.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Publisher  string    `json:"publisher"`
	PageCount  int       `json:"pageCount"`
	ReadPage   int       `json:"readPage"`
	Finished   bool      `json:"finished"`
	Reading    bool      `json:"reading"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookInput is the client writable part of a book. Name
// is a pointer so a missing field can be told apart.
type BookInput struct {
	Name      *string `json:"name"`
	Year      int     `json:"year"`
	Author    string  `json:"author"`
	Summary   string  `json:"summary"`
	Publisher string  `json:"publisher"`
	PageCount int     `json:"pageCount"`
	ReadPage  int     `json:"readPage"`
	Reading   bool    `json:"reading"`
}

// BookSummary is the projection returned by listings.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookFilter holds the optional listing criteria. At most one
// is applied, in the order Name, Reading, Finished.
type BookFilter struct {
	Name     *string
	Reading  *bool
	Finished *bool
}

// ToSummary projects the book into its listing form.
func (b Book) ToSummary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// BookStorage defines possible operations on book entity.
type BookStorage interface {
	Create(ctx context.Context, in BookInput) (string, error)
	ListFiltered(ctx context.Context, filter BookFilter) ([]BookSummary, error)
	GetByID(ctx context.Context, id string) (Book, error)
	UpdateByID(ctx context.Context, id string, in BookInput) (Book, error)
	DeleteByID(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) bool
	Len() int
}
