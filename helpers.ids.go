package main

import (
	"strings"

	"github.com/gofrs/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RequestIDPrefix string = "r"

	// BookIDLength is the number of characters of a book id.
	BookIDLength = 16
	// BookIDAlphabet leaves out look-alike characters (0/O, 1/I/l).
	BookIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

var _ UIDHandler = (*IDsHandler)(nil) // ensure IDsHandler implements UIDHandler.

// UIDHandler is an interface for getting unique ids.
type UIDHandler interface {
	BookID() string
	RequestID() string
	IsValidRequestID(id string) bool
}

// IDsHandler implements the UIDHandler interface.
type IDsHandler struct{}

// NewIDsHandler returns a ready to use IDsHandler.
func NewIDsHandler() *IDsHandler {
	return &IDsHandler{}
}

// BookID provides a random book identifier. No collision check is
// made, the alphabet and length make one negligible.
func (idh *IDsHandler) BookID() string {
	return gonanoid.MustGenerate(BookIDAlphabet, BookIDLength)
}

// RequestID provides a random unique request identifier.
func (idh *IDsHandler) RequestID() string {
	id, _ := uuid.NewV4()
	return RequestIDPrefix + ":" + id.String()
}

// IsValidRequestID checks if a given string is a valid uuid after removal of the request prefix.
func (idh *IDsHandler) IsValidRequestID(id string) bool {
	return uuid.FromStringOrNil(strings.TrimPrefix(id, RequestIDPrefix+":")) != uuid.Nil
}
