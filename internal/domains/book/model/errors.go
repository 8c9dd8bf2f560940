package model

import "shelfio-backend/internal/shared/apperror"

// Error constructors for the book domain. Everything carries a kind
// from the shared closed set so the transport layer can map it.

func ErrBookNotFound(id int64) *apperror.Error {
	return apperror.NotFound("book not found with ID: %d", id)
}

func ErrNoBooks() *apperror.Error {
	return apperror.NotFound("no books found in library")
}

func ErrISBNAlreadyExists(isbn string) *apperror.Error {
	return apperror.AlreadyExists("book with ISBN %s already exists", isbn)
}

func ErrInvalidStatus(label string) *apperror.Error {
	return apperror.InvalidInput(
		"invalid reading status: %s. Must be one of: %s, %s, %s",
		label, StatusNotStarted, StatusReading, StatusFinished,
	)
}

func ErrStatusSeedMissing(label string) *apperror.Error {
	return apperror.NotFound("reading status '%s' not found in database", label)
}
