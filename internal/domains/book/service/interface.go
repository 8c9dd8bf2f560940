package service

import (
	"context"

	"shelfio-backend/internal/adapter/googlebooks"
	"shelfio-backend/internal/domains/book/model"
	reviewmodel "shelfio-backend/internal/domains/review/model"
)

// BookDataAdapter is the external metadata source contract. A nil
// record with a nil error means the source had no match for the ISBN.
type BookDataAdapter interface {
	FetchByISBN(ctx context.Context, isbn string) (*googlebooks.ExternalBook, error)
}

type ServiceInterface interface {
	// AddBookByISBN resolves a book from the catalog or the external
	// metadata source. Submitting an ISBN already in the catalog
	// returns the existing record unchanged.
	AddBookByISBN(ctx context.Context, isbn string) (*model.BookResponse, error)

	// CreateBookManually adds a book from caller-supplied fields.
	CreateBookManually(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)

	// DeleteBook removes a book, its reviews and its collection
	// memberships.
	DeleteBook(ctx context.Context, bookID int64) error

	UpdateReadingStatus(ctx context.Context, bookID int64, status string) (*model.BookResponse, error)
	UpdatePagesRead(ctx context.Context, bookID int64, pagesRead int) (*model.BookResponse, error)

	// AddReview delegates to the review service and returns the
	// book's refreshed canonical view.
	AddReview(ctx context.Context, bookID int64, req reviewmodel.AddReviewRequest) (*model.BookResponse, error)

	GetBooksByStatus(ctx context.Context, status string) ([]model.BookResponse, error)
	GetBooksByCategory(ctx context.Context, category string) ([]model.BookResponse, error)
	GetTotalPagesRead(ctx context.Context) (int, error)
	GetLatestBook(ctx context.Context) (*model.BookResponse, error)
	GetRecentBooks(ctx context.Context) ([]model.BookResponse, error)
	GetAllBooks(ctx context.Context) ([]model.BookResponse, error)
	GetBooksCount(ctx context.Context) (int64, error)
}
