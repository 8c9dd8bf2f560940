package repository

import (
	"context"

	"shelfio-backend/internal/domains/book/model"
)

// BookRepository is the Data Store contract for the catalog. It also
// carries the reference-data lookups (author, category, reading status)
// the reconciler resolves through, so a single transaction can span the
// whole book graph.
type BookRepository interface {
	// WithinTx runs fn against a transaction-bound copy of the
	// repository. The whole callback commits or none of it does.
	WithinTx(ctx context.Context, fn func(BookRepository) error) error

	CreateBook(ctx context.Context, book *model.Book) (*model.Book, error)
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error)
	// Delete primitives. The service composes them inside WithinTx;
	// none of them cleans up after the others.
	DeleteBookRow(ctx context.Context, id int64) error
	DeleteReviewsByBook(ctx context.Context, bookID int64) error
	DeleteMembershipsByBook(ctx context.Context, bookID int64) error

	UpdateReadingStatus(ctx context.Context, bookID, statusID int64) error
	UpdatePagesRead(ctx context.Context, bookID int64, pagesRead int) error

	ListByStatus(ctx context.Context, status string) ([]*model.Book, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Book, error)
	ListAll(ctx context.Context) ([]*model.Book, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Book, error)
	ListByCollection(ctx context.Context, collectionID int64) ([]*model.Book, error)
	Latest(ctx context.Context) (*model.Book, error)
	TotalPagesRead(ctx context.Context) (int, error)
	Count(ctx context.Context) (int64, error)

	// Reference data. The Get lookups match case-insensitively except
	// GetStatusByLabel, which is exact: the status universe is fixed.
	GetAuthorByName(ctx context.Context, firstName, lastName string) (*model.Author, error)
	CreateAuthor(ctx context.Context, firstName, lastName string) (*model.Author, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetStatusByLabel(ctx context.Context, label string) (*model.ReadingStatus, error)
}
