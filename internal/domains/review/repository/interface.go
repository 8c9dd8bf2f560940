package repository

import (
	"context"

	"shelfio-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
	ListByBook(ctx context.Context, bookID int64) ([]*model.Review, error)
	// ListByBookIDs fetches reviews for a set of books in one query,
	// keyed by book id. Books without reviews are absent from the map.
	ListByBookIDs(ctx context.Context, bookIDs []int64) (map[int64][]*model.Review, error)
	BookExists(ctx context.Context, bookID int64) (bool, error)
}
