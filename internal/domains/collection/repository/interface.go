package repository

import (
	"context"

	"shelfio-backend/internal/domains/collection/model"
)

type CollectionRepository interface {
	Create(ctx context.Context, name string) (*model.Collection, error)
	GetByID(ctx context.Context, id int64) (*model.Collection, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*model.Collection, error)
	ListAll(ctx context.Context) ([]*model.Collection, error)
	// Delete removes the collection and its memberships; member books
	// are untouched.
	Delete(ctx context.Context, id int64) error

	// AddBook and RemoveBook are idempotent: adding a member twice or
	// removing an absent one succeeds without effect.
	AddBook(ctx context.Context, collectionID, bookID int64) error
	RemoveBook(ctx context.Context, collectionID, bookID int64) error
}
