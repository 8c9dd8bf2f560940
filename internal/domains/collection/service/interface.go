package service

import (
	"context"

	"shelfio-backend/internal/domains/collection/model"
)

type ServiceInterface interface {
	// CreateCollection rejects names already taken, compared
	// case-insensitively.
	CreateCollection(ctx context.Context, req model.CreateCollectionRequest) (*model.CollectionResponse, error)
	GetCollectionByID(ctx context.Context, id int64) (*model.CollectionResponse, error)
	GetAllCollections(ctx context.Context) ([]model.CollectionResponse, error)
	// AddBookToCollection and RemoveBookFromCollection verify both
	// sides exist, then adjust membership. Re-adding a member or
	// removing a non-member is a no-op.
	AddBookToCollection(ctx context.Context, collectionID, bookID int64) (*model.CollectionResponse, error)
	RemoveBookFromCollection(ctx context.Context, collectionID, bookID int64) (*model.CollectionResponse, error)
	// DeleteCollection removes the collection only; member books stay
	// in the catalog.
	DeleteCollection(ctx context.Context, id int64) error
}
