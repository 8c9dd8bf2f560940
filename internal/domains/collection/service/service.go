package service

import (
	"context"
	"strings"

	bookmodel "shelfio-backend/internal/domains/book/model"
	bookrepo "shelfio-backend/internal/domains/book/repository"
	"shelfio-backend/internal/domains/collection/model"
	"shelfio-backend/internal/domains/collection/repository"
	reviewmodel "shelfio-backend/internal/domains/review/model"
	reviewrepo "shelfio-backend/internal/domains/review/repository"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/logger"
)

type CollectionService struct {
	repo       repository.CollectionRepository
	bookRepo   bookrepo.BookRepository
	reviewRepo reviewrepo.ReviewRepository
}

func NewService(
	repo repository.CollectionRepository,
	bookRepo bookrepo.BookRepository,
	reviewRepo reviewrepo.ReviewRepository,
) ServiceInterface {
	return &CollectionService{
		repo:       repo,
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *CollectionService) toResponse(ctx context.Context, collection *model.Collection) (*model.CollectionResponse, error) {
	books, err := s.bookRepo.ListByCollection(ctx, collection.ID)
	if err != nil {
		return nil, err
	}

	bookResponses := make([]bookmodel.BookResponse, 0, len(books))
	if len(books) > 0 {
		ids := make([]int64, len(books))
		for i, b := range books {
			ids[i] = b.ID
		}

		reviewsByBook, err := s.reviewRepo.ListByBookIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		for _, b := range books {
			bookResponses = append(bookResponses,
				bookmodel.ToBookResponse(b, reviewmodel.ToReviewResponses(reviewsByBook[b.ID])))
		}
	}

	resp := model.ToCollectionResponse(collection, bookResponses)
	return &resp, nil
}

// =====================================================
// CREATE
// =====================================================

func (s *CollectionService) CreateCollection(ctx context.Context, req model.CreateCollectionRequest) (*model.CollectionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput("%s", err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.InvalidInput("collection name is required")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, model.ErrCollectionNameExists(name)
	} else if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	collection, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	logger.Info("created collection", map[string]interface{}{
		"collection_id": collection.ID,
		"name":          collection.Name,
	})

	resp := model.ToCollectionResponse(collection, nil)
	return &resp, nil
}

// =====================================================
// READ
// =====================================================

func (s *CollectionService) GetCollectionByID(ctx context.Context, id int64) (*model.CollectionResponse, error) {
	if id <= 0 {
		return nil, apperror.InvalidInput("collection ID is required")
	}

	collection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, collection)
}

func (s *CollectionService) GetAllCollections(ctx context.Context) ([]model.CollectionResponse, error) {
	collections, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp, err := s.toResponse(ctx, collection)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// =====================================================
// MEMBERSHIP
// =====================================================

func (s *CollectionService) AddBookToCollection(ctx context.Context, collectionID, bookID int64) (*model.CollectionResponse, error) {
	collection, err := s.memberArgs(ctx, collectionID, bookID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddBook(ctx, collectionID, bookID); err != nil {
		return nil, err
	}

	logger.Info("added book to collection", map[string]interface{}{
		"collection_id": collectionID,
		"book_id":       bookID,
	})
	return s.toResponse(ctx, collection)
}

func (s *CollectionService) RemoveBookFromCollection(ctx context.Context, collectionID, bookID int64) (*model.CollectionResponse, error) {
	collection, err := s.memberArgs(ctx, collectionID, bookID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveBook(ctx, collectionID, bookID); err != nil {
		return nil, err
	}

	logger.Info("removed book from collection", map[string]interface{}{
		"collection_id": collectionID,
		"book_id":       bookID,
	})
	return s.toResponse(ctx, collection)
}

// memberArgs validates a membership operation's operands: the
// collection and the book must both exist.
func (s *CollectionService) memberArgs(ctx context.Context, collectionID, bookID int64) (*model.Collection, error) {
	if collectionID <= 0 {
		return nil, apperror.InvalidInput("collection ID is required")
	}
	if bookID <= 0 {
		return nil, apperror.InvalidInput("book ID is required")
	}

	collection, err := s.repo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetBookByID(ctx, bookID); err != nil {
		return nil, err
	}
	return collection, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *CollectionService) DeleteCollection(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.InvalidInput("collection ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("deleted collection", map[string]interface{}{"collection_id": id})
	return nil
}
