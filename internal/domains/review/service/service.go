package service

import (
	"context"
	"time"

	bookmodel "shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/domains/review/model"
	"shelfio-backend/internal/domains/review/repository"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/cache"
	"shelfio-backend/pkg/logger"
)

type ReviewService struct {
	repo  repository.ReviewRepository
	cache cache.Cache
}

func NewService(repo repository.ReviewRepository, c cache.Cache) ServiceInterface {
	return &ReviewService{repo: repo, cache: c}
}

// invalidateBookCache drops cached book views: they embed reviews, so
// any review mutation makes them stale.
func (s *ReviewService) invalidateBookCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Error("failed to invalidate book cache", err)
	}
}

func validateRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return model.ErrInvalidRating(rating)
	}
	return nil
}

func validateComment(comment *string) error {
	if comment != nil && len(*comment) > model.MaxCommentLength {
		return apperror.InvalidInput("comment must be at most %d characters", model.MaxCommentLength)
	}
	return nil
}

func (s *ReviewService) AddReview(ctx context.Context, bookID int64, req model.AddReviewRequest) (*model.ReviewResponse, error) {
	if bookID <= 0 {
		return nil, apperror.InvalidInput("book ID is required")
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(req.Comment); err != nil {
		return nil, err
	}

	exists, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, bookmodel.ErrBookNotFound(bookID)
	}

	review := &model.Review{
		BookID:    bookID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("added review", map[string]interface{}{
		"book_id": bookID,
		"rating":  req.Rating,
	})
	s.invalidateBookCache(ctx)

	resp := model.ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, reviewID int64, req model.UpdateReviewRequest) (*model.ReviewResponse, error) {
	if reviewID <= 0 {
		return nil, apperror.InvalidInput("review ID is required")
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(req.Comment); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	// Rating and comment only; the creation timestamp is immutable.
	review.Rating = req.Rating
	review.Comment = req.Comment

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("updated review", map[string]interface{}{
		"review_id": reviewID,
		"rating":    req.Rating,
	})
	s.invalidateBookCache(ctx)

	resp := model.ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID int64) error {
	if reviewID <= 0 {
		return apperror.InvalidInput("review ID is required")
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	logger.Info("deleted review", map[string]interface{}{"review_id": reviewID})
	s.invalidateBookCache(ctx)
	return nil
}

func (s *ReviewService) GetReviewByID(ctx context.Context, reviewID int64) (*model.ReviewResponse, error) {
	if reviewID <= 0 {
		return nil, apperror.InvalidInput("review ID is required")
	}

	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := model.ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) GetReviewsByBook(ctx context.Context, bookID int64) ([]model.ReviewResponse, error) {
	if bookID <= 0 {
		return nil, apperror.InvalidInput("book ID is required")
	}

	exists, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, bookmodel.ErrBookNotFound(bookID)
	}

	reviews, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return model.ToReviewResponses(reviews), nil
}
