package service

import (
	"context"

	"shelfio-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	AddReview(ctx context.Context, bookID int64, req model.AddReviewRequest) (*model.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID int64, req model.UpdateReviewRequest) (*model.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID int64) error
	GetReviewByID(ctx context.Context, reviewID int64) (*model.ReviewResponse, error)
	// GetReviewsByBook fails with a not-found error when the book
	// itself does not exist, even if it would have zero reviews.
	GetReviewsByBook(ctx context.Context, bookID int64) ([]model.ReviewResponse, error)
}
