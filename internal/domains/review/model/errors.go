package model

import "shelfio-backend/internal/shared/apperror"

func ErrReviewNotFound(id int64) *apperror.Error {
	return apperror.NotFound("review not found with ID: %d", id)
}

func ErrInvalidRating(rating int) *apperror.Error {
	return apperror.InvalidInput("rating must be between %d and %d, got %d", MinRating, MaxRating, rating)
}
