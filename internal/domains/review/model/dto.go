package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (r AddReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Comment,
			validation.Length(0, MaxCommentLength).Error("comment must be at most 1000 characters"),
		),
	)
}

type UpdateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (r UpdateReviewRequest) Validate() error {
	return AddReviewRequest(r).Validate()
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ToReviewResponses(reviews []*Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = ToReviewResponse(r)
	}
	return responses
}
