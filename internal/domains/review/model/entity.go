package model

import "time"

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Review is owned by a book. CreatedAt is assigned by the service when
// the review is created and never updated.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
