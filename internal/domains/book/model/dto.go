package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	reviewmodel "shelfio-backend/internal/domains/review/model"
)

// notBlank rejects strings that are empty after trimming. ozzo's
// Required accepts whitespace-only input, which would otherwise end up
// persisted as an empty title or silently fall back to the default
// category.
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// CreateBookRequest is the manual-entry payload. ISBN, publisher,
// pages and cover are optional.
type CreateBookRequest struct {
	Title           string  `json:"title"`
	AuthorFirstName string  `json:"author_first_name"`
	AuthorLastName  string  `json:"author_last_name"`
	Category        string  `json:"category"`
	Status          string  `json:"status"`
	Pages           *int    `json:"pages"`
	ISBN            *string `json:"isbn"`
	Publisher       *string `json:"publisher"`
	CoverURL        *string `json:"cover_url"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), notBlank),
		validation.Field(&r.AuthorFirstName, validation.Required.Error("author first name is required"), notBlank),
		validation.Field(&r.AuthorLastName, validation.Required.Error("author last name is required"), notBlank),
		validation.Field(&r.Category, validation.Required.Error("category is required"), notBlank),
		validation.Field(&r.Status, validation.Required.Error("status is required"), notBlank),
		validation.Field(&r.Pages, validation.Min(1).Error("pages must be positive")),
	)
}

type UpdateReadingStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateReadingStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required.Error("status is required"), notBlank),
	)
}

type UpdatePagesReadRequest struct {
	PagesRead *int `json:"pages_read"`
}

func (r UpdatePagesReadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PagesRead, validation.NotNil.Error("pages_read is required")),
	)
}

// BookResponse is the canonical view: flattened author name, category
// name and status label, with the book's reviews embedded.
type BookResponse struct {
	ID        int64                        `json:"id"`
	Title     string                       `json:"title"`
	Author    string                       `json:"author"`
	Category  *string                      `json:"category"`
	ISBN      *string                      `json:"isbn"`
	Status    *string                      `json:"status"`
	Pages     *int                         `json:"pages"`
	PagesRead int                          `json:"pages_read"`
	Publisher *string                      `json:"publisher"`
	CoverURL  *string                      `json:"cover_url"`
	Reviews   []reviewmodel.ReviewResponse `json:"reviews"`
}

// ToBookResponse flattens a book and its reviews into the canonical view.
func ToBookResponse(b *Book, reviews []reviewmodel.ReviewResponse) BookResponse {
	if reviews == nil {
		reviews = []reviewmodel.ReviewResponse{}
	}

	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.AuthorFirstName + " " + b.AuthorLastName,
		Category:  b.CategoryName,
		ISBN:      b.ISBN,
		Status:    b.StatusLabel,
		Pages:     b.Pages,
		PagesRead: b.PagesRead,
		Publisher: b.Publisher,
		CoverURL:  b.CoverURL,
		Reviews:   reviews,
	}
}

// LibraryStats is the aggregate bundle behind the stats endpoints.
type LibraryStats struct {
	TotalBooks     int64 `json:"total_books"`
	TotalPagesRead int   `json:"total_pages_read"`
}
