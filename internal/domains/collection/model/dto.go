package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "shelfio-backend/internal/domains/book/model"
)

type CreateCollectionRequest struct {
	Name string `json:"name"`
}

func (r CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("collection name is required"),
			validation.Length(1, 100),
		),
	)
}

type CollectionResponse struct {
	ID    int64                    `json:"id"`
	Name  string                   `json:"name"`
	Books []bookmodel.BookResponse `json:"books"`
}

func ToCollectionResponse(c *Collection, books []bookmodel.BookResponse) CollectionResponse {
	if books == nil {
		books = []bookmodel.BookResponse{}
	}
	return CollectionResponse{
		ID:    c.ID,
		Name:  c.Name,
		Books: books,
	}
}
