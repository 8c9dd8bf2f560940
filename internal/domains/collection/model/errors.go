package model

import "shelfio-backend/internal/shared/apperror"

func ErrCollectionNotFound(id int64) *apperror.Error {
	return apperror.NotFound("collection not found with ID: %d", id)
}

func ErrCollectionNameExists(name string) *apperror.Error {
	return apperror.AlreadyExists("collection already exists with name: %s", name)
}
