package repository

import (
	"context"
	"errors"
	"fmt"

	"shelfio-backend/internal/domains/collection/model"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresCollectionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) CollectionRepository {
	return &postgresCollectionRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ===== CREATE =====

func (r *postgresCollectionRepository) Create(ctx context.Context, name string) (*model.Collection, error) {
	query := `INSERT INTO collections (name) VALUES ($1) RETURNING collection_id`

	collection := &model.Collection{Name: name}
	if err := r.db.QueryRow(ctx, query, name).Scan(&collection.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrCollectionNameExists(name)
		}
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

// ===== READ =====

func (r *postgresCollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	query := `SELECT collection_id, name FROM collections WHERE collection_id = $1`

	var collection model.Collection
	if err := r.db.QueryRow(ctx, query, id).Scan(&collection.ID, &collection.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectionNotFound(id)
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

func (r *postgresCollectionRepository) GetByName(ctx context.Context, name string) (*model.Collection, error) {
	query := `SELECT collection_id, name FROM collections WHERE lower(name) = lower($1)`

	var collection model.Collection
	if err := r.db.QueryRow(ctx, query, name).Scan(&collection.ID, &collection.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("collection not found with name: %s", name)
		}
		return nil, fmt.Errorf("failed to get collection by name: %w", err)
	}
	return &collection, nil
}

func (r *postgresCollectionRepository) ListAll(ctx context.Context) ([]*model.Collection, error) {
	query := `SELECT collection_id, name FROM collections ORDER BY collection_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*model.Collection
	for rows.Next() {
		var collection model.Collection
		if err := rows.Scan(&collection.ID, &collection.Name); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, &collection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// ===== MEMBERSHIP =====

func (r *postgresCollectionRepository) AddBook(ctx context.Context, collectionID, bookID int64) error {
	query := `
		INSERT INTO collection_books (collection_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (collection_id, book_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, collectionID, bookID); err != nil {
		return fmt.Errorf("failed to add book to collection: %w", err)
	}
	return nil
}

func (r *postgresCollectionRepository) RemoveBook(ctx context.Context, collectionID, bookID int64) error {
	query := `DELETE FROM collection_books WHERE collection_id = $1 AND book_id = $2`

	if _, err := r.db.Exec(ctx, query, collectionID, bookID); err != nil {
		return fmt.Errorf("failed to remove book from collection: %w", err)
	}
	return nil
}

// ===== DELETE =====

func (r *postgresCollectionRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM collection_books WHERE collection_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear collection memberships: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM collections WHERE collection_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCollectionNotFound(id)
		}
		return nil
	})
}
