package repository

import (
	"context"
	"errors"
	"fmt"

	"shelfio-backend/internal/domains/review/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

const reviewColumns = `review_id, book_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*model.Review, error) {
	var r model.Review
	if err := row.Scan(&r.ID, &r.BookID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// ===== CREATE =====

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (book_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING review_id`

	err := r.db.QueryRow(ctx, query,
		review.BookID, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ===== READ =====

func (r *postgresReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE review_id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound(id)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (r *postgresReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = $1 ORDER BY review_id DESC`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) ListByBookIDs(ctx context.Context, bookIDs []int64) (map[int64][]*model.Review, error) {
	result := make(map[int64][]*model.Review)
	if len(bookIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = ANY($1) ORDER BY review_id DESC`

	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		result[review.BookID] = append(result[review.BookID], review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return result, nil
}

func (r *postgresReviewRepository) BookExists(ctx context.Context, bookID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE book_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

// ===== UPDATE =====

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `UPDATE reviews SET rating = $1, comment = $2 WHERE review_id = $3`

	tag, err := r.db.Exec(ctx, query, review.Rating, review.Comment, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound(review.ID)
	}
	return nil
}

// ===== DELETE =====

func (r *postgresReviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE review_id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound(id)
	}
	return nil
}
