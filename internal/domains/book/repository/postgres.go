package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	db database.Queryer
	// pool is nil for transaction-bound copies.
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{db: pool, pool: pool}
}

func (r *postgresBookRepository) withinTx(ctx context.Context, fn func(*postgresBookRepository) error) error {
	if r.pool == nil {
		// Already transaction-bound, reuse it.
		return fn(r)
	}
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&postgresBookRepository{db: tx})
	})
}

func (r *postgresBookRepository) WithinTx(ctx context.Context, fn func(BookRepository) error) error {
	return r.withinTx(ctx, func(txRepo *postgresBookRepository) error {
		return fn(txRepo)
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// =====================================================
// BOOKS
// =====================================================

// bookColumns joins the reference rows so every read returns the
// flattened display fields alongside the foreign keys.
const bookColumns = `
	b.book_id, b.title, b.publisher, b.isbn, b.pages, b.pages_read, b.bookcover,
	b.author_id, a.first_name, a.last_name,
	b.category_id, c.name,
	b.reading_status_id, s.status
`

const bookFrom = `
	FROM books b
	JOIN authors a ON a.author_id = b.author_id
	LEFT JOIN categories c ON c.category_id = b.category_id
	LEFT JOIN reading_statuses s ON s.reading_status_id = b.reading_status_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	book := &model.Book{}
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Publisher,
		&book.ISBN,
		&book.Pages,
		&book.PagesRead,
		&book.CoverURL,
		&book.AuthorID,
		&book.AuthorFirstName,
		&book.AuthorLastName,
		&book.CategoryID,
		&book.CategoryName,
		&book.StatusID,
		&book.StatusLabel,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *postgresBookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]*model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []*model.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	return books, nil
}

func (r *postgresBookRepository) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (title, author_id, category_id, reading_status_id,
			publisher, isbn, pages, pages_read, bookcover)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING book_id
	`

	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.AuthorID,
		book.CategoryID,
		book.StatusID,
		book.Publisher,
		book.ISBN,
		book.Pages,
		book.PagesRead,
		book.CoverURL,
	).Scan(&book.ID)

	if err != nil {
		if isUniqueViolation(err) && book.ISBN != nil {
			return nil, model.ErrISBNAlreadyExists(*book.ISBN)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return r.GetBookByID(ctx, book.ID)
}

func (r *postgresBookRepository) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` WHERE b.book_id = $1`

	book, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound(id)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresBookRepository) GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` WHERE b.isbn = $1`

	book, err := scanBook(r.db.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("book not found with ISBN: %s", isbn)
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return book, nil
}

func (r *postgresBookRepository) DeleteBookRow(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM books WHERE book_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound(id)
	}
	return nil
}

func (r *postgresBookRepository) DeleteReviewsByBook(ctx context.Context, bookID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to delete book reviews: %w", err)
	}
	return nil
}

func (r *postgresBookRepository) DeleteMembershipsByBook(ctx context.Context, bookID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM collection_books WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to delete collection memberships: %w", err)
	}
	return nil
}

func (r *postgresBookRepository) UpdateReadingStatus(ctx context.Context, bookID, statusID int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE books SET reading_status_id = $2 WHERE book_id = $1`,
		bookID, statusID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reading status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound(bookID)
	}
	return nil
}

func (r *postgresBookRepository) UpdatePagesRead(ctx context.Context, bookID int64, pagesRead int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE books SET pages_read = $2 WHERE book_id = $1`,
		bookID, pagesRead,
	)
	if err != nil {
		return fmt.Errorf("failed to update pages read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound(bookID)
	}
	return nil
}

// =====================================================
// QUERIES
// =====================================================

func (r *postgresBookRepository) ListByStatus(ctx context.Context, status string) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + `
		WHERE lower(s.status) = lower($1)
		ORDER BY b.book_id DESC`
	return r.queryBooks(ctx, query, status)
}

func (r *postgresBookRepository) ListByCategory(ctx context.Context, category string) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + `
		WHERE lower(c.name) = lower($1)
		ORDER BY b.book_id DESC`
	return r.queryBooks(ctx, query, category)
}

func (r *postgresBookRepository) ListAll(ctx context.Context) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` ORDER BY b.book_id DESC`
	return r.queryBooks(ctx, query)
}

func (r *postgresBookRepository) ListRecent(ctx context.Context, limit int) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` ORDER BY b.book_id DESC LIMIT $1`
	return r.queryBooks(ctx, query, limit)
}

func (r *postgresBookRepository) ListByCollection(ctx context.Context, collectionID int64) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + `
		JOIN collection_books cb ON cb.book_id = b.book_id
		WHERE cb.collection_id = $1
		ORDER BY b.book_id DESC`
	return r.queryBooks(ctx, query, collectionID)
}

func (r *postgresBookRepository) Latest(ctx context.Context) (*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` ORDER BY b.book_id DESC LIMIT 1`

	book, err := scanBook(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoBooks()
		}
		return nil, fmt.Errorf("failed to get latest book: %w", err)
	}
	return book, nil
}

func (r *postgresBookRepository) TotalPagesRead(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(pages_read), 0) FROM books`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum pages read: %w", err)
	}
	return total, nil
}

func (r *postgresBookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// =====================================================
// REFERENCE DATA
// =====================================================

func (r *postgresBookRepository) GetAuthorByName(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	query := `
		SELECT author_id, first_name, last_name
		FROM authors
		WHERE lower(first_name) = lower($1) AND lower(last_name) = lower($2)
	`

	author := &model.Author{}
	err := r.db.QueryRow(ctx, query, firstName, lastName).
		Scan(&author.ID, &author.FirstName, &author.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("author not found: %s %s", firstName, lastName)
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return author, nil
}

func (r *postgresBookRepository) CreateAuthor(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	query := `
		INSERT INTO authors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING author_id
	`

	author := &model.Author{FirstName: firstName, LastName: lastName}
	err := r.db.QueryRow(ctx, query, firstName, lastName).Scan(&author.ID)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent writer created the row first; the
			// reconciler re-reads on this.
			return nil, apperror.AlreadyExists("author already exists: %s %s", firstName, lastName)
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return author, nil
}

func (r *postgresBookRepository) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT category_id, name FROM categories WHERE lower(name) = lower($1)`

	category := &model.Category{}
	err := r.db.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("category not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *postgresBookRepository) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING category_id`

	category := &model.Category{Name: name}
	err := r.db.QueryRow(ctx, query, name).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.AlreadyExists("category already exists: %s", name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (r *postgresBookRepository) GetStatusByLabel(ctx context.Context, label string) (*model.ReadingStatus, error) {
	query := `SELECT reading_status_id, status FROM reading_statuses WHERE status = $1`

	status := &model.ReadingStatus{}
	err := r.db.QueryRow(ctx, query, label).Scan(&status.ID, &status.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("reading status not found: %s", label)
		}
		return nil, fmt.Errorf("failed to get reading status: %w", err)
	}
	return status, nil
}
