package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/domains/book/repository"
	reviewmodel "shelfio-backend/internal/domains/review/model"
	reviewrepo "shelfio-backend/internal/domains/review/repository"
	reviewservice "shelfio-backend/internal/domains/review/service"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/cache"
	"shelfio-backend/pkg/logger"
)

const (
	recentBooksLimit = 3

	cacheKeyAllBooks  = "books:all"
	cacheKeyStats     = "books:stats"
	bookCachePattern  = "books:*"
	bookCacheDuration = 10 * time.Minute
)

type BookService struct {
	repo          repository.BookRepository
	reviewRepo    reviewrepo.ReviewRepository
	reviewService reviewservice.ServiceInterface
	adapter       BookDataAdapter
	cache         cache.Cache
}

func NewService(
	repo repository.BookRepository,
	reviewRepo reviewrepo.ReviewRepository,
	reviewService reviewservice.ServiceInterface,
	adapter BookDataAdapter,
	c cache.Cache,
) ServiceInterface {
	return &BookService{
		repo:          repo,
		reviewRepo:    reviewRepo,
		reviewService: reviewService,
		adapter:       adapter,
		cache:         c,
	}
}

// =====================================================
// HELPERS
// =====================================================

func (s *BookService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, bookCachePattern); err != nil {
		logger.Error("failed to invalidate book cache", err)
	}
}

func (s *BookService) toResponse(ctx context.Context, book *model.Book) (*model.BookResponse, error) {
	reviews, err := s.reviewRepo.ListByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	resp := model.ToBookResponse(book, reviewmodel.ToReviewResponses(reviews))
	return &resp, nil
}

func (s *BookService) toResponses(ctx context.Context, books []*model.Book) ([]model.BookResponse, error) {
	if len(books) == 0 {
		return []model.BookResponse{}, nil
	}

	ids := make([]int64, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}

	reviewsByBook, err := s.reviewRepo.ListByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]model.BookResponse, len(books))
	for i, b := range books {
		responses[i] = model.ToBookResponse(b, reviewmodel.ToReviewResponses(reviewsByBook[b.ID]))
	}
	return responses, nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// =====================================================
// INGESTION
// =====================================================

func (s *BookService) AddBookByISBN(ctx context.Context, isbn string) (*model.BookResponse, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, apperror.InvalidInput("isbn cannot be empty")
	}

	// Idempotent: a known ISBN returns the existing record unchanged.
	existing, err := s.repo.GetBookByISBN(ctx, isbn)
	if err == nil {
		logger.Info("book already in catalog", map[string]interface{}{"isbn": isbn})
		return s.toResponse(ctx, existing)
	}
	if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	external, err := s.adapter.FetchByISBN(ctx, isbn)
	if err != nil {
		return nil, apperror.ExternalService(
			fmt.Sprintf("failed to fetch book metadata for ISBN %s", isbn), err)
	}
	if external == nil {
		return nil, apperror.ExternalService(
			fmt.Sprintf("no book found for ISBN: %s", isbn), nil)
	}

	var created *model.Book
	err = s.repo.WithinTx(ctx, func(txRepo repository.BookRepository) error {
		rec := NewReconciler(txRepo)

		author, err := rec.FindOrCreateAuthor(ctx, external.AuthorFirstName, external.AuthorLastName)
		if err != nil {
			return err
		}

		category, err := rec.FindOrCreateCategory(ctx, FirstCategory(external.Categories))
		if err != nil {
			return err
		}

		notStarted, err := txRepo.GetStatusByLabel(ctx, string(model.StatusNotStarted))
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return model.ErrStatusSeedMissing(string(model.StatusNotStarted))
			}
			return err
		}

		book := &model.Book{
			Title:     external.Title,
			ISBN:      &isbn,
			PagesRead: 0,
			AuthorID:  author.ID,
		}
		book.CategoryID = &category.ID
		book.StatusID = &notStarted.ID
		if external.Pages > 0 {
			pages := external.Pages
			book.Pages = &pages
		}
		if external.Publisher != "" {
			publisher := external.Publisher
			book.Publisher = &publisher
		}
		if external.CoverURL != "" {
			cover := external.CoverURL
			book.CoverURL = &cover
		}

		created, err = txRepo.CreateBook(ctx, book)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("added book by isbn", map[string]interface{}{
		"book_id": created.ID,
		"isbn":    isbn,
		"title":   created.Title,
	})
	s.invalidateCache(ctx)

	return s.toResponse(ctx, created)
}

func (s *BookService) CreateBookManually(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput("%s", err.Error())
	}

	// The status label must match one of the fixed three, as given.
	if _, ok := model.ParseStatus(strings.TrimSpace(req.Status)); !ok {
		return nil, model.ErrInvalidStatus(req.Status)
	}

	isbn := optionalString(req.ISBN)
	if isbn != nil {
		if _, err := s.repo.GetBookByISBN(ctx, *isbn); err == nil {
			return nil, model.ErrISBNAlreadyExists(*isbn)
		} else if apperror.KindOf(err) != apperror.KindNotFound {
			return nil, err
		}
	}

	var created *model.Book
	err := s.repo.WithinTx(ctx, func(txRepo repository.BookRepository) error {
		rec := NewReconciler(txRepo)

		author, err := rec.FindOrCreateAuthor(ctx, req.AuthorFirstName, req.AuthorLastName)
		if err != nil {
			return err
		}

		category, err := rec.FindOrCreateCategory(ctx, req.Category)
		if err != nil {
			return err
		}

		status, err := txRepo.GetStatusByLabel(ctx, strings.TrimSpace(req.Status))
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return model.ErrInvalidStatus(req.Status)
			}
			return err
		}

		book := &model.Book{
			Title:     strings.TrimSpace(req.Title),
			ISBN:      isbn,
			Pages:     req.Pages,
			PagesRead: 0,
			Publisher: optionalString(req.Publisher),
			CoverURL:  optionalString(req.CoverURL),
			AuthorID:  author.ID,
		}
		book.CategoryID = &category.ID
		book.StatusID = &status.ID

		created, err = txRepo.CreateBook(ctx, book)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("manually created book", map[string]interface{}{
		"book_id": created.ID,
		"title":   created.Title,
	})
	s.invalidateCache(ctx)

	return s.toResponse(ctx, created)
}

// =====================================================
// MUTATIONS
// =====================================================

// DeleteBook removes a book with its dependents in one transaction:
// reviews first, then collection memberships, then the book row.
func (s *BookService) DeleteBook(ctx context.Context, bookID int64) error {
	if bookID <= 0 {
		return apperror.InvalidInput("book ID is required")
	}

	err := s.repo.WithinTx(ctx, func(txRepo repository.BookRepository) error {
		if err := txRepo.DeleteReviewsByBook(ctx, bookID); err != nil {
			return err
		}
		if err := txRepo.DeleteMembershipsByBook(ctx, bookID); err != nil {
			return err
		}
		return txRepo.DeleteBookRow(ctx, bookID)
	})
	if err != nil {
		return err
	}

	logger.Info("deleted book", map[string]interface{}{"book_id": bookID})
	s.invalidateCache(ctx)
	return nil
}

func (s *BookService) UpdateReadingStatus(ctx context.Context, bookID int64, statusLabel string) (*model.BookResponse, error) {
	if bookID <= 0 {
		return nil, apperror.InvalidInput("book ID is required")
	}
	statusLabel = strings.TrimSpace(statusLabel)
	if statusLabel == "" {
		return nil, apperror.InvalidInput("status cannot be empty")
	}

	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if _, ok := model.ParseStatus(statusLabel); !ok {
		return nil, model.ErrInvalidStatus(statusLabel)
	}

	status, err := s.repo.GetStatusByLabel(ctx, statusLabel)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, model.ErrInvalidStatus(statusLabel)
		}
		return nil, err
	}

	if err := s.repo.UpdateReadingStatus(ctx, book.ID, status.ID); err != nil {
		return nil, err
	}

	logger.Info("updated reading status", map[string]interface{}{
		"book_id": bookID,
		"status":  statusLabel,
	})
	s.invalidateCache(ctx)

	updated, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

func (s *BookService) UpdatePagesRead(ctx context.Context, bookID int64, pagesRead int) (*model.BookResponse, error) {
	if bookID <= 0 {
		return nil, apperror.InvalidInput("book ID is required")
	}
	if pagesRead < 0 {
		return nil, apperror.InvalidInput("pages read cannot be negative")
	}

	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if book.Pages != nil && pagesRead > *book.Pages {
		return nil, apperror.InvalidInput(
			"pages read (%d) cannot exceed total pages (%d)", pagesRead, *book.Pages)
	}

	if err := s.repo.UpdatePagesRead(ctx, bookID, pagesRead); err != nil {
		return nil, err
	}

	logger.Info("updated pages read", map[string]interface{}{
		"book_id":    bookID,
		"pages_read": pagesRead,
	})
	s.invalidateCache(ctx)

	updated, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

func (s *BookService) AddReview(ctx context.Context, bookID int64, req reviewmodel.AddReviewRequest) (*model.BookResponse, error) {
	if _, err := s.reviewService.AddReview(ctx, bookID, req); err != nil {
		return nil, err
	}

	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

// =====================================================
// QUERIES
// =====================================================

func (s *BookService) GetBooksByStatus(ctx context.Context, status string) ([]model.BookResponse, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperror.InvalidInput("status cannot be empty")
	}

	books, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, books)
}

func (s *BookService) GetBooksByCategory(ctx context.Context, category string) ([]model.BookResponse, error) {
	if strings.TrimSpace(category) == "" {
		return nil, apperror.InvalidInput("category cannot be empty")
	}

	books, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, books)
}

func (s *BookService) GetTotalPagesRead(ctx context.Context) (int, error) {
	var stats model.LibraryStats
	if found, err := s.cache.Get(ctx, cacheKeyStats, &stats); err != nil {
		logger.Error("book stats cache read failed", err)
	} else if found {
		return stats.TotalPagesRead, nil
	}

	total, err := s.repo.TotalPagesRead(ctx)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}

	stats = model.LibraryStats{TotalBooks: count, TotalPagesRead: total}
	if err := s.cache.Set(ctx, cacheKeyStats, stats, bookCacheDuration); err != nil {
		logger.Error("book stats cache write failed", err)
	}

	return total, nil
}

func (s *BookService) GetLatestBook(ctx context.Context) (*model.BookResponse, error) {
	book, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

func (s *BookService) GetRecentBooks(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.repo.ListRecent(ctx, recentBooksLimit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, books)
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]model.BookResponse, error) {
	var cached []model.BookResponse
	if found, err := s.cache.Get(ctx, cacheKeyAllBooks, &cached); err != nil {
		logger.Error("book list cache read failed", err)
	} else if found {
		return cached, nil
	}

	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, books)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyAllBooks, responses, bookCacheDuration); err != nil {
		logger.Error("book list cache write failed", err)
	}

	return responses, nil
}

func (s *BookService) GetBooksCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
