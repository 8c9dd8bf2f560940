package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"shelfio-backend/internal/adapter/googlebooks"
	"shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/domains/book/repository"
	reviewmodel "shelfio-backend/internal/domains/review/model"
	reviewservice "shelfio-backend/internal/domains/review/service"
	"shelfio-backend/internal/shared/apperror"
)

// fakeBookRepo is an in-memory BookRepository. WithinTx runs the
// callback against the same store, which is enough: service tests
// assert on outcomes, not on transactional isolation.
type fakeBookRepo struct {
	mu         sync.Mutex
	books      map[int64]*model.Book
	authors    []*model.Author
	categories []*model.Category
	statuses   []*model.ReadingStatus
	nextBookID int64

	// memberships maps book id to the collections holding it, and
	// reviewRepo mirrors the reviews table, so the delete primitives
	// have dependents to clean up.
	memberships map[int64][]int64
	reviewRepo  *fakeReviewRepo

	// raceAuthor / raceCategory simulate losing an insert race: the
	// next matching Create call stores the row as if a concurrent
	// writer had won, then reports a conflict.
	raceAuthor   *model.Author
	raceCategory *model.Category
}

func newFakeBookRepo() *fakeBookRepo {
	r := &fakeBookRepo{
		books:       make(map[int64]*model.Book),
		memberships: make(map[int64][]int64),
	}
	for i, s := range model.AllStatuses() {
		r.statuses = append(r.statuses, &model.ReadingStatus{ID: int64(i + 1), Status: s})
	}
	return r
}

func (r *fakeBookRepo) WithinTx(ctx context.Context, fn func(repository.BookRepository) error) error {
	return fn(r)
}

func (r *fakeBookRepo) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ISBN != nil {
		for _, b := range r.books {
			if b.ISBN != nil && *b.ISBN == *book.ISBN {
				return nil, model.ErrISBNAlreadyExists(*book.ISBN)
			}
		}
	}

	r.nextBookID++
	stored := *book
	stored.ID = r.nextBookID
	r.fillDisplayFields(&stored)
	r.books[stored.ID] = &stored

	out := stored
	return &out, nil
}

// fillDisplayFields mirrors the repository's join queries.
func (r *fakeBookRepo) fillDisplayFields(book *model.Book) {
	for _, a := range r.authors {
		if a.ID == book.AuthorID {
			book.AuthorFirstName = a.FirstName
			book.AuthorLastName = a.LastName
		}
	}
	if book.CategoryID != nil {
		for _, c := range r.categories {
			if c.ID == *book.CategoryID {
				name := c.Name
				book.CategoryName = &name
			}
		}
	}
	if book.StatusID != nil {
		for _, s := range r.statuses {
			if s.ID == *book.StatusID {
				label := string(s.Status)
				book.StatusLabel = &label
			}
		}
	}
}

func (r *fakeBookRepo) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound(id)
	}
	out := *book
	return &out, nil
}

func (r *fakeBookRepo) GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.books {
		if b.ISBN != nil && *b.ISBN == isbn {
			out := *b
			return &out, nil
		}
	}
	return nil, apperror.NotFound("book not found with ISBN: %s", isbn)
}

func (r *fakeBookRepo) DeleteBookRow(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound(id)
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) DeleteReviewsByBook(ctx context.Context, bookID int64) error {
	r.reviewRepo.deleteByBook(bookID)
	return nil
}

func (r *fakeBookRepo) DeleteMembershipsByBook(ctx context.Context, bookID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memberships, bookID)
	return nil
}

func (r *fakeBookRepo) UpdateReadingStatus(ctx context.Context, bookID, statusID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[bookID]
	if !ok {
		return model.ErrBookNotFound(bookID)
	}
	book.StatusID = &statusID
	r.fillDisplayFields(book)
	return nil
}

func (r *fakeBookRepo) UpdatePagesRead(ctx context.Context, bookID int64, pagesRead int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[bookID]
	if !ok {
		return model.ErrBookNotFound(bookID)
	}
	book.PagesRead = pagesRead
	return nil
}

// sortedDesc returns the stored books newest-first, matching the
// repository's ORDER BY book_id DESC.
func (r *fakeBookRepo) sortedDesc() []*model.Book {
	books := make([]*model.Book, 0, len(r.books))
	for _, b := range r.books {
		out := *b
		books = append(books, &out)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID > books[j].ID })
	return books
}

func (r *fakeBookRepo) ListByStatus(ctx context.Context, status string) ([]*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Book
	for _, b := range r.sortedDesc() {
		if b.StatusLabel != nil && strings.EqualFold(*b.StatusLabel, status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) ListByCategory(ctx context.Context, category string) ([]*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Book
	for _, b := range r.sortedDesc() {
		if b.CategoryName != nil && strings.EqualFold(*b.CategoryName, category) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) ListAll(ctx context.Context) ([]*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedDesc(), nil
}

func (r *fakeBookRepo) ListRecent(ctx context.Context, limit int) ([]*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := r.sortedDesc()
	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (r *fakeBookRepo) ListByCollection(ctx context.Context, collectionID int64) ([]*model.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) Latest(ctx context.Context) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := r.sortedDesc()
	if len(books) == 0 {
		return nil, model.ErrNoBooks()
	}
	return books[0], nil
}

func (r *fakeBookRepo) TotalPagesRead(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, b := range r.books {
		total += b.PagesRead
	}
	return total, nil
}

func (r *fakeBookRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.books)), nil
}

func (r *fakeBookRepo) GetAuthorByName(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if strings.EqualFold(a.FirstName, firstName) && strings.EqualFold(a.LastName, lastName) {
			out := *a
			return &out, nil
		}
	}
	return nil, apperror.NotFound("author not found: %s %s", firstName, lastName)
}

func (r *fakeBookRepo) CreateAuthor(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.raceAuthor != nil {
		r.authors = append(r.authors, r.raceAuthor)
		r.raceAuthor = nil
		return nil, apperror.AlreadyExists("author already exists: %s %s", firstName, lastName)
	}

	for _, a := range r.authors {
		if strings.EqualFold(a.FirstName, firstName) && strings.EqualFold(a.LastName, lastName) {
			return nil, apperror.AlreadyExists("author already exists: %s %s", firstName, lastName)
		}
	}

	author := &model.Author{
		ID:        int64(len(r.authors) + 1),
		FirstName: firstName,
		LastName:  lastName,
	}
	r.authors = append(r.authors, author)

	out := *author
	return &out, nil
}

func (r *fakeBookRepo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			out := *c
			return &out, nil
		}
	}
	return nil, apperror.NotFound("category not found: %s", name)
}

func (r *fakeBookRepo) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.raceCategory != nil {
		r.categories = append(r.categories, r.raceCategory)
		r.raceCategory = nil
		return nil, apperror.AlreadyExists("category already exists: %s", name)
	}

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return nil, apperror.AlreadyExists("category already exists: %s", name)
		}
	}

	category := &model.Category{ID: int64(len(r.categories) + 1), Name: name}
	r.categories = append(r.categories, category)

	out := *category
	return &out, nil
}

func (r *fakeBookRepo) GetStatusByLabel(ctx context.Context, label string) (*model.ReadingStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.statuses {
		if string(s.Status) == label {
			out := *s
			return &out, nil
		}
	}
	return nil, apperror.NotFound("reading status not found: %s", label)
}

// fakeReviewRepo is an in-memory ReviewRepository sharing book
// existence with a fakeBookRepo.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[int64]*reviewmodel.Review
	nextID  int64
	books   *fakeBookRepo
}

func newFakeReviewRepo(books *fakeBookRepo) *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*reviewmodel.Review), books: books}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *reviewmodel.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	review.ID = r.nextID
	stored := *review
	r.reviews[stored.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*reviewmodel.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, reviewmodel.ErrReviewNotFound(id)
	}
	out := *review
	return &out, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *reviewmodel.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reviews[review.ID]
	if !ok {
		return reviewmodel.ErrReviewNotFound(review.ID)
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return reviewmodel.ErrReviewNotFound(id)
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListByBook(ctx context.Context, bookID int64) ([]*reviewmodel.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*reviewmodel.Review
	for _, review := range r.reviews {
		if review.BookID == bookID {
			c := *review
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) ListByBookIDs(ctx context.Context, bookIDs []int64) (map[int64][]*reviewmodel.Review, error) {
	result := make(map[int64][]*reviewmodel.Review)
	for _, id := range bookIDs {
		reviews, err := r.ListByBook(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(reviews) > 0 {
			result[id] = reviews
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) deleteByBook(bookID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, review := range r.reviews {
		if review.BookID == bookID {
			delete(r.reviews, id)
		}
	}
}

func (r *fakeReviewRepo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	r.books.mu.Lock()
	defer r.books.mu.Unlock()
	_, ok := r.books.books[bookID]
	return ok, nil
}

// fakeAdapter is a canned BookDataAdapter.
type fakeAdapter struct {
	book  *googlebooks.ExternalBook
	err   error
	calls int
}

func (a *fakeAdapter) FetchByISBN(ctx context.Context, isbn string) (*googlebooks.ExternalBook, error) {
	a.calls++
	return a.book, a.err
}

// fakeCache stores JSON blobs in memory.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
		}
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func newTestService() (*fakeBookRepo, *fakeReviewRepo, *fakeAdapter, *fakeCache, ServiceInterface) {
	repo := newFakeBookRepo()
	reviews := newFakeReviewRepo(repo)
	repo.reviewRepo = reviews
	adapter := &fakeAdapter{}
	c := newFakeCache()

	reviewSvc := reviewservice.NewService(reviews, c)
	svc := NewService(repo, reviews, reviewSvc, adapter, c)
	return repo, reviews, adapter, c, svc
}
