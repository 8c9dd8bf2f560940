package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfio-backend/internal/domains/review/model"
	"shelfio-backend/internal/shared/apperror"
)

// memRepo is an in-memory ReviewRepository over a fixed set of
// existing book ids.
type memRepo struct {
	mu      sync.Mutex
	reviews map[int64]*model.Review
	nextID  int64
	bookIDs map[int64]bool
}

func newMemRepo(bookIDs ...int64) *memRepo {
	r := &memRepo{
		reviews: make(map[int64]*model.Review),
		bookIDs: make(map[int64]bool),
	}
	for _, id := range bookIDs {
		r.bookIDs[id] = true
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	review.ID = r.nextID
	stored := *review
	r.reviews[stored.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound(id)
	}
	out := *review
	return &out, nil
}

func (r *memRepo) Update(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reviews[review.ID]
	if !ok {
		return model.ErrReviewNotFound(review.ID)
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return model.ErrReviewNotFound(id)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memRepo) ListByBook(ctx context.Context, bookID int64) ([]*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Review
	for _, review := range r.reviews {
		if review.BookID == bookID {
			c := *review
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) ListByBookIDs(ctx context.Context, bookIDs []int64) (map[int64][]*model.Review, error) {
	result := make(map[int64][]*model.Review)
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

func (r *memRepo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookIDs[bookID], nil
}

// noopCache records invalidations and never hits.
type noopCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *noopCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *noopCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

func (c *noopCache) Ping(ctx context.Context) error { return nil }

func newTestService(bookIDs ...int64) (*memRepo, *noopCache, ServiceInterface) {
	repo := newMemRepo(bookIDs...)
	c := &noopCache{}
	return repo, c, NewService(repo, c)
}

func TestAddReview(t *testing.T) {
	_, c, svc := newTestService(1)

	comment := "solid"
	review, err := svc.AddReview(context.Background(), 1, model.AddReviewRequest{
		Rating:  4,
		Comment: &comment,
	})
	require.NoError(t, err)

	assert.NotZero(t, review.ID)
	assert.Equal(t, 4, review.Rating)
	assert.False(t, review.CreatedAt.IsZero())
	assert.Equal(t, 1, c.invalidated)
}

func TestAddReview_BookNotFound(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.AddReview(context.Background(), 42, model.AddReviewRequest{Rating: 3})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAddReview_RatingBounds(t *testing.T) {
	_, _, svc := newTestService(1)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.AddReview(ctx, 1, model.AddReviewRequest{Rating: rating})
		assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err), "rating %d", rating)
	}

	for _, rating := range []int{1, 5} {
		_, err := svc.AddReview(ctx, 1, model.AddReviewRequest{Rating: rating})
		assert.NoError(t, err, "rating %d", rating)
	}
}

func TestAddReview_CommentTooLong(t *testing.T) {
	_, _, svc := newTestService(1)

	comment := strings.Repeat("x", model.MaxCommentLength+1)
	_, err := svc.AddReview(context.Background(), 1, model.AddReviewRequest{
		Rating:  3,
		Comment: &comment,
	})
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}

func TestUpdateReview_KeepsCreatedAt(t *testing.T) {
	repo, _, svc := newTestService(1)
	ctx := context.Background()

	created, err := svc.AddReview(ctx, 1, model.AddReviewRequest{Rating: 2})
	require.NoError(t, err)

	comment := "better on a second read"
	updated, err := svc.UpdateReview(ctx, created.ID, model.UpdateReviewRequest{
		Rating:  5,
		Comment: &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
}

func TestUpdateReview_NotFound(t *testing.T) {
	_, _, svc := newTestService(1)

	_, err := svc.UpdateReview(context.Background(), 99, model.UpdateReviewRequest{Rating: 3})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteReview(t *testing.T) {
	repo, _, svc := newTestService(1)
	ctx := context.Background()

	created, err := svc.AddReview(ctx, 1, model.AddReviewRequest{Rating: 3})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, created.ID))
	assert.Empty(t, repo.reviews)

	err = svc.DeleteReview(ctx, created.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetReviewsByBook(t *testing.T) {
	_, _, svc := newTestService(1)
	ctx := context.Background()

	for _, rating := range []int{3, 5} {
		_, err := svc.AddReview(ctx, 1, model.AddReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	reviews, err := svc.GetReviewsByBook(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	// Newest first.
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestGetReviewsByBook_BookNotFound(t *testing.T) {
	_, _, svc := newTestService(1)

	_, err := svc.GetReviewsByBook(context.Background(), 2)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetReviewsByBook_EmptyIsNotAnError(t *testing.T) {
	_, _, svc := newTestService(1)

	reviews, err := svc.GetReviewsByBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
