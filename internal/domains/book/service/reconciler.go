package service

import (
	"context"
	"strings"

	"shelfio-backend/internal/domains/book/model"
	"shelfio-backend/internal/domains/book/repository"
	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/pkg/logger"
)

// Reconciler maps free-text author and category names onto stable
// reference rows, case-insensitively, so repeated ingestion never
// duplicates them.
//
// The find-or-create paths race against concurrent writers. The policy
// is retry-on-conflict by re-reading: inserts are guarded by unique
// indexes on the lowercased names, and a conflict from a concurrent
// first-time create is resolved by reading the row the winner wrote.
type Reconciler struct {
	repo repository.BookRepository
}

// NewReconciler binds a reconciler to a repository, typically a
// transaction-bound one inside WithinTx.
func NewReconciler(repo repository.BookRepository) *Reconciler {
	return &Reconciler{repo: repo}
}

func (r *Reconciler) FindOrCreateAuthor(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apperror.InvalidInput("author first name and last name cannot be empty")
	}

	author, err := r.repo.GetAuthorByName(ctx, firstName, lastName)
	if err == nil {
		return author, nil
	}
	if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	author, err = r.repo.CreateAuthor(ctx, firstName, lastName)
	if err == nil {
		logger.Info("created author", map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
		})
		return author, nil
	}
	if apperror.KindOf(err) == apperror.KindAlreadyExists {
		// Lost the race to a concurrent writer; their row wins.
		return r.repo.GetAuthorByName(ctx, firstName, lastName)
	}

	return nil, err
}

// FindOrCreateCategory resolves a category name, falling back to the
// default label when the source provided none.
func (r *Reconciler) FindOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultCategoryName
	}

	category, err := r.repo.GetCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	category, err = r.repo.CreateCategory(ctx, name)
	if err == nil {
		logger.Info("created category", map[string]interface{}{"name": name})
		return category, nil
	}
	if apperror.KindOf(err) == apperror.KindAlreadyExists {
		return r.repo.GetCategoryByName(ctx, name)
	}

	return nil, err
}

// FirstCategory picks the category to reconcile from an external
// category list: the first entry, or empty for the default.
func FirstCategory(categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	return categories[0]
}
