package bootstrap

import (
	"context"
	"fmt"

	bookmodel "shelfio-backend/internal/domains/book/model"
	collectionmodel "shelfio-backend/internal/domains/collection/model"
	"shelfio-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts the fixed reference rows the catalog depends on: the
// three reading statuses and the default collection. Safe to run on
// every startup.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedReadingStatuses(ctx, pool); err != nil {
		return err
	}
	return seedDefaultCollection(ctx, pool)
}

func seedReadingStatuses(ctx context.Context, pool *pgxpool.Pool) error {
	for _, status := range bookmodel.AllStatuses() {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM reading_statuses WHERE status = $1)`,
			string(status),
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check reading status %q: %w", status, err)
		}
		if exists {
			continue
		}

		if _, err := pool.Exec(ctx,
			`INSERT INTO reading_statuses (status) VALUES ($1)`, string(status),
		); err != nil {
			return fmt.Errorf("failed to seed reading status %q: %w", status, err)
		}
		logger.Info("seeded reading status", map[string]interface{}{"status": string(status)})
	}
	return nil
}

func seedDefaultCollection(ctx context.Context, pool *pgxpool.Pool) error {
	name := collectionmodel.DefaultCollectionName

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM collections WHERE lower(name) = lower($1))`, name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check default collection: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO collections (name) VALUES ($1)`, name,
	); err != nil {
		return fmt.Errorf("failed to seed default collection: %w", err)
	}
	logger.Info("seeded default collection", map[string]interface{}{"name": name})
	return nil
}
