package relational

import (
	"context"

	"readtrack/internal/models"
)

// LocalProvider serves the dashboard reads straight from the database,
// skipping HTTP. It satisfies collector.DataProvider.
type LocalProvider struct {
	store Store
	limit int
}

func NewLocalProvider(store Store, limit int) *LocalProvider {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return &LocalProvider{store: store, limit: limit}
}

func (p *LocalProvider) PopularBooks(ctx context.Context) ([]models.Book, error) {
	return p.store.PopularBooks(ctx, p.limit)
}

func (p *LocalProvider) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return p.store.DashboardStats(ctx)
}
