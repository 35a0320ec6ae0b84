package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"readtrack/internal/models"
)

// ============================================================================
// DATA STRUCTURES
// ============================================================================

// Snapshot is the result of one successful fetch cycle.
type Snapshot struct {
	PopularBooks   []models.Book
	DashboardStats *models.DashboardStats
	FetchedAt      time.Time
}

// ============================================================================
// INTERFACE DEFINITION
// ============================================================================

// DataProvider defines the contract for the two dashboard reads.
type DataProvider interface {
	PopularBooks(ctx context.Context) ([]models.Book, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// ============================================================================
// FETCH CYCLE
// ============================================================================

// Collect issues both reads concurrently and returns only when both have
// succeeded. The first failure is returned immediately without waiting for
// the sibling read, which is cancelled; partial results are never returned.
func Collect(ctx context.Context, p DataProvider) (*Snapshot, error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var books []models.Book
	var stats *models.DashboardStats

	// Buffered for both reads so a losing goroutine never blocks.
	failed := make(chan error, 2)

	g.Go(func() error {
		res, err := p.PopularBooks(gctx)
		if err != nil {
			err = fmt.Errorf("popular books: %w", err)
			failed <- err
			return err
		}
		books = res
		return nil
	})

	g.Go(func() error {
		res, err := p.DashboardStats(gctx)
		if err != nil {
			err = fmt.Errorf("dashboard stats: %w", err)
			failed <- err
			return err
		}
		stats = res
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	var err error
	select {
	case err = <-failed:
	case err = <-done:
	}
	if err == nil && stats == nil {
		err = errors.New("dashboard stats: empty response")
	}
	if err != nil {
		slog.Warn("fetch cycle failed", slog.Any("err", err), slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	if books == nil {
		books = []models.Book{}
	}

	slog.Debug("fetch cycle succeeded",
		slog.Int("books", len(books)),
		slog.Int("top_authors", len(stats.UserTopAuthors)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &Snapshot{
		PopularBooks:   books,
		DashboardStats: stats,
		FetchedAt:      time.Now(),
	}, nil
}
