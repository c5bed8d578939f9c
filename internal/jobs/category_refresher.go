package jobs

import (
	"context"
	"log/slog"
	"time"

	"complaintfinder/internal/store"
)

// CategoryRefresher periodically reads per-category record counts and hands
// them to a sink, typically a metrics gauge.
type CategoryRefresher struct {
	counter  store.CategoryCounter
	interval time.Duration
	timeout  time.Duration
	sink     func(map[string]int)
}

// NewCategoryRefresher creates a new category refresher.
func NewCategoryRefresher(counter store.CategoryCounter, interval time.Duration, sink func(map[string]int)) *CategoryRefresher {
	return &CategoryRefresher{
		counter:  counter,
		interval: interval,
		timeout:  10 * time.Second,
		sink:     sink,
	}
}

// Start runs the refresh loop until ctx is cancelled.
func (r *CategoryRefresher) Start(ctx context.Context) {
	slog.Info("category refresher started", "interval", r.interval)

	// Run immediately on start
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("category refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh performs a single count and publishes it. Failures keep the
// previously published counts.
func (r *CategoryRefresher) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	counts, err := r.counter.CategoryCounts(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("category refresher: failed to count categories", "error", err)
		}
		return
	}
	r.sink(counts)
	slog.Debug("category refresher: counts updated", "categories", len(counts))
}
