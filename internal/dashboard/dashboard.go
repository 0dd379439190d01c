package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"talentplay/internal/live"
	"talentplay/internal/models"
)

// Fetcher retrieves the authoritative result list from the server.
type Fetcher interface {
	FetchResults(ctx context.Context) ([]models.EvaluationResult, error)
}

// Dashboard is the client-side poller/renderer state. Two independent
// triggers feed one Refresh operation: live channel events and a fixed
// interval poll. Neither assumes the other is reliable; the channel is an
// optimization, the poll is the guarantee.
type Dashboard struct {
	fetcher      Fetcher
	events       <-chan live.Event
	pollInterval time.Duration
	pageSize     int

	mu    sync.RWMutex
	cache ResultListCache
}

// New creates a dashboard over fetcher. events may be nil when running in
// poll-only mode.
func New(fetcher Fetcher, events <-chan live.Event, pollInterval time.Duration, pageSize int) *Dashboard {
	return &Dashboard{
		fetcher:      fetcher,
		events:       events,
		pollInterval: pollInterval,
		pageSize:     pageSize,
	}
}

// Refresh fetches the full list and replaces the cache wholesale. On
// failure the previous snapshot stays; the next trigger retries.
func (d *Dashboard) Refresh(ctx context.Context) error {
	results, err := d.fetcher.FetchResults(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cache = NewCache(results, time.Now())
	d.mu.Unlock()

	return nil
}

// Run refreshes on every live event and on every poll tick until ctx is
// cancelled. Poll failures are logged and absorbed; the user only sees an
// error if failures persist past staleness the poll would have fixed.
func (d *Dashboard) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.events:
			if !ok {
				d.events = nil
				continue
			}
			if err := d.Refresh(ctx); err != nil {
				slog.Warn("Dashboard refresh after live event failed", "event", event.Type, "error", err)
			}
		case <-ticker.C:
			if err := d.Refresh(ctx); err != nil {
				slog.Warn("Dashboard poll refresh failed", "error", err)
			}
		}
	}
}

// Page returns the 1-based page over the current snapshot. Navigation
// re-renders from the cache; it does not trigger a fetch.
func (d *Dashboard) Page(number int) Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cache.Page(number, d.pageSize)
}

// Snapshot returns the current cache value.
func (d *Dashboard) Snapshot() ResultListCache {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cache
}
