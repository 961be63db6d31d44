package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/tidytask/internal/logger"
)

// Fetcher is the part of the store the refresher drives
type Fetcher interface {
	FetchTodos(ctx context.Context)
	FetchTrash(ctx context.Context)
}

// AutoRefresh reloads todos and trash in the background so changes made by
// other clients show up without a manual refresh.
type AutoRefresh struct {
	fetcher      Fetcher
	pollInterval time.Duration
	debounceTime time.Duration
	pending      bool
	mu           sync.Mutex
	stopCh       chan struct{}
	stopOnce     sync.Once
	onRefresh    func() // Callback after each background refresh
}

// New creates and starts a refresher. A non-positive interval disables
// polling; Trigger still works.
func New(fetcher Fetcher, interval time.Duration) *AutoRefresh {
	a := &AutoRefresh{
		fetcher:      fetcher,
		pollInterval: interval,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
	}

	if interval > 0 {
		go a.pollLoop()
	}

	return a
}

// SetOnRefresh sets a callback to be called after each background refresh
func (a *AutoRefresh) SetOnRefresh(callback func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onRefresh = callback
}

func (a *AutoRefresh) pollLoop() {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.refresh()
		case <-a.stopCh:
			return
		}
	}
}

func (a *AutoRefresh) refresh() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-a.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Debug("Background refresh")
	a.fetcher.FetchTodos(ctx)
	a.fetcher.FetchTrash(ctx)

	a.mu.Lock()
	callback := a.onRefresh
	a.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// Trigger schedules a refresh (debounced)
func (a *AutoRefresh) Trigger() {
	a.mu.Lock()
	if !a.pending {
		a.pending = true
		go a.debouncedRefresh()
	}
	a.mu.Unlock()
}

func (a *AutoRefresh) debouncedRefresh() {
	timer := time.NewTimer(a.debounceTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		a.mu.Lock()
		a.pending = false
		a.mu.Unlock()
		a.refresh()
	case <-a.stopCh:
		return
	}
}

// IsPending returns true if a refresh is scheduled
func (a *AutoRefresh) IsPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Stop stops the refresher. It is safe to call more than once.
func (a *AutoRefresh) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}
