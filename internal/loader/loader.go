// Package loader is a demo asynchronous content loader for tileset3d.
//
// The engine itself never performs I/O — RequestedTiles is a plain list the
// host is expected to drain each frame. Loader is one way to drain it: a
// bounded worker pool gated by a weighted semaphore (so a camera swing that
// requests hundreds of tiles in one frame doesn't open hundreds of
// concurrent fetches), mirroring the on-demand tile server's
// semaphore-gated render path in the reference corpus.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/arborio/tileset3d"
)

// Fetcher loads a single tile's content. Implementations are expected to
// set tile.ContentAvailable (and clear tile.ContentUnloaded) on success;
// Loader does not touch those fields itself.
type Fetcher interface {
	Fetch(ctx context.Context, tile *tileset3d.Tile) error
}

// FetcherFunc adapts a plain function to a Fetcher.
type FetcherFunc func(ctx context.Context, tile *tileset3d.Tile) error

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, tile *tileset3d.Tile) error {
	return f(ctx, tile)
}

// Loader drains a Tileset's RequestedTiles once per frame, fetching each
// tile's content on its own goroutine up to maxConcurrent at a time.
// In-flight tiles are tracked so a tile already being fetched is not
// resubmitted on the next frame's RequestedTiles, which will likely still
// list it (content doesn't become available mid-flight).
type Loader struct {
	fetcher       Fetcher
	sem           *semaphore.Weighted
	logger        *slog.Logger
	maxConcurrent int64

	mu       sync.Mutex
	inFlight map[*tileset3d.Tile]bool

	totalLoaded atomic.Int64
	totalFailed atomic.Int64
}

// New constructs a Loader backed by fetcher, allowing up to maxConcurrent
// fetches in flight at once. logger defaults to slog.Default() if nil.
func New(fetcher Fetcher, maxConcurrent int64, logger *slog.Logger) *Loader {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher:       fetcher,
		sem:           semaphore.NewWeighted(maxConcurrent),
		logger:        logger,
		maxConcurrent: maxConcurrent,
		inFlight:      make(map[*tileset3d.Tile]bool),
	}
}

// Submit launches a fetch for every tile in requested that isn't already
// in flight. It never blocks the caller past acquiring a semaphore slot for
// each newly-submitted tile — call it once per frame right after
// Tileset.SelectTiles with ts.RequestedTiles.
func (l *Loader) Submit(ctx context.Context, requested []*tileset3d.Tile) {
	for _, tile := range requested {
		l.mu.Lock()
		already := l.inFlight[tile]
		if !already {
			l.inFlight[tile] = true
		}
		l.mu.Unlock()
		if already {
			continue
		}

		if err := l.sem.Acquire(ctx, 1); err != nil {
			l.mu.Lock()
			delete(l.inFlight, tile)
			l.mu.Unlock()
			return
		}

		go l.fetch(ctx, tile)
	}
}

func (l *Loader) fetch(ctx context.Context, tile *tileset3d.Tile) {
	defer l.sem.Release(1)
	defer func() {
		l.mu.Lock()
		delete(l.inFlight, tile)
		l.mu.Unlock()
	}()

	if err := l.fetcher.Fetch(ctx, tile); err != nil {
		l.totalFailed.Add(1)
		l.logger.Error("tile fetch failed", "tile", tile.Name, "error", err)
		return
	}
	l.totalLoaded.Add(1)
	l.logger.Debug("tile fetch complete", "tile", tile.Name)
}

// Stats is a snapshot of the loader's lifetime counters.
type Stats struct {
	Loaded   int64
	Failed   int64
	InFlight int
}

// Stats returns a point-in-time snapshot of loader activity.
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	inFlight := len(l.inFlight)
	l.mu.Unlock()
	return Stats{
		Loaded:   l.totalLoaded.Load(),
		Failed:   l.totalFailed.Load(),
		InFlight: inFlight,
	}
}

// ErrFetchCanceled builds the error a Fetcher implementation can return
// when its fetch is canceled, wrapping the underlying context error with
// the tile name.
func ErrFetchCanceled(tile *tileset3d.Tile, err error) error {
	return fmt.Errorf("loader: fetch of %q canceled: %w", tile.Name, err)
}
