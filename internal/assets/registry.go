package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
)

var ErrNotFound = errors.New("asset not found or already retrieved")

type entry struct {
	asset Asset
	path  string
}

type implRegistry struct {
	ttl    time.Duration
	logger logger.Logger

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a Registry whose janitor reaps assets older than ttl.
func New(ttl time.Duration, log logger.Logger) Registry {
	return &implRegistry{
		ttl:     ttl,
		logger:  log,
		entries: make(map[string]entry),
	}
}

func (r *implRegistry) Put(path, filename, contentType string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat asset: %w", err)
	}

	id := uuid.NewString()

	r.mu.Lock()
	r.entries[id] = entry{
		asset: Asset{
			ID:          id,
			Filename:    filename,
			ContentType: contentType,
			Size:        info.Size(),
			CreatedAt:   time.Now(),
		},
		path: path,
	}
	r.mu.Unlock()

	return id, nil
}

func (r *implRegistry) Open(id string) (*Download, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	f, err := os.Open(e.path)
	if err != nil {
		// Give the entry back so the asset stays retryable and the TTL
		// janitor can still reap the file.
		r.mu.Lock()
		r.entries[id] = e
		r.mu.Unlock()
		return nil, fmt.Errorf("open asset: %w", err)
	}

	path := e.path
	return &Download{
		Asset:  e.asset,
		Reader: f,
		remove: func() {
			if err := os.Remove(path); err != nil {
				r.logger.Warn(context.Background(), "Failed to delete asset %s: %v", path, err)
			}
		},
	}, nil
}

// Run sweeps expired assets once a minute until ctx is cancelled.
func (r *implRegistry) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx, time.Now())
		}
	}
}

func (r *implRegistry) sweep(ctx context.Context, now time.Time) {
	r.mu.Lock()
	var expired []entry
	for id, e := range r.entries {
		if now.Sub(e.asset.CreatedAt) > r.ttl {
			expired = append(expired, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		r.logger.Info(ctx, "Reaping unclaimed asset: %s", e.asset.Filename)
		if err := os.Remove(e.path); err != nil {
			r.logger.Warn(ctx, "Failed to delete expired asset %s: %v", e.path, err)
		}
	}
}
