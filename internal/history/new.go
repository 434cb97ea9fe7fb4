package history

import (
	"fmt"
	"os"
	"sync"
)

type implStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a file-backed Store rooted at dir, one JSON file per user.
func New(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	return &implStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}
