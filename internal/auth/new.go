package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type implStore struct {
	path string

	mu    sync.Mutex
	users map[string]Credential
}

// New creates a Store backed by a single JSON file holding the full
// username -> credential mapping. The file is loaded once here and
// rewritten whole on every Create.
func New(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}

	s := &implStore{
		path:  path,
		users: make(map[string]Credential),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	if err := json.Unmarshal(data, &s.users); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return s, nil
}
