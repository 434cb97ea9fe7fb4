package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Load reads the user's full record list from disk.
func (s *implStore) Load(ctx context.Context, username string) ([]Record, error) {
	path, err := s.userFile(username)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read history for %s: %w", username, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history for %s: %w", username, err)
	}

	return records, nil
}

// Append performs the read-modify-write of the whole list under the
// user's lock and persists via temp file + rename.
func (s *implStore) Append(ctx context.Context, username string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.Load(ctx, username)
	if err != nil {
		return err
	}

	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history for %s: %w", username, err)
	}

	path, err := s.userFile(username)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history for %s: %w", username, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist history for %s: %w", username, err)
	}

	return nil
}

func (s *implStore) userLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[username] = lock
	}
	return lock
}

func (s *implStore) userFile(username string) (string, error) {
	if username == "" || strings.ContainsAny(username, `/\`) || username != filepath.Base(username) {
		return "", fmt.Errorf("invalid username %q", username)
	}
	return filepath.Join(s.dir, username+".json"), nil
}
