package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var reUsername = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{2,31}$`)

func (s *implStore) Create(ctx context.Context, username, displayName, password string) error {
	if !reUsername.MatchString(username) {
		return ErrInvalidUsername
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.users[username] = Credential{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}

	if err := s.persist(); err != nil {
		// Roll back so a failed write doesn't leave a phantom account
		// that was never persisted.
		delete(s.users, username)
		return err
	}

	return nil
}

func (s *implStore) Verify(ctx context.Context, username, password string) error {
	s.mu.Lock()
	cred, exists := s.users[username]
	s.mu.Unlock()

	if !exists {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *implStore) Get(ctx context.Context, username string) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, exists := s.users[username]
	if !exists {
		return Credential{}, ErrInvalidCredentials
	}
	cred.Username = username
	cred.PasswordHash = ""
	return cred, nil
}

// persist rewrites the whole credentials file. Caller holds s.mu.
func (s *implStore) persist() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "users-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp credentials file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist credentials: %w", err)
	}

	return nil
}
