package auth

import "context"

// Credential is one stored account. Passwords are kept only as bcrypt
// hashes, never in clear text.
type Credential struct {
	Username     string `json:"-"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password_hash"`
}

// Store persists username -> credential records.
type Store interface {
	// Create registers a new account. Returns ErrDuplicateUsername if
	// the username is already taken; the existing record is untouched.
	Create(ctx context.Context, username, displayName, password string) error

	// Verify checks a password against the stored hash. Returns
	// ErrInvalidCredentials for unknown users and wrong passwords alike.
	Verify(ctx context.Context, username, password string) error

	// Get returns the credential for username, without the hash
	// exposed to callers that only need the display name.
	Get(ctx context.Context, username string) (Credential, error)
}
