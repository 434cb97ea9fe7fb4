package history

import "context"

// Store persists per-user activity records in chronological order.
type Store interface {
	// Load returns the user's records, oldest first. A user with no
	// history gets an empty slice, not an error.
	Load(ctx context.Context, username string) ([]Record, error)

	// Append adds one record to the user's history and persists the
	// full list immediately. Appends for the same username are
	// serialized to avoid lost updates.
	Append(ctx context.Context, username string, rec Record) error
}
