// Package session maps opaque tokens to authenticated user ids. The store
// is explicit server-side state; nothing about the user lives in the cookie
// beyond the token itself.
package session

import "context"

// Store maps session tokens to user ids.
type Store interface {
	// Create mints a token bound to the user id.
	Create(ctx context.Context, userID int64) (string, error)

	// Get resolves a token. The bool reports whether the token is known
	// and unexpired.
	Get(ctx context.Context, token string) (int64, bool, error)

	// Delete invalidates a token. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes expired tokens. Backends that expire natively
	// may treat this as a no-op.
	DeleteExpired(ctx context.Context) error
}
