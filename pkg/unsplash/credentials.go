package unsplash

import "context"

// CredentialStore keeps secrets such as access tokens keyed by name. The
// client never reads it directly; the auth manager resolves tokens from it.
type CredentialStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}
