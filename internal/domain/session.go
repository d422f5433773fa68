package domain

import "context"

// DefaultSessionKey is the storage key holding the session token
const DefaultSessionKey = "rag_app_session_id"

// SessionStore is a small key-value store for the session token
type SessionStore interface {
	// Get returns ErrNotFound when the key is absent
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// SessionIdentifier resolves the identity of the current client.
// ok is false when no identity can be established.
type SessionIdentifier interface {
	SessionID(ctx context.Context) (id string, ok bool)
}
