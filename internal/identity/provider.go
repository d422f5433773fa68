package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Provider derives and persists a stable opaque session token.
// A nil store means the execution context has no persistent storage.
type Provider struct {
	store    domain.SessionStore
	key      string
	generate func() string

	mu sync.Mutex
	id string
}

// Option configures a Provider
type Option func(*Provider)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(p *Provider) {
		if key != "" {
			p.key = key
		}
	}
}

// WithGenerator overrides token generation
func WithGenerator(fn func() string) Option {
	return func(p *Provider) {
		p.generate = fn
	}
}

// NewProvider creates a new session identity provider
func NewProvider(store domain.SessionStore, opts ...Option) *Provider {
	p := &Provider{
		store:    store,
		key:      domain.DefaultSessionKey,
		generate: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SessionID returns the stored token, creating and persisting one on first use.
// ok is false when storage is unavailable; callers treat that as "no identity yet".
func (p *Provider) SessionID(ctx context.Context) (string, bool) {
	if p == nil || p.store == nil {
		return "", false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, true
	}

	id, err := p.store.Get(ctx, p.key)
	if err == nil && id != "" {
		p.id = id
		return id, true
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Str("key", p.key).Msg("session storage unavailable")
		return "", false
	}

	id = p.generate()
	if err := p.store.Set(ctx, p.key, id); err != nil {
		log.Warn().Err(err).Str("key", p.key).Msg("failed to persist session id")
		return "", false
	}

	log.Debug().Str("key", p.key).Msg("created new session id")
	p.id = id
	return id, true
}
