package main

import (
	"context"
	"testing"

	"github.com/Rrens/rag-query-client/internal/config"
	"github.com/Rrens/rag-query-client/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port nothing listens on
func unreachableRedis(backend string, rateLimit bool) *config.Config {
	cfg := &config.Config{}
	cfg.Identity.Backend = backend
	cfg.Identity.Key = "rag_app_session_id"
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1}
	cfg.Security.RateLimit.Enabled = rateLimit
	return cfg
}

func TestConnectRedis_NotNeeded(t *testing.T) {
	client, err := connectRedis(context.Background(), unreachableRedis("file", false))
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestConnectRedis_IdentityBackendDegrades(t *testing.T) {
	ctx := context.Background()
	cfg := unreachableRedis("redis", false)

	client, err := connectRedis(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, client)

	store, closer, err := newSessionStore(ctx, cfg, client)
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Nil(t, closer)

	id, ok := identity.NewProvider(store, identity.WithKey(cfg.Identity.Key)).SessionID(ctx)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestConnectRedis_RateLimitRequiresRedis(t *testing.T) {
	client, err := connectRedis(context.Background(), unreachableRedis("file", true))
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewSessionStore_Backends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		backend   string
		wantStore bool
		wantErr   bool
	}{
		{"memory", "memory", true, false},
		{"none", "none", false, false},
		{"empty", "", false, false},
		{"unknown", "cookie", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := unreachableRedis(tt.backend, false)
			store, _, err := newSessionStore(ctx, cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("newSessionStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantStore, store != nil)
		})
	}
}
