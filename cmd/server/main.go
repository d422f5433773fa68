package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rrens/rag-query-client/internal/api"
	"github.com/Rrens/rag-query-client/internal/api/middleware"
	"github.com/Rrens/rag-query-client/internal/apiclient"
	"github.com/Rrens/rag-query-client/internal/config"
	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/Rrens/rag-query-client/internal/identity"
	"github.com/Rrens/rag-query-client/internal/logging"
	"github.com/Rrens/rag-query-client/internal/repository/redis"
	"github.com/Rrens/rag-query-client/internal/repository/sqlite"
	"github.com/Rrens/rag-query-client/internal/security"
	"github.com/Rrens/rag-query-client/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := false
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		fmt.Println("Warning: .env file not found in any standard location")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logCloser.Close()

	ctx := context.Background()

	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, closer, err := newSessionStore(ctx, cfg, redisClient)
	if err != nil {
		// No storage means no identity: the core degrades to its inert state
		log.Warn().Err(err).Str("backend", cfg.Identity.Backend).Msg("Session storage unavailable")
	}
	if closer != nil {
		defer closer.Close()
	}

	provider := identity.NewProvider(store, identity.WithKey(cfg.Identity.Key))
	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
	history := service.NewHistoryViewModel(provider, client)

	var refresher service.HistoryRefresher
	if cfg.History.RefreshAfterSubmit {
		refresher = history
	}
	submitter := service.NewSubmissionController(provider, client, security.NewQueryValidator(domain.MaxQueryLength), refresher)

	var limiter middleware.Limiter
	if cfg.Security.RateLimit.Enabled {
		limiter = redis.NewRateLimiter(redisClient, cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst)
	}

	log.Info().
		Str("api_base_url", client.BaseURL()).
		Str("identity_backend", cfg.Identity.Backend).
		Bool("refresh_after_submit", cfg.History.RefreshAfterSubmit).
		Msg("Starting RAG query client")

	// Activation: exactly one fetch for the current session
	go history.Activate(ctx)

	router := api.NewRouter(api.Deps{
		BaseURL:        client.BaseURL(),
		Identity:       provider,
		History:        history,
		Submitter:      submitter,
		Limiter:        limiter,
		RequestTimeout: cfg.Server.MiddlewareTimeout,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	history.Deactivate()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// connectRedis connects when the redis identity backend or rate limiting
// needs it. Only rate limiting makes an unreachable Redis fatal; the identity
// backend alone degrades to a nil client and so to no identity.
func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Identity.Backend != "redis" && !cfg.Security.RateLimit.Enabled {
		return nil, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		if cfg.Security.RateLimit.Enabled {
			return nil, err
		}
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("Redis unavailable, session identity disabled")
		return nil, nil
	}
	return client, nil
}

// newSessionStore builds the configured identity backend. A nil store with a
// nil error means storage is disabled on purpose.
func newSessionStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (domain.SessionStore, io.Closer, error) {
	switch cfg.Identity.Backend {
	case "file":
		store, err := identity.NewFileStore(cfg.Identity.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "sqlite":
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		store, err := sqlite.NewSessionStore(openCtx, cfg.Identity.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "redis":
		if redisClient == nil {
			return nil, nil, errors.New("redis session store has no connection")
		}
		return redis.NewSessionStore(redisClient), nil, nil
	case "memory":
		return identity.NewMemoryStore(), nil, nil
	case "none", "":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown identity backend %q", cfg.Identity.Backend)
	}
}
