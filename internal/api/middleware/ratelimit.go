package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Rrens/rag-query-client/internal/api/response"
	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/rs/zerolog/log"
)

// Limiter decides whether a session may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// RateLimitMiddleware throttles submissions per session identity
type RateLimitMiddleware struct {
	limiter  Limiter
	identity domain.SessionIdentifier
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter, identity domain.SessionIdentifier) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, identity: identity}
}

// Limit applies rate limiting based on the session id
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := m.identity.SessionID(r.Context())
		if !ok {
			// The controller reports the missing identity
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetTime, err := m.limiter.Allow(r.Context(), sessionID)
		if err != nil {
			// If rate limiter fails, allow the request but log the error
			log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
