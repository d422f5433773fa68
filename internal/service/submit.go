package service

import (
	"context"
	"sync"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/Rrens/rag-query-client/internal/security"
	"github.com/rs/zerolog/log"
)

// HistoryRefresher is informed after a successful submission
type HistoryRefresher interface {
	Refresh(ctx context.Context) domain.QueryListViewState
}

// SubmissionController validates and dispatches new queries
type SubmissionController struct {
	identity  domain.SessionIdentifier
	gateway   domain.QueryGateway
	validator *security.QueryValidator
	history   HistoryRefresher

	mu    sync.Mutex
	draft string
}

// NewSubmissionController creates a new submission controller. history may be
// nil when no view-model should be refreshed after a submission.
func NewSubmissionController(
	identity domain.SessionIdentifier,
	gateway domain.QueryGateway,
	validator *security.QueryValidator,
	history HistoryRefresher,
) *SubmissionController {
	if validator == nil {
		validator = security.NewQueryValidator(domain.MaxQueryLength)
	}
	return &SubmissionController{
		identity:  identity,
		gateway:   gateway,
		validator: validator,
		history:   history,
	}
}

// Submit sends text as a new query for the current session. Input and
// identity are checked before any request is made; failures are returned,
// never panicked.
func (c *SubmissionController) Submit(ctx context.Context, text string) (*domain.Query, error) {
	text, err := c.validator.ValidateAndPrepare(text)
	if err != nil {
		return nil, err
	}

	userID, ok := c.identity.SessionID(ctx)
	if !ok {
		return nil, domain.ErrNoIdentity
	}

	query, err := c.gateway.SubmitQuery(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to submit query")
		return nil, err
	}

	log.Info().
		Str("query_id", query.QueryID).
		Str("user_id", userID).
		Bool("complete", query.IsComplete).
		Msg("query submitted")

	if c.history != nil {
		c.history.Refresh(ctx)
	}

	return query, nil
}

// SetDraft records the text the user is typing
func (c *SubmissionController) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

// Draft returns the preserved input
func (c *SubmissionController) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SubmitDraft submits the current draft. The draft is cleared only on
// success, and only if it was not edited while the request was in flight.
func (c *SubmissionController) SubmitDraft(ctx context.Context) (*domain.Query, error) {
	text := c.Draft()

	query, err := c.Submit(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.draft == text {
		c.draft = ""
	}
	c.mu.Unlock()

	return query, nil
}
