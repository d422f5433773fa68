package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	listQueryPath   = "/list_query"
	submitQueryPath = "/submit_query"
	getQueryPath    = "/get_query"

	// maxErrorBody caps how much of a failed response is kept for the error detail
	maxErrorBody = 4 << 10
)

var validate = validator.New()

// Client is the typed boundary to the remote query service.
// Each call is a single round trip: no retries, no caching.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for baseURL. A zero timeout leaves the transport
// default in place.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client using the given http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// BaseURL returns the configured service address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListQueries returns the queries of userID in the order the service sends them
func (c *Client) ListQueries(ctx context.Context, userID string) ([]domain.Query, error) {
	const op = "list_query"

	var queries []domain.Query
	if err := c.do(ctx, op, http.MethodGet, listQueryPath, url.Values{"user_id": {userID}}, nil, &queries); err != nil {
		return nil, err
	}
	if queries == nil {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("expected a JSON array, got null")}
	}

	for i := range queries {
		if err := validate.Struct(queries[i]); err != nil {
			return nil, &domain.DecodeError{Op: op, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	log.Debug().Str("user_id", userID).Int("count", len(queries)).Msg("listed queries")
	return queries, nil
}

// SubmitQuery creates a query for userID; the returned record may still be pending
func (c *Client) SubmitQuery(ctx context.Context, userID, text string) (*domain.Query, error) {
	const op = "submit_query"

	body := domain.SubmitQueryRequest{QueryText: text, UserID: userID}

	var query domain.Query
	if err := c.do(ctx, op, http.MethodPost, submitQueryPath, nil, body, &query); err != nil {
		return nil, err
	}
	if err := validate.Struct(query); err != nil {
		return nil, &domain.DecodeError{Op: op, Err: err}
	}

	log.Debug().Str("query_id", query.QueryID).Bool("complete", query.IsComplete).Msg("submitted query")
	return &query, nil
}

// GetQuery fetches a single query by ID
func (c *Client) GetQuery(ctx context.Context, queryID string) (*domain.Query, error) {
	const op = "get_query"

	var query domain.Query
	if err := c.do(ctx, op, http.MethodGet, getQueryPath, url.Values{"query_id": {queryID}}, nil, &query); err != nil {
		return nil, err
	}
	if err := validate.Struct(query); err != nil {
		return nil, &domain.DecodeError{Op: op, Err: err}
	}
	return &query, nil
}

// do performs one request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: c.baseURL + path, Err: fmt.Errorf("invalid base URL: %w", err)}
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: u.String(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.ServerError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: u.String(), Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}

// errorDetail extracts a FastAPI style {"detail": ...} message, falling back
// to the raw body
func errorDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(payload.Detail); err == nil {
			return string(b)
		}
	}
	return strings.TrimSpace(string(body))
}
