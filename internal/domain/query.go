package domain

import (
	"context"
	"time"
)

// MaxQueryLength is the character limit enforced by the query service
const MaxQueryLength = 2000

// Query represents a submitted question and its (possibly pending) answer
type Query struct {
	QueryID    string   `json:"query_id" validate:"required"`
	UserID     string   `json:"user_id" validate:"required"`
	CreateTime int64    `json:"create_time"`
	QueryText  string   `json:"query_text"`
	AnswerText *string  `json:"answer_text,omitempty"`
	Sources    []string `json:"sources"`
	IsComplete bool     `json:"is_complete"`
}

// Pending reports whether the service is still producing an answer
func (q Query) Pending() bool {
	return !q.IsComplete
}

// CreatedAt returns the creation time as a time.Time
func (q Query) CreatedAt() time.Time {
	return time.Unix(q.CreateTime, 0)
}

// Answer returns the answer text, or an empty string while pending
func (q Query) Answer() string {
	if q.AnswerText == nil {
		return ""
	}
	return *q.AnswerText
}

// SubmitQueryRequest is the body of a submit_query call
type SubmitQueryRequest struct {
	QueryText string `json:"query_text" validate:"required,max=2000"`
	UserID    string `json:"user_id,omitempty"`
}

// QueryGateway defines the remote query service operations
type QueryGateway interface {
	ListQueries(ctx context.Context, userID string) ([]Query, error)
	SubmitQuery(ctx context.Context, userID, text string) (*Query, error)
	GetQuery(ctx context.Context, queryID string) (*Query, error)
}
