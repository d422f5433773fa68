package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/Rrens/rag-query-client/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmissionController_Submit(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	refresher := new(MockRefresher)

	created := &domain.Query{QueryID: "q3", UserID: "abc123", QueryText: "What is Z?"}
	gw.On("SubmitQuery", ctx, "abc123", "What is Z?").Return(created, nil).Once()
	refresher.On("Refresh", ctx).Return(domain.LoadedState(1, []domain.Query{*created})).Once()

	c := NewSubmissionController(fixedIdentity("abc123"), gw, nil, refresher)

	q, err := c.Submit(ctx, "  What is Z?  ")
	require.NoError(t, err)
	assert.Equal(t, created, q)

	gw.AssertExpectations(t)
	refresher.AssertExpectations(t)
}

func TestSubmissionController_Preconditions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		identity fixedIdentity
		text     string
		check    func(error) bool
	}{
		{"empty", "abc123", "", domain.IsValidation},
		{"whitespace", "abc123", "   ", domain.IsValidation},
		{"too long", "abc123", strings.Repeat("a", domain.MaxQueryLength+1), domain.IsValidation},
		{"no identity", "", "hi", func(err error) bool { return errors.Is(err, domain.ErrNoIdentity) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(MockGateway)
			refresher := new(MockRefresher)
			c := NewSubmissionController(tt.identity, gw, nil, refresher)

			q, err := c.Submit(ctx, tt.text)
			assert.Nil(t, q)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)

			gw.AssertNotCalled(t, "SubmitQuery", mock.Anything, mock.Anything, mock.Anything)
			refresher.AssertNotCalled(t, "Refresh", mock.Anything)
		})
	}
}

func TestSubmissionController_RemoteFailures(t *testing.T) {
	ctx := context.Background()

	failures := map[string]error{
		"network": &domain.NetworkError{Op: "submit_query", Err: errors.New("dial tcp: connection refused")},
		"server":  &domain.ServerError{Op: "submit_query", StatusCode: 500},
		"decode":  &domain.DecodeError{Op: "submit_query", Err: errors.New("unexpected EOF")},
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			gw := new(MockGateway)
			gw.On("SubmitQuery", ctx, "abc123", "hi").Return(nil, failure).Once()
			refresher := new(MockRefresher)

			c := NewSubmissionController(fixedIdentity("abc123"), gw, nil, refresher)
			c.SetDraft("hi")

			q, err := c.SubmitDraft(ctx)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, failure)
			assert.Equal(t, "hi", c.Draft(), "input is preserved on failure")

			gw.AssertNumberOfCalls(t, "SubmitQuery", 1)
			refresher.AssertNotCalled(t, "Refresh", mock.Anything)
		})
	}
}

func TestSubmissionController_SubmitDraftClearsOnSuccess(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("SubmitQuery", ctx, "abc123", "What is X?").Return(&domain.Query{QueryID: "q1", UserID: "abc123"}, nil)

	c := NewSubmissionController(fixedIdentity("abc123"), gw, nil, nil)
	c.SetDraft("What is X?")

	_, err := c.SubmitDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", c.Draft())
}

func TestSubmissionController_DraftEditedDuringSubmit(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	c := NewSubmissionController(fixedIdentity("abc123"), gw, nil, nil)

	gw.On("SubmitQuery", ctx, "abc123", "first").
		Run(func(args mock.Arguments) { c.SetDraft("second") }).
		Return(&domain.Query{QueryID: "q1", UserID: "abc123"}, nil)

	c.SetDraft("first")
	_, err := c.SubmitDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", c.Draft())
}

func TestSubmissionController_CustomValidator(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	c := NewSubmissionController(fixedIdentity("abc123"), gw, security.NewQueryValidator(5), nil)

	_, err := c.Submit(ctx, "too long")
	assert.True(t, domain.IsValidation(err))
	gw.AssertNotCalled(t, "SubmitQuery", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionController_WithHistoryViewModel(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)

	created := domain.Query{QueryID: "q3", UserID: "abc123", QueryText: "What is Z?"}
	gw.On("SubmitQuery", ctx, "abc123", "What is Z?").Return(&created, nil)
	gw.On("ListQueries", mock.Anything, "abc123").Return(append([]domain.Query{created}, scenarioQueries()...), nil)

	vm := NewHistoryViewModel(fixedIdentity("abc123"), gw)
	c := NewSubmissionController(fixedIdentity("abc123"), gw, nil, vm)

	_, err := c.Submit(ctx, "What is Z?")
	require.NoError(t, err)

	state := vm.State()
	require.Equal(t, domain.ViewLoaded, state.Kind)
	assert.Equal(t, "q3", state.Queries[0].QueryID, "new entry visible after one refresh cycle")
}
