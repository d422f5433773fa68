package service

import (
	"context"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway mocks the QueryGateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListQueries(ctx context.Context, userID string) ([]domain.Query, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Query), args.Error(1)
}

func (m *MockGateway) SubmitQuery(ctx context.Context, userID, text string) (*domain.Query, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Query), args.Error(1)
}

func (m *MockGateway) GetQuery(ctx context.Context, queryID string) (*domain.Query, error) {
	args := m.Called(ctx, queryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Query), args.Error(1)
}

// fixedIdentity returns a constant session identity
type fixedIdentity string

func (f fixedIdentity) SessionID(ctx context.Context) (string, bool) {
	if f == "" {
		return "", false
	}
	return string(f), true
}

// MockRefresher records refresh requests
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) domain.QueryListViewState {
	args := m.Called(ctx)
	return args.Get(0).(domain.QueryListViewState)
}
