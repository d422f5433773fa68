package service

import (
	"context"
	"sync"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/rs/zerolog/log"
)

// HistoryViewModel holds the query history of the current session identity.
//
// Every fetch is tagged with a generation number. A fetch result is applied
// only while its generation is still the latest, so a slow response can never
// overwrite the state produced by a fetch started after it.
type HistoryViewModel struct {
	identity domain.SessionIdentifier
	gateway  domain.QueryGateway

	mu         sync.Mutex
	state      domain.QueryListViewState
	generation uint64
	listeners  map[int]func(domain.QueryListViewState)
	nextID     int

	// notifyMu is taken before mu and keeps listener delivery in
	// transition order
	notifyMu sync.Mutex
}

// NewHistoryViewModel creates a new query history view-model in the inert state
func NewHistoryViewModel(identity domain.SessionIdentifier, gateway domain.QueryGateway) *HistoryViewModel {
	return &HistoryViewModel{
		identity:  identity,
		gateway:   gateway,
		state:     domain.InertState(),
		listeners: make(map[int]func(domain.QueryListViewState)),
	}
}

// State returns a snapshot of the current view state
func (vm *HistoryViewModel) State() domain.QueryListViewState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Subscribe registers fn for every state transition. Listeners run on the
// goroutine that caused the transition and must not call Activate or Refresh
// synchronously.
func (vm *HistoryViewModel) Subscribe(fn func(domain.QueryListViewState)) (unsubscribe func()) {
	vm.mu.Lock()
	id := vm.nextID
	vm.nextID++
	vm.listeners[id] = fn
	vm.mu.Unlock()

	return func() {
		vm.mu.Lock()
		delete(vm.listeners, id)
		vm.mu.Unlock()
	}
}

// Activate performs the single fetch of an activation. Without a session
// identity the view-model goes straight to the inert state and no request
// is made.
func (vm *HistoryViewModel) Activate(ctx context.Context) domain.QueryListViewState {
	return vm.fetch(ctx)
}

// Refresh starts a new fetch cycle, superseding any outstanding one
func (vm *HistoryViewModel) Refresh(ctx context.Context) domain.QueryListViewState {
	return vm.fetch(ctx)
}

// Deactivate discards the results of any outstanding fetch and returns the
// view-model to the inert state
func (vm *HistoryViewModel) Deactivate() {
	gen := vm.begin()
	inert := domain.InertState()
	inert.Generation = gen
	vm.apply(gen, inert)
}

// Lookup fetches a single query, e.g. to follow a pending answer
func (vm *HistoryViewModel) Lookup(ctx context.Context, queryID string) (*domain.Query, error) {
	return vm.gateway.GetQuery(ctx, queryID)
}

func (vm *HistoryViewModel) fetch(ctx context.Context) domain.QueryListViewState {
	// The state is shared by every observer, so the caller going away must not
	// abort the request. Superseded cycles are dropped by generation instead.
	ctx = context.WithoutCancel(ctx)

	userID, ok := vm.identity.SessionID(ctx)
	if !ok {
		log.Warn().Msg("no session identity, query history stays inert")
		gen := vm.begin()
		inert := domain.InertState()
		inert.Generation = gen
		vm.apply(gen, inert)
		return vm.State()
	}

	gen := vm.begin()
	vm.apply(gen, domain.LoadingState(gen))

	queries, err := vm.gateway.ListQueries(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Uint64("generation", gen).Msg("failed to fetch query history")
		vm.apply(gen, domain.FailedState(gen, err))
		return vm.State()
	}

	if !vm.apply(gen, domain.LoadedState(gen, queries)) {
		log.Debug().Uint64("generation", gen).Msg("discarded stale query history response")
	}
	return vm.State()
}

// begin starts a new fetch cycle, superseding all earlier ones
func (vm *HistoryViewModel) begin() uint64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.generation++
	return vm.generation
}

// apply sets next if gen is still the latest generation and notifies listeners.
// It reports whether the state was applied.
func (vm *HistoryViewModel) apply(gen uint64, next domain.QueryListViewState) bool {
	vm.notifyMu.Lock()
	defer vm.notifyMu.Unlock()

	vm.mu.Lock()
	if gen != vm.generation {
		vm.mu.Unlock()
		return false
	}
	vm.state = next
	listeners := make([]func(domain.QueryListViewState), 0, len(vm.listeners))
	for i := 0; i < vm.nextID; i++ {
		if fn, ok := vm.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	vm.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return true
}
