package domain

// ViewKind tags a QueryListViewState
type ViewKind string

const (
	ViewInert   ViewKind = "inert"
	ViewLoading ViewKind = "loading"
	ViewLoaded  ViewKind = "loaded"
	ViewEmpty   ViewKind = "empty"
	ViewFailed  ViewKind = "failed"
)

// QueryListViewState is the query history as observed by the client.
// Queries is only meaningful for ViewLoaded, Err only for ViewFailed.
type QueryListViewState struct {
	Kind       ViewKind `json:"kind"`
	Queries    []Query  `json:"queries"`
	Err        error    `json:"-"`
	Generation uint64   `json:"generation"`
}

// Reason returns the failure message for ViewFailed states
func (s QueryListViewState) Reason() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// InertState is the state of a view-model without a session identity
func InertState() QueryListViewState {
	return QueryListViewState{Kind: ViewInert}
}

// LoadingState marks a fetch in progress
func LoadingState(gen uint64) QueryListViewState {
	return QueryListViewState{Kind: ViewLoading, Generation: gen}
}

// LoadedState wraps a fetched list; an empty list yields ViewEmpty
func LoadedState(gen uint64, queries []Query) QueryListViewState {
	if len(queries) == 0 {
		return QueryListViewState{Kind: ViewEmpty, Queries: []Query{}, Generation: gen}
	}
	return QueryListViewState{Kind: ViewLoaded, Queries: queries, Generation: gen}
}

// FailedState records a fetch failure
func FailedState(gen uint64, err error) QueryListViewState {
	return QueryListViewState{Kind: ViewFailed, Err: err, Generation: gen}
}
