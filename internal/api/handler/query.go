package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rrens/rag-query-client/internal/api/response"
	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/Rrens/rag-query-client/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// QueryHandler bridges the history view-model and submission controller to HTTP
type QueryHandler struct {
	history   *service.HistoryViewModel
	submitter *service.SubmissionController
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(history *service.HistoryViewModel, submitter *service.SubmissionController) *QueryHandler {
	return &QueryHandler{history: history, submitter: submitter}
}

// ViewStateResponse is the JSON form of a QueryListViewState
type ViewStateResponse struct {
	Kind       domain.ViewKind `json:"kind"`
	Queries    []domain.Query  `json:"queries"`
	Error      string          `json:"error,omitempty"`
	Generation uint64          `json:"generation"`
}

func newViewStateResponse(s domain.QueryListViewState) ViewStateResponse {
	queries := s.Queries
	if queries == nil {
		queries = []domain.Query{}
	}
	return ViewStateResponse{
		Kind:       s.Kind,
		Queries:    queries,
		Error:      s.Reason(),
		Generation: s.Generation,
	}
}

type submitRequest struct {
	Text string `json:"text"`
}

type draftRequest struct {
	Text *string `json:"text" validate:"required"`
}

// List returns the current history view state
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, newViewStateResponse(h.history.State()))
}

// Refresh starts a new fetch cycle and returns the resulting state
func (h *QueryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	response.OK(w, newViewStateResponse(h.history.Refresh(r.Context())))
}

// Submit submits a query. The text becomes the draft first so it survives
// a failed submission.
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	h.submitter.SetDraft(req.Text)
	query, err := h.submitter.SubmitDraft(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, query)
}

// Get returns a single query, used to follow a pending answer
func (h *QueryHandler) Get(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "queryID")
	if queryID == "" {
		response.BadRequest(w, "missing query ID")
		return
	}

	query, err := h.history.Lookup(r.Context(), queryID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, query)
}

// GetDraft returns the preserved input text
func (h *QueryHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"text": h.submitter.Draft()})
}

// PutDraft replaces the preserved input text
func (h *QueryHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	h.submitter.SetDraft(*req.Text)
	response.NoContent(w)
}

// writeError maps core error kinds to HTTP responses
func writeError(w http.ResponseWriter, err error) {
	var serverErr *domain.ServerError

	switch {
	case domain.IsValidation(err):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrNoIdentity):
		response.PreconditionFailed(w, err.Error())
	case errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound:
		response.NotFound(w, err.Error())
	case domain.IsNetwork(err), domain.IsServer(err), domain.IsDecode(err):
		response.BadGateway(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
