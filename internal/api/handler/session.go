package handler

import (
	"net/http"

	"github.com/Rrens/rag-query-client/internal/api/response"
	"github.com/Rrens/rag-query-client/internal/domain"
)

// SessionHandler exposes the session identity
type SessionHandler struct {
	identity domain.SessionIdentifier
}

func NewSessionHandler(identity domain.SessionIdentifier) *SessionHandler {
	return &SessionHandler{identity: identity}
}

type sessionResponse struct {
	SessionID *string `json:"session_id"`
}

// Get returns the session id, or null when no storage is available
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity.SessionID(r.Context())
	if !ok {
		response.OK(w, sessionResponse{})
		return
	}
	response.OK(w, sessionResponse{SessionID: &id})
}
