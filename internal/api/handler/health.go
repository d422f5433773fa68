package handler

import (
	"net/http"

	"github.com/Rrens/rag-query-client/internal/api/response"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ConfigInfo exposes the read-only client configuration
func ConfigInfo(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"api_base_url": baseURL,
		})
	}
}
