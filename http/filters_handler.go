package http

import (
	"net/http"

	"college-predictor/domain"
	"college-predictor/service"
)

type FiltersHandler struct {
	client *service.RecommendationClient
}

func NewFiltersHandler(client *service.RecommendationClient) *FiltersHandler {
	return &FiltersHandler{client: client}
}

type FiltersResponse struct {
	Filters   domain.FilterOptions `json:"filters"`
	Available bool                 `json:"available"`
	Message   string               `json:"message,omitempty"`
}

// GetFilters returns whatever facets the client currently holds. Facets are
// empty until a load has succeeded.
func (h *FiltersHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	state := h.client.Snapshot()
	resp := FiltersResponse{Filters: state.Filters.Normalized(), Available: state.FiltersAvailable}
	if !resp.Available {
		resp.Message = service.DiagnosticFiltersUnavailable
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reload asks the backend for the facets again.
func (h *FiltersHandler) Reload(w http.ResponseWriter, r *http.Request) {
	options, ok := h.client.LoadFilterOptions(r.Context())
	resp := FiltersResponse{Filters: options.Normalized(), Available: ok}
	if !ok {
		resp.Message = service.DiagnosticFiltersUnavailable
	}
	writeJSON(w, http.StatusOK, resp)
}
