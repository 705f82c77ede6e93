package http

import (
	"fmt"
	"net/http"

	"college-predictor/domain"
	"college-predictor/logging"
	"college-predictor/service"
)

type ResultsHandler struct {
	client *service.RecommendationClient
}

func NewResultsHandler(client *service.RecommendationClient) *ResultsHandler {
	return &ResultsHandler{client: client}
}

func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sortKey, institute := viewParams(r)
	writeJSON(w, http.StatusOK, service.BuildResults(h.client.Snapshot(), sortKey, institute))
}

// Export writes the current view as a CSV download.
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	sortKey, institute := viewParams(r)
	state := h.client.Snapshot()
	view := service.DeriveView(state.Recommendations, sortKey, institute)

	w.Header().Set("Content-Type", service.ExportContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(service.ExportCSV(view)); err != nil {
		logging.Warn().Err(err).Msg("failed to write export")
	}
}

func viewParams(r *http.Request) (domain.SortKey, string) {
	q := r.URL.Query()
	institute := q.Get("institute")
	if institute == "" {
		institute = domain.InstituteAll
	}
	return service.ParseSortKey(q.Get("sort")), institute
}
