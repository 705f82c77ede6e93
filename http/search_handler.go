package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"college-predictor/domain"
	"college-predictor/logging"
	"college-predictor/service"
)

const maxBodyBytes = 1 << 20

type SearchHandler struct {
	search   *service.SearchService
	validate *validator.Validate
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search, validate: validator.New()}
}

// SearchResponse is the derived view of the request's own result. When
// Superseded is set a newer search was issued first and the client state
// does not reflect this response.
type SearchResponse struct {
	service.Results
	Superseded bool `json:"superseded"`
}

func (h *SearchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input domain.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation_failed",
				Message: "invalid search input",
				Fields:  fieldErrors(verrs),
			})
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	result := h.search.Submit(r.Context(), input)
	writeJSON(w, http.StatusOK, searchResponse(r, result))
}

// Relax resubmits the previous search without its location, institute and
// branch constraints.
func (h *SearchHandler) Relax(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Relax(r.Context())
	if errors.Is(err, service.ErrNoPreviousSearch) {
		writeError(w, http.StatusConflict, "no_previous_search", err.Error())
		return
	}
	if err != nil {
		logging.Error().Err(err).Msg("relax failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, searchResponse(r, result))
}

func searchResponse(r *http.Request, result service.Result) SearchResponse {
	sortKey, institute := viewParams(r)
	state := service.State{
		Recommendations: result.Recommendations,
		Outcome:         result.Outcome,
		Message:         result.Message,
	}
	return SearchResponse{
		Results:    service.BuildResults(state, sortKey, institute),
		Superseded: result.Superseded,
	}
}

func fieldErrors(verrs validator.ValidationErrors) []string {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return fields
}
