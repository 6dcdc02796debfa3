package api

import (
	"fmt"
	"net/http"

	service "github.com/okian/motorcast/internal/app"
	"github.com/okian/motorcast/internal/domain/forecast"
)

const maxBatchSize = 1000

// EngineHandler handles the stateless engine routes.
type EngineHandler struct {
	deps EngineDependencies
}

// NewEngineHandler creates a new engine handler.
func NewEngineHandler(deps EngineDependencies) *EngineHandler {
	return &EngineHandler{deps: deps}
}

type batchRequest struct {
	Requests []service.ForecastRequest `json:"requests"`
}

type batchResponse struct {
	Results []forecast.Result `json:"results"`
}

// HandleForecast handles POST /forecast requests.
func (h *EngineHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var req service.ForecastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.deps.BuildForecast(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleSuggestions handles POST /suggestions requests.
func (h *EngineHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req service.SuggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	set, err := h.deps.BuildSuggestions(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// HandleBatchForecast handles POST /forecast/batch requests.
func (h *EngineHandler) HandleBatchForecast(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(req.Requests) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: at most %d requests per batch", ErrBadRequest, maxBatchSize))
		return
	}
	results, err := h.deps.BatchForecast(r.Context(), req.Requests)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []forecast.Result{}
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}
