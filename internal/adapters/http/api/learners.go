package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/motorcast/internal/domain/model"
)

// LearnersHandler handles the stateful learner routes.
type LearnersHandler struct {
	deps LearnerDependencies
}

// NewLearnersHandler creates a new learners handler.
func NewLearnersHandler(deps LearnerDependencies) *LearnersHandler {
	return &LearnersHandler{deps: deps}
}

// learnerRequest mirrors the OpenAPI schema for PUT /learners/{id}.
type learnerRequest struct {
	Name          string                     `json:"name"`
	LearningStyle string                     `json:"learning_style"`
	Model         *model.ModelQualitySummary `json:"model"`
}

type ackResponse struct {
	Status       string `json:"status"`
	EvaluationID string `json:"evaluation_id,omitempty"`
	Duplicate    bool   `json:"duplicate"`
}

func learnerID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	return id, id != ""
}

// HandlePutLearner handles PUT /learners/{id} requests.
func (h *LearnersHandler) HandlePutLearner(w http.ResponseWriter, r *http.Request) {
	id, ok := learnerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingID)
		return
	}
	var req learnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	learner := model.Learner{
		ID:            id,
		Name:          req.Name,
		LearningStyle: model.ParseLearningStyle(req.LearningStyle),
		Model:         req.Model,
	}
	if err := h.deps.UpsertLearner(r.Context(), learner); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, learner)
}

// HandlePostEvaluation handles POST /learners/{id}/evaluations requests.
// Accepted evaluations are stored asynchronously.
func (h *LearnersHandler) HandlePostEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := learnerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingID)
		return
	}
	var rec model.EvaluationRecord
	if err := decodeJSON(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	evalID, duplicate, err := h.deps.SubmitEvaluation(r.Context(), id, rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EvaluationID: evalID, Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EvaluationID: evalID})
}

// HandleGetForecast handles GET /learners/{id}/forecast requests.
func (h *LearnersHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	serveLearner(w, r, h.deps.Forecast)
}

// HandleGetSuggestions handles GET /learners/{id}/suggestions requests.
func (h *LearnersHandler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	serveLearner(w, r, h.deps.Suggestions)
}

func serveLearner[T any](w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (T, error)) {
	id, ok := learnerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingID)
		return
	}
	out, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
