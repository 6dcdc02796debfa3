// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/motorcast/internal/app"
	"github.com/okian/motorcast/internal/domain/forecast"
	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/internal/domain/suggest"
)

const maxBodyBytes = 4 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LearnerDependencies
	EngineDependencies
}

// LearnerDependencies covers the stateful learner operations.
type LearnerDependencies interface {
	UpsertLearner(ctx context.Context, learner model.Learner) error
	SubmitEvaluation(ctx context.Context, learnerID string, record model.EvaluationRecord) (string, bool, error)
	Forecast(ctx context.Context, learnerID string) (forecast.Result, error)
	Suggestions(ctx context.Context, learnerID string) (suggest.Set, error)
}

// EngineDependencies covers the stateless engine operations.
type EngineDependencies interface {
	BuildForecast(req *service.ForecastRequest) (forecast.Result, error)
	BuildSuggestions(req *service.SuggestionRequest) (suggest.Set, error)
	BatchForecast(ctx context.Context, reqs []service.ForecastRequest) ([]forecast.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	learnersHandler *LearnersHandler
	engineHandler   *EngineHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		learnersHandler: NewLearnersHandler(deps),
		engineHandler:   NewEngineHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("PUT /learners/{id}", MetricsMiddleware(s.learnersHandler.HandlePutLearner, "learners"))
	mux.HandleFunc("POST /learners/{id}/evaluations", MetricsMiddleware(s.learnersHandler.HandlePostEvaluation, "evaluations"))
	mux.HandleFunc("GET /learners/{id}/forecast", MetricsMiddleware(s.learnersHandler.HandleGetForecast, "learner_forecast"))
	mux.HandleFunc("GET /learners/{id}/suggestions", MetricsMiddleware(s.learnersHandler.HandleGetSuggestions, "learner_suggestions"))

	mux.HandleFunc("POST /forecast", MetricsMiddleware(s.engineHandler.HandleForecast, "forecast"))
	mux.HandleFunc("POST /forecast/batch", MetricsMiddleware(s.engineHandler.HandleBatchForecast, "forecast_batch"))
	mux.HandleFunc("POST /suggestions", MetricsMiddleware(s.engineHandler.HandleSuggestions, "suggestions"))
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	resp := errorResponse{Code: code, Message: http.StatusText(status)}
	if err != nil {
		resp.Message = err.Error()
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			resp.Fields = ve.Fields
		}
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
