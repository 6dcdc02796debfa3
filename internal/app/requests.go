package service

import (
	"github.com/okian/motorcast/internal/domain/model"
)

// ForecastRequest is the stateless input of BuildForecast.
type ForecastRequest struct {
	LearnerName string                     `json:"learner_name"`
	History     []model.EvaluationRecord   `json:"history"`
	Model       *model.ModelQualitySummary `json:"model,omitempty"`
}

// Validate checks the history and the optional model summary.
func (r *ForecastRequest) Validate() error {
	return model.ValidateInput(r.History, r.Model)
}

// SuggestionRequest is the stateless input of BuildSuggestions.
type SuggestionRequest struct {
	LearnerName   string                     `json:"learner_name"`
	History       []model.EvaluationRecord   `json:"history"`
	Model         *model.ModelQualitySummary `json:"model,omitempty"`
	LearningStyle string                     `json:"learning_style,omitempty"`
}

// Validate checks the history and the optional model summary.
func (r *SuggestionRequest) Validate() error {
	return model.ValidateInput(r.History, r.Model)
}
