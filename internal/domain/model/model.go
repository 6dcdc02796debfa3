// Package model contains the domain records passed between layers.
package model

import (
	"math"
	"strings"
	"time"
)

// MaxSkills is the number of tracked fine-motor skills per evaluation.
const MaxSkills = 8

// DefaultModelAccuracy is used when no model summary is supplied.
const DefaultModelAccuracy = 85.0

// EvaluationRecord is one dated assessment of a learner.
// Scores is indexed by skill; a nil entry means the skill was not assessed.
type EvaluationRecord struct {
	ID           string `json:"id,omitempty" yaml:"id" validate:"omitempty,max=128"`
	Date         string `json:"date,omitempty" yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	Scores       []*int `json:"scores" yaml:"scores" validate:"max=8,dive,omitempty,min=1,max=5"`
	Observations string `json:"observations,omitempty" yaml:"observations"`
}

// Score returns the score for skill index i and whether it was assessed.
func (r EvaluationRecord) Score(i int) (int, bool) {
	if i < 0 || i >= len(r.Scores) || r.Scores[i] == nil {
		return 0, false
	}
	return *r.Scores[i], true
}

// Average returns the mean of the assessed scores, or 0 when none were assessed.
func (r EvaluationRecord) Average() float64 {
	sum, n := 0, 0
	for i := range r.Scores {
		if v, ok := r.Score(i); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// RecordAverages returns the average of every record, in history order.
func RecordAverages(records []EvaluationRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Average()
	}
	return out
}

// SkillSeries returns the assessed scores for skill index i across records,
// in history order. Unassessed entries are skipped.
func SkillSeries(records []EvaluationRecord, i int) []float64 {
	var out []float64
	for _, r := range records {
		if v, ok := r.Score(i); ok {
			out = append(out, float64(v))
		}
	}
	return out
}

// ModelQualitySummary describes the accuracy of the externally trained model.
// Only Accuracy influences the engines; the rest is carried for reporting.
type ModelQualitySummary struct {
	Accuracy        *float64           `json:"accuracy,omitempty" yaml:"accuracy" validate:"omitempty,gte=0,lte=100"`
	Precision       map[string]float64 `json:"precision,omitempty" yaml:"precision"`
	F1              map[string]float64 `json:"f1,omitempty" yaml:"f1"`
	ConfusionMatrix [][]int            `json:"confusion_matrix,omitempty" yaml:"confusion_matrix"`
}

// EffectiveAccuracy returns the accuracy percentage the engines should use.
// A nil summary, a missing accuracy or a non-finite value yields
// DefaultModelAccuracy; finite values are clamped to [0,100].
func (m *ModelQualitySummary) EffectiveAccuracy() float64 {
	if m == nil || m.Accuracy == nil {
		return DefaultModelAccuracy
	}
	acc := *m.Accuracy
	if math.IsNaN(acc) || math.IsInf(acc, 0) {
		return DefaultModelAccuracy
	}
	return math.Max(0, math.Min(100, acc))
}

// LearningStyle tags how a learner prefers to receive instruction.
type LearningStyle string

// Learning styles. StyleNone is the zero value.
const (
	StyleNone        LearningStyle = ""
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
)

// ParseLearningStyle maps free text onto a LearningStyle. Unknown values
// become StyleNone.
func ParseLearningStyle(s string) LearningStyle {
	switch LearningStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleVisual:
		return StyleVisual
	case StyleAuditory:
		return StyleAuditory
	case StyleKinesthetic:
		return StyleKinesthetic
	default:
		return StyleNone
	}
}

// Learner is the profile the service keeps next to a learner's history.
type Learner struct {
	ID            string               `json:"id" validate:"required,max=128"`
	Name          string               `json:"name" validate:"required,max=256"`
	LearningStyle LearningStyle        `json:"learning_style,omitempty"`
	Model         *ModelQualitySummary `json:"model,omitempty" validate:"omitempty"`
}

// EvaluationEvent is an evaluation accepted for asynchronous ingestion.
type EvaluationEvent struct {
	EventID    string
	LearnerID  string
	Record     EvaluationRecord
	ReceivedAt time.Time
}

// CloneRecords returns a deep copy of records so callers cannot alias
// stored score pointers.
func CloneRecords(records []EvaluationRecord) []EvaluationRecord {
	if records == nil {
		return nil
	}
	out := make([]EvaluationRecord, len(records))
	for i, r := range records {
		out[i] = r
		if r.Scores != nil {
			out[i].Scores = make([]*int, len(r.Scores))
			for j, p := range r.Scores {
				if p != nil {
					v := *p
					out[i].Scores[j] = &v
				}
			}
		}
	}
	return out
}
