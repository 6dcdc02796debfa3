// Package repository keeps learner profiles and evaluation histories in memory.
package repository

import (
	"context"

	"github.com/okian/motorcast/internal/domain/model"
)

// Store provides read/write access to learner profiles and histories.
// Returned values are copies; callers may modify them freely.
type Store interface {
	// PutLearner creates or replaces a learner profile. The history of an
	// existing learner is kept.
	PutLearner(ctx context.Context, learner model.Learner) error

	// Learner returns a profile. Returns ErrNotFound for unknown learners.
	Learner(ctx context.Context, learnerID string) (model.Learner, error)

	// Append adds a record to the end of a learner's history, dropping the
	// oldest records beyond the history limit. It returns the new length.
	// Returns ErrNotFound for unknown learners.
	Append(ctx context.Context, learnerID string, record model.EvaluationRecord) (int, error)

	// History returns a learner's records, oldest first.
	// Returns ErrNotFound for unknown learners.
	History(ctx context.Context, learnerID string) ([]model.EvaluationRecord, error)

	// Count returns the number of learners.
	Count(ctx context.Context) int
}
