package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("learner not found")
	ErrInvalidLearner = errors.New("invalid learner")
)
