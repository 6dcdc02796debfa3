package simulate

import "errors"

// Sentinel kinds for simulation errors.
var (
	ErrInvalidConfig  = errors.New("invalid simulation config")
	ErrUnexpectedCode = errors.New("unexpected status code")
	ErrNotIngested    = errors.New("evaluations not ingested in time")
	ErrViolations     = errors.New("forecast invariants violated")
)
