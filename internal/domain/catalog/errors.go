package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
