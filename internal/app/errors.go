package service

import (
	"errors"

	"github.com/okian/motorcast/internal/adapters/repository"
)

// Sentinel errors returned by Service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("ingest queue is full")
	ErrNotFound     = repository.ErrNotFound
)
