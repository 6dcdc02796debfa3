// Package simulate drives a running motorcast service with synthetic
// learners and checks the forecasts it returns.
package simulate

import (
	"runtime"
	"time"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Learners    int           // Number of learners to create
	Evaluations int           // Evaluations per learner
	Workers     int           // Number of concurrent learners in flight
	Timeout     time.Duration // HTTP request timeout
	WaitTimeout time.Duration // How long to wait for ingestion to finish
	Seed        uint64        // Seed for the synthetic data
	OutputFile  string        // Optional JSON dump of the generated learners
}

// DefaultConfig returns the configuration used by the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://localhost:9080",
		Learners:    100,
		Evaluations: 6,
		Workers:     runtime.NumCPU() * 2,
		Timeout:     30 * time.Second,
		WaitTimeout: time.Minute,
		Seed:        1,
	}
}

// Stats holds simulation statistics.
type Stats struct {
	LearnersCreated      int
	EvaluationsSubmitted int
	EvaluationsAccepted  int
	EvaluationsDuplicate int
	EvaluationsFailed    int
	BackpressureRetries  int
	ForecastsVerified    int
	Violations           int
	ProfileAgreement     int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
