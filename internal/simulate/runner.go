package simulate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/pkg/logger"
)

const (
	maxSubmitAttempts = 50
	retryBackoff      = 20 * time.Millisecond
	pollInterval      = 50 * time.Millisecond
	filePermission    = 0o600
)

type counters struct {
	submitted, accepted, duplicate, failed, retries atomic.Int64
	verified, violations, agreement                 atomic.Int64
}

// Run creates synthetic learners on the service at cfg.BaseURL, submits
// their evaluations, waits for ingestion and verifies every forecast.
// Evaluations per learner must not exceed the service's history limit.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	log := logger.Get().Named("simulate")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting simulation",
		logger.String("base_url", cfg.BaseURL),
		logger.Int("learners", cfg.Learners),
		logger.Int("evaluations", cfg.Evaluations),
		logger.Int("workers", cfg.Workers),
	)

	c := newClient(cfg.BaseURL, cfg.Timeout)
	if err := c.checkHealth(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	learners, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.OutputFile != "" {
		if err := saveLearners(cfg.OutputFile, learners); err != nil {
			log.Warn(ctx, "failed to save learners", logger.Error(err))
		}
	}

	var cnt counters
	accepted := make([]int, len(learners))
	if err := submitAll(ctx, c, cfg.Workers, learners, accepted, &cnt); err != nil {
		return nil, err
	}
	stats.LearnersCreated = len(learners)
	log.Info(ctx, "evaluations submitted",
		logger.Int("accepted", int(cnt.accepted.Load())),
		logger.Int("duplicate", int(cnt.duplicate.Load())),
		logger.Int("failed", int(cnt.failed.Load())),
	)

	waitCtx, cancel := context.WithTimeout(ctx, cfg.WaitTimeout)
	defer cancel()
	verifyErr := verifyAll(waitCtx, c, cfg.Workers, learners, accepted, &cnt)

	stats.EvaluationsSubmitted = int(cnt.submitted.Load())
	stats.EvaluationsAccepted = int(cnt.accepted.Load())
	stats.EvaluationsDuplicate = int(cnt.duplicate.Load())
	stats.EvaluationsFailed = int(cnt.failed.Load())
	stats.BackpressureRetries = int(cnt.retries.Load())
	stats.ForecastsVerified = int(cnt.verified.Load())
	stats.Violations = int(cnt.violations.Load())
	stats.ProfileAgreement = int(cnt.agreement.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if verifyErr != nil {
		return stats, verifyErr
	}
	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d", ErrViolations, stats.Violations)
	}
	log.Info(ctx, "simulation completed", logger.Duration("duration", stats.Duration))
	return stats, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: empty base url", ErrInvalidConfig)
	case cfg.Learners < 1:
		return fmt.Errorf("%w: learners must be positive", ErrInvalidConfig)
	case cfg.Evaluations < 1:
		return fmt.Errorf("%w: evaluations must be positive", ErrInvalidConfig)
	case cfg.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	return nil
}

// submitAll creates every learner and submits its evaluations in history
// order. Learners are processed concurrently.
func submitAll(ctx context.Context, c *client, workers int, learners []Learner, accepted []int, cnt *counters) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range learners {
		g.Go(func() error {
			l := &learners[i]
			if err := c.putLearner(gctx, l); err != nil {
				return fmt.Errorf("create learner %s: %w", l.ID, err)
			}
			for _, rec := range l.Evaluations {
				cnt.submitted.Add(1)
				dup, err := submitWithRetry(gctx, c, l.ID, rec, cnt)
				switch {
				case err != nil:
					if gctx.Err() != nil {
						return gctx.Err()
					}
					cnt.failed.Add(1)
				case dup:
					cnt.duplicate.Add(1)
				default:
					cnt.accepted.Add(1)
					accepted[i]++
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func submitWithRetry(ctx context.Context, c *client, learnerID string, rec model.EvaluationRecord, cnt *counters) (bool, error) {
	var err error
	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		var dup bool
		dup, err = c.postEvaluation(ctx, learnerID, rec)
		if !errors.Is(err, errBackpressure) {
			return dup, err
		}
		cnt.retries.Add(1)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return false, err
}

// verifyAll waits until each learner's accepted evaluations are visible
// and verifies the resulting forecast.
func verifyAll(ctx context.Context, c *client, workers int, learners []Learner, accepted []int, cnt *counters) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range learners {
		g.Go(func() error {
			l := &learners[i]
			for {
				res, err := c.getForecast(gctx, l.ID)
				if err != nil {
					return fmt.Errorf("forecast for %s: %w", l.ID, err)
				}
				if res.Evaluations >= accepted[i] {
					cnt.verified.Add(1)
					cnt.violations.Add(int64(len(Verify(&res))))
					if l.Profile.Agrees(res.Overall.Trend) {
						cnt.agreement.Add(1)
					}
					return nil
				}
				select {
				case <-gctx.Done():
					return fmt.Errorf("%w: learner %s has %d of %d", ErrNotIngested, l.ID, res.Evaluations, accepted[i])
				case <-time.After(pollInterval):
				}
			}
		})
	}
	return g.Wait()
}

func saveLearners(path string, learners []Learner) error {
	raw, err := json.MarshalIndent(learners, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal learners: %w", err)
	}
	if err := os.WriteFile(path, raw, filePermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Report writes a human-readable summary of stats to w.
func Report(w io.Writer, stats *Stats) {
	_, _ = fmt.Fprintf(w, `Simulation summary
==================
Learners created:      %d
Evaluations submitted: %d
  accepted:            %d
  duplicate:           %d
  failed:              %d
Backpressure retries:  %d
Forecasts verified:    %d
Invariant violations:  %d
Profile agreement:     %d/%d
Duration:              %s
`,
		stats.LearnersCreated,
		stats.EvaluationsSubmitted,
		stats.EvaluationsAccepted,
		stats.EvaluationsDuplicate,
		stats.EvaluationsFailed,
		stats.BackpressureRetries,
		stats.ForecastsVerified,
		stats.Violations,
		stats.ProfileAgreement, stats.ForecastsVerified,
		stats.Duration.Round(time.Millisecond),
	)
}
