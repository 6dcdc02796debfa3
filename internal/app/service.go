// Package service wires the forecasting engines, the learner store and the
// ingest pipeline into the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	eventqueue "github.com/okian/motorcast/internal/adapters/mq/queue"
	workerpool "github.com/okian/motorcast/internal/adapters/mq/worker"
	"github.com/okian/motorcast/internal/adapters/repository"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/dedupe"
	"github.com/okian/motorcast/internal/domain/forecast"
	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/internal/domain/suggest"
	"github.com/okian/motorcast/pkg/logger"
	"github.com/okian/motorcast/pkg/metrics"
)

const (
	stopTimeout = 10 * time.Second
	dateLayout  = "2006-01-02"
)

// Service implements the API dependencies for the forecasting system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      *repository.ShardedStore
	deduper    dedupe.Deduper
	eventQueue *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool
	forecaster *forecast.Builder
	suggester  *suggest.Synthesizer
	catalog    *catalog.Catalog

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	shardCount       int
	maxHistory       int
	batchConcurrency int

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the number of evaluation ids remembered for
// deduplication. 0 means unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of learner store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMaxHistory caps the evaluations kept per learner.
func WithMaxHistory(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxHistory = n
		}
	}
}

// WithBatchConcurrency bounds the goroutines used by BatchForecast.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithCatalog replaces the built-in exercise catalog. nil is ignored.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. The stateless operations are usable right
// away; the stateful ones need Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10_000,
		dedupeSize:       100_000,
		shardCount:       8,
		maxHistory:       120,
		batchConcurrency: 8,
		catalog:          catalog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.forecaster = forecast.New(forecast.WithCatalog(s.catalog))
	s.suggester = suggest.New(suggest.WithCatalog(s.catalog))
	return s
}

// Start initializes and starts the store, the queue and the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting motorcast service...")

	s.store = repository.NewShardedStore(ctx,
		repository.WithShardCount(s.shardCount),
		repository.WithMaxHistory(s.maxHistory),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "motorcast service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.Int("shards", s.shardCount),
		logger.Int("max_history", s.maxHistory),
	)
	return nil
}

// Stop drains the ingest queue and releases the service components.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping motorcast service...")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "error closing store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "motorcast service stopped")
}

// components returns the running store, deduper and queue, or
// ErrNotStarted.
func (s *Service) components() (*repository.ShardedStore, dedupe.Deduper, *eventqueue.InMemoryQueue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.store, s.deduper, s.eventQueue, nil
}

// UpsertLearner creates or replaces a learner profile.
func (s *Service) UpsertLearner(ctx context.Context, learner model.Learner) error {
	store, _, _, err := s.components()
	if err != nil {
		return err
	}
	if err := model.ValidateLearner(learner); err != nil {
		metrics.RecordValidationError("learner")
		return err
	}
	if err := store.PutLearner(ctx, learner); err != nil {
		return fmt.Errorf("put learner %s: %w", learner.ID, err)
	}
	metrics.UpdateTotalLearners(store.Count(ctx))
	return nil
}

// Learner returns a stored learner profile.
func (s *Service) Learner(ctx context.Context, learnerID string) (model.Learner, error) {
	store, _, _, err := s.components()
	if err != nil {
		return model.Learner{}, err
	}
	return store.Learner(ctx, learnerID)
}

// SubmitEvaluation validates an evaluation and queues it for ingestion.
// An empty record id is replaced with a generated one and an empty date
// with today's date. It returns the evaluation id and whether the
// evaluation had been submitted before; duplicates are not queued again.
// A full queue yields ErrBackpressure and the evaluation may be retried.
func (s *Service) SubmitEvaluation(ctx context.Context, learnerID string, record model.EvaluationRecord) (string, bool, error) {
	store, deduper, q, err := s.components()
	if err != nil {
		return "", false, err
	}
	if err := model.ValidateRecord(record); err != nil {
		metrics.RecordValidationError("evaluation")
		return "", false, err
	}
	if _, err := store.Learner(ctx, learnerID); err != nil {
		return "", false, err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Date == "" {
		record.Date = time.Now().UTC().Format(dateLayout)
	}

	key := dedupe.Key(learnerID, record.ID)
	if deduper.SeenAndRecord(ctx, key) {
		metrics.RecordEvaluationDuplicate()
		s.logger.Debug(ctx, "duplicate evaluation skipped",
			logger.String("learner_id", learnerID),
			logger.String("evaluation_id", record.ID),
		)
		return record.ID, true, nil
	}

	event := eventqueue.Event{
		EventID:    record.ID,
		LearnerID:  learnerID,
		Record:     model.CloneRecords([]model.EvaluationRecord{record})[0],
		ReceivedAt: time.Now(),
	}
	if err := q.Enqueue(ctx, event); err != nil {
		deduper.Unrecord(ctx, key)
		switch {
		case errors.Is(err, eventqueue.ErrFull):
			return "", false, ErrBackpressure
		case errors.Is(err, eventqueue.ErrClosed):
			return "", false, ErrNotStarted
		default:
			return "", false, fmt.Errorf("enqueue evaluation: %w", err)
		}
	}
	return record.ID, false, nil
}

// History returns a learner's stored evaluations, oldest first.
func (s *Service) History(ctx context.Context, learnerID string) ([]model.EvaluationRecord, error) {
	store, _, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.History(ctx, learnerID)
}

// Forecast builds a forecast from a learner's stored profile and history.
func (s *Service) Forecast(ctx context.Context, learnerID string) (forecast.Result, error) {
	learner, history, err := s.load(ctx, learnerID)
	if err != nil {
		return forecast.Result{}, err
	}
	return s.buildForecast(history, learner.Model, learner.Name), nil
}

// Suggestions builds a suggestion set from a learner's stored profile and
// history, adapted to the learner's learning style.
func (s *Service) Suggestions(ctx context.Context, learnerID string) (suggest.Set, error) {
	learner, history, err := s.load(ctx, learnerID)
	if err != nil {
		return suggest.Set{}, err
	}
	return s.buildSuggestions(history, learner.Model, learner.Name, learner.LearningStyle), nil
}

func (s *Service) load(ctx context.Context, learnerID string) (model.Learner, []model.EvaluationRecord, error) {
	store, _, _, err := s.components()
	if err != nil {
		return model.Learner{}, nil, err
	}
	learner, err := store.Learner(ctx, learnerID)
	if err != nil {
		return model.Learner{}, nil, err
	}
	history, err := store.History(ctx, learnerID)
	if err != nil {
		return model.Learner{}, nil, err
	}
	return learner, history, nil
}

// BuildForecast runs the forecast engine on caller-supplied data.
func (s *Service) BuildForecast(req *ForecastRequest) (forecast.Result, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordValidationError("forecast_request")
		return forecast.Result{}, err
	}
	return s.buildForecast(req.History, req.Model, req.LearnerName), nil
}

// BuildSuggestions runs the suggestion engine on caller-supplied data.
func (s *Service) BuildSuggestions(req *SuggestionRequest) (suggest.Set, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordValidationError("suggestion_request")
		return suggest.Set{}, err
	}
	style := model.ParseLearningStyle(req.LearningStyle)
	return s.buildSuggestions(req.History, req.Model, req.LearnerName, style), nil
}

// BatchForecast builds one forecast per request, at most batchConcurrency
// at a time. Results keep the order of reqs. Every request is validated
// before any forecast is built.
func (s *Service) BatchForecast(ctx context.Context, reqs []ForecastRequest) ([]forecast.Result, error) {
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			metrics.RecordValidationError("forecast_request")
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	results := make([]forecast.Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.buildForecast(reqs[i].History, reqs[i].Model, reqs[i].LearnerName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) buildForecast(history []model.EvaluationRecord, summary *model.ModelQualitySummary, name string) forecast.Result {
	start := time.Now()
	res := s.forecaster.Build(history, summary, name)
	metrics.RecordForecastBuilt(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordSupportNeed(res.Recommendation.SupportNeed)
	return res
}

func (s *Service) buildSuggestions(history []model.EvaluationRecord, summary *model.ModelQualitySummary, name string, style model.LearningStyle) suggest.Set {
	start := time.Now()
	set := s.suggester.Build(history, summary, name, style)
	metrics.RecordSuggestionsBuilt(float64(time.Since(start).Microseconds()) / 1000)
	return set
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":          s.started,
		"workerCount":      s.workerCount,
		"queueSize":        s.queueSize,
		"dedupeSize":       s.dedupeSize,
		"shardCount":       s.shardCount,
		"maxHistory":       s.maxHistory,
		"batchConcurrency": s.batchConcurrency,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalLearners := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["queueCapacity"] = s.eventQueue.Capacity()
		stats["totalLearners"] = totalLearners
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalLearners(totalLearners)
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}
