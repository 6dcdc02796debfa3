package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/pkg/metrics"
)

const (
	defaultShardCount            = 8
	defaultMaxHistory            = 120
	defaultMetricsUpdateInterval = 5 * time.Second
)

type profile struct {
	learner model.Learner
	history []model.EvaluationRecord
}

type shard struct {
	mu       sync.RWMutex
	learners map[string]*profile
}

// ShardedStore is an in-memory Store. Learners are spread over shards by an
// FNV-1a hash of their id; each shard has its own lock.
type ShardedStore struct {
	shards                []*shard
	shardCount            int
	maxHistory            int
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewShardedStore constructs a store and starts its metrics updater, which
// runs until ctx is done or Close is called.
func NewShardedStore(ctx context.Context, opts ...Option) *ShardedStore {
	s := &ShardedStore{
		shardCount:            defaultShardCount,
		maxHistory:            defaultMaxHistory,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{learners: make(map[string]*profile)}
	}

	metrics.UpdateRepositoryShardCount(s.shardCount)
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater.
func (s *ShardedStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *ShardedStore) shardFor(learnerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(learnerID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// PutLearner implements Store.PutLearner.
func (s *ShardedStore) PutLearner(_ context.Context, learner model.Learner) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if strings.TrimSpace(learner.ID) == "" {
		metrics.RecordErrorByComponent("repository", "invalid_learner")
		return fmt.Errorf("%w: empty id", ErrInvalidLearner)
	}

	sh := s.shardFor(learner.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if p, ok := sh.learners[learner.ID]; ok {
		p.learner = cloneLearner(learner)
		return nil
	}
	sh.learners[learner.ID] = &profile{learner: cloneLearner(learner)}
	return nil
}

// Learner implements Store.Learner.
func (s *ShardedStore) Learner(_ context.Context, learnerID string) (model.Learner, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.learners[learnerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Learner{}, fmt.Errorf("%w: %s", ErrNotFound, learnerID)
	}
	return cloneLearner(p.learner), nil
}

// Append implements Store.Append.
func (s *ShardedStore) Append(_ context.Context, learnerID string, record model.EvaluationRecord) (int, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	rec := model.CloneRecords([]model.EvaluationRecord{record})[0]

	sh := s.shardFor(learnerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.learners[learnerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return 0, fmt.Errorf("%w: %s", ErrNotFound, learnerID)
	}
	p.history = append(p.history, rec)
	if over := len(p.history) - s.maxHistory; over > 0 {
		p.history = slices.Delete(p.history, 0, over)
	}
	return len(p.history), nil
}

// History implements Store.History.
func (s *ShardedStore) History(_ context.Context, learnerID string) ([]model.EvaluationRecord, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.learners[learnerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, learnerID)
	}
	out := model.CloneRecords(p.history)
	if out == nil {
		out = []model.EvaluationRecord{}
	}
	return out, nil
}

// Count implements Store.Count.
func (s *ShardedStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.learners)
		sh.mu.RUnlock()
	}
	return total
}

func (s *ShardedStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *ShardedStore) updateMetrics() {
	for i, sh := range s.shards {
		sh.mu.RLock()
		n := len(sh.learners)
		sh.mu.RUnlock()
		metrics.UpdateRepositoryRecordsPerShard(fmt.Sprintf("shard_%d", i), n)
	}
}

func cloneLearner(l model.Learner) model.Learner {
	out := l
	if l.Model == nil {
		return out
	}
	m := *l.Model
	if l.Model.Accuracy != nil {
		acc := *l.Model.Accuracy
		m.Accuracy = &acc
	}
	m.Precision = maps.Clone(l.Model.Precision)
	m.F1 = maps.Clone(l.Model.F1)
	if l.Model.ConfusionMatrix != nil {
		m.ConfusionMatrix = make([][]int, len(l.Model.ConfusionMatrix))
		for i, row := range l.Model.ConfusionMatrix {
			m.ConfusionMatrix[i] = slices.Clone(row)
		}
	}
	out.Model = &m
	return out
}
