package enrich

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/pawmatch/pawmatch/internal/domain"
)

// factsKey is resolved at call time: the key prefix is configurable and
// set during startup.
func factsKey(dogID string) string { return domain.KeyPrefix + "facts:" + dogID }

// store is the consumer interface for the facts cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Worker derives dog facts off the request path and memoizes them in a
// key-value store, so detail lookups get enriched facts without paying
// the derivation on every read. The queue is bounded; when it is full,
// submissions are dropped rather than blocking a request.
type Worker struct {
	store  store
	ttl    time.Duration
	queue  chan domain.Dog
	done   chan struct{}
	logger *zap.Logger
}

// NewWorker creates a background enrichment worker with a bounded queue.
func NewWorker(s store, ttl time.Duration, queueSize int, logger *zap.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Worker{
		store:  s,
		ttl:    ttl,
		queue:  make(chan domain.Dog, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start runs the worker loop until ctx is canceled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case dog := <-w.queue:
				w.process(ctx, dog)
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *Worker) Wait() {
	<-w.done
}

// Submit enqueues dogs for background enrichment. Never blocks: dogs that
// do not fit in the queue are skipped and will be derived on demand.
func (w *Worker) Submit(dogs []domain.Dog) {
	for _, d := range dogs {
		select {
		case w.queue <- d:
		default:
			w.logger.Debug("enrichment queue full, skipping", zap.String("dog_id", d.ID))
			return
		}
	}
}

// Facts returns cached derived facts for a dog id.
func (w *Worker) Facts(ctx context.Context, dogID string) (*domain.DerivedFacts, bool) {
	data, err := w.store.Get(ctx, factsKey(dogID))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var facts domain.DerivedFacts
	if err := json.Unmarshal(data, &facts); err != nil {
		w.logger.Warn("Failed to parse cached facts", zap.String("dog_id", dogID), zap.Error(err))
		return nil, false
	}
	return &facts, true
}

// process has its own error boundary: a panic in derivation must not take
// the loop down.
func (w *Worker) process(ctx context.Context, dog domain.Dog) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("enrichment panic", zap.String("dog_id", dog.ID), zap.Any("panic", r))
		}
	}()

	enriched := Derive(dog)
	if enriched.Facts == nil {
		return
	}

	data, err := json.Marshal(enriched.Facts)
	if err != nil {
		w.logger.Warn("Failed to encode facts", zap.String("dog_id", dog.ID), zap.Error(err))
		return
	}
	if err := w.store.SetWithTTL(ctx, factsKey(dog.ID), data, w.ttl); err != nil {
		w.logger.Warn("Failed to cache facts", zap.String("dog_id", dog.ID), zap.Error(err))
	}
}
