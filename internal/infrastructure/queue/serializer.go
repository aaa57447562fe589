package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the serializer's workers have exited.
var ErrStopped = errors.New("serializer stopped")

type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// Serializer routes document mutations to a fixed set of workers using
// consistent hashing on a key, so mutations sharing a key run one at a time
// and in arrival order.
type Serializer struct {
	workers []chan job
	stopped chan struct{}
	log     zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Serializer) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(s.stopped)
	}()
}

// Do runs fn on the worker owning key and waits for its result. fn must not
// call Do itself: a nested call on the same shard would never be picked up.
func (s *Serializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	idx := s.shardIndex(key)

	select {
	case s.workers[idx] <- j:
		metrics.MutationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(s.workers[idx])))
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-s.stopped:
		return ErrStopped
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	depth := metrics.MutationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			depth.Set(float64(len(ch)))
			start := time.Now()
			err := j.fn(j.ctx)
			metrics.MutationDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				s.log.Debug().Err(err).Int("worker_id", id).Msg("mutation failed")
			}
			j.done <- err
		}
	}
}
