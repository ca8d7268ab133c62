package service

import (
	"context"
	"sync"
	"time"

	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

const defaultJobTimeout = 30 * time.Second

// SettlementQueueImpl implements ports.SettlementQueue as a bounded channel
// drained by exactly one worker goroutine. Jobs run one at a time in FIFO
// order; a failing or panicking job is logged and the next job runs
// regardless. There is no retry, backoff or dead-letter handling: a failed
// sync is dropped and the next poll or webhook picks the payment up again.
type SettlementQueueImpl struct {
	jobs       chan ports.Job
	jobTimeout time.Duration
	log        zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewSettlementQueue creates and starts a settlement queue with the given
// buffer size.
func NewSettlementQueue(size int, log zerolog.Logger) *SettlementQueueImpl {
	if size <= 0 {
		size = 64
	}
	q := &SettlementQueueImpl{
		jobs:       make(chan ports.Job, size),
		jobTimeout: defaultJobTimeout,
		log:        log,
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue schedules a job without blocking. A full queue returns QUE_001 and
// a closed queue QUE_002; the job is not retried in either case.
func (q *SettlementQueueImpl) Enqueue(job ports.Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return apperror.ErrQueueClosed()
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return apperror.ErrQueueFull()
	}
}

// Close stops intake and waits for pending jobs to drain. If ctx expires
// first, the remaining jobs are discarded with a logged count.
func (q *SettlementQueueImpl) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		q.log.Warn().
			Int("discarded", len(q.jobs)).
			Msg("settlement queue shutdown timed out, discarding pending jobs")
		return ctx.Err()
	}
}

func (q *SettlementQueueImpl) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.runJob(job)
	}
}

func (q *SettlementQueueImpl) runJob(job ports.Job) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error().
				Str("job", job.Name).
				Interface("panic", r).
				Msg("settlement job panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), q.jobTimeout)
	defer cancel()

	if err := job.Run(ctx); err != nil {
		q.log.Error().
			Err(err).
			Str("job", job.Name).
			Msg("settlement job failed")
	}
}
