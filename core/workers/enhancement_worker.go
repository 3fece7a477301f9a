// ABOUTME: Enhancement worker runs batch enhancement jobs on a bounded worker pool
// ABOUTME: Each document in a batch succeeds or fails independently

package workers

import (
	"context"
	"sync"
	"time"

	"commonplace-api/core/domain"
	"commonplace-api/core/interfaces"

	"golang.org/x/sync/errgroup"
)

// EnhancementJob is one document queued for enhancement
type EnhancementJob struct {
	Request  interfaces.EnhanceRequest
	Context  context.Context
	ResultCh chan<- JobResult
}

// JobResult is the outcome of one job
type JobResult struct {
	DocumentID string
	Result     *domain.EnhancementResult
	Err        error
}

// EnhancementWorker manages a pool of goroutines running the enhancement pipeline
type EnhancementWorker struct {
	service       interfaces.EnhancementService
	logger        interfaces.Logger
	jobQueue      chan *EnhancementJob
	maxWorkers    int
	submitTimeout time.Duration
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.RWMutex
	running       bool
}

// WorkerConfig holds configuration for the enhancement worker
type WorkerConfig struct {
	MaxWorkers    int
	QueueSize     int
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    4,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewEnhancementWorker creates a new enhancement worker
func NewEnhancementWorker(service interfaces.EnhancementService, logger interfaces.Logger, config WorkerConfig) *EnhancementWorker {
	ctx, cancel := context.WithCancel(context.Background())
	defaults := DefaultWorkerConfig()

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = defaults.SubmitTimeout
	}

	return &EnhancementWorker{
		service:       service,
		logger:        logger,
		jobQueue:      make(chan *EnhancementJob, config.QueueSize),
		maxWorkers:    config.MaxWorkers,
		submitTimeout: config.SubmitTimeout,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start starts the worker pool
func (ew *EnhancementWorker) Start() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if ew.running {
		return nil
	}

	for i := 0; i < ew.maxWorkers; i++ {
		ew.wg.Add(1)
		go ew.run(i)
	}

	ew.running = true
	return nil
}

// Stop cancels in-flight jobs and waits for the workers to exit. A stopped
// pool cannot be restarted.
func (ew *EnhancementWorker) Stop() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if !ew.running {
		return nil
	}

	ew.cancel()
	ew.wg.Wait()
	ew.drain()

	ew.running = false
	return nil
}

// drain fails jobs that were queued but never picked up
func (ew *EnhancementWorker) drain() {
	for {
		select {
		case job := <-ew.jobQueue:
			if job.ResultCh != nil {
				select {
				case job.ResultCh <- JobResult{DocumentID: job.Request.DocumentID, Err: ErrWorkerNotRunning}:
				default:
				}
			}
		default:
			return
		}
	}
}

// Running reports whether the pool accepts jobs
func (ew *EnhancementWorker) Running() bool {
	ew.mu.RLock()
	defer ew.mu.RUnlock()
	return ew.running
}

// SubmitJob queues a job, waiting up to the submit timeout for space.
// The read lock is held until the job is queued so Stop cannot drain in between.
func (ew *EnhancementWorker) SubmitJob(job *EnhancementJob) error {
	ew.mu.RLock()
	defer ew.mu.RUnlock()

	if !ew.running {
		return ErrWorkerNotRunning
	}
	if job.Context == nil {
		job.Context = context.Background()
	}

	timer := time.NewTimer(ew.submitTimeout)
	defer timer.Stop()

	select {
	case ew.jobQueue <- job:
		return nil
	case <-job.Context.Done():
		return job.Context.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// EnhanceBatch runs every request through the pool and returns one result per
// request, in request order. Failures are reported per item.
func (ew *EnhancementWorker) EnhanceBatch(ctx context.Context, reqs []interfaces.EnhanceRequest) ([]JobResult, error) {
	results := make([]JobResult, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			ch := make(chan JobResult, 1)
			job := &EnhancementJob{Request: req, Context: gctx, ResultCh: ch}
			if err := ew.SubmitJob(job); err != nil {
				results[i] = JobResult{DocumentID: req.DocumentID, Err: err}
				if err == ErrWorkerNotRunning {
					return err
				}
				return nil
			}

			select {
			case res := <-ch:
				results[i] = res
			case <-gctx.Done():
				results[i] = JobResult{DocumentID: req.DocumentID, Err: gctx.Err()}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (ew *EnhancementWorker) run(id int) {
	defer ew.wg.Done()

	for {
		select {
		case job := <-ew.jobQueue:
			ew.processJob(id, job)
		case <-ew.ctx.Done():
			return
		}
	}
}

func (ew *EnhancementWorker) processJob(id int, job *EnhancementJob) {
	ctx, cancel := mergeCancel(job.Context, ew.ctx)
	defer cancel()

	res := JobResult{DocumentID: job.Request.DocumentID}
	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		res.Result, res.Err = ew.service.Enhance(ctx, job.Request)
	}

	if res.Err != nil && ew.logger != nil {
		ew.logger.Warn("Batch enhancement failed", map[string]interface{}{
			"worker":      id,
			"document_id": job.Request.DocumentID,
			"error":       res.Err.Error(),
		})
	}

	if job.ResultCh != nil {
		select {
		case job.ResultCh <- res:
		case <-job.Context.Done():
		}
	}
}

// mergeCancel returns a context derived from job that is also cancelled when pool is
func mergeCancel(job, pool context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(job)
	stop := context.AfterFunc(pool, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
