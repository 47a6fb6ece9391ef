package worker

import (
	"context"
	"time"

	"github.com/laujml/la-cuponera/pkg/cache"
	"github.com/laujml/la-cuponera/pkg/logger"

	"go.uber.org/zap"
)

// InvalidateTask asks the pool to drop cached reads for one offer after its
// stock changed. Listing caches are matched by pattern.
type InvalidateTask struct {
	OfferID string
	Retry   int
}

// InvalidatePool invalidates offer caches off the purchase hot path. A stale
// remaining count in cache is acceptable for display; the conditioned
// decrement keeps the store itself correct.
type InvalidatePool struct {
	taskQueue  chan InvalidateTask
	retryQueue chan InvalidateTask
	cache      cache.CacheService
	workerNum  int
	maxRetry   int
}

// NewInvalidatePool creates a pool with workerNum workers and a bounded queue.
func NewInvalidatePool(c cache.CacheService, workerNum, bufferSize int) *InvalidatePool {
	return &InvalidatePool{
		taskQueue:  make(chan InvalidateTask, bufferSize),
		retryQueue: make(chan InvalidateTask, bufferSize/2),
		cache:      c,
		workerNum:  workerNum,
		maxRetry:   3,
	}
}

// Start launches the workers.
func (p *InvalidatePool) Start() {
	for i := 0; i < p.workerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	logger.Log.Info("Cache invalidation pool started", zap.Int("workers", p.workerNum))
}

func (p *InvalidatePool) worker(id int) {
	for task := range p.taskQueue {
		if err := p.processTask(task); err != nil {
			logger.Log.Warn("Cache invalidation failed",
				zap.Int("worker", id),
				zap.String("offer_id", task.OfferID),
				zap.Error(err))

			if task.Retry < p.maxRetry {
				task.Retry++
				select {
				case p.retryQueue <- task:
				default:
					p.logDroppedTask(task, err)
				}
			} else {
				p.logDroppedTask(task, err)
			}
		}
	}
}

func (p *InvalidatePool) retryWorker() {
	for task := range p.retryQueue {
		// Back off proportionally to the attempt count.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.taskQueue <- task:
		default:
			p.logDroppedTask(task, nil)
		}
	}
}

func (p *InvalidatePool) processTask(task InvalidateTask) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.cache.Delete(ctx, "offer:"+task.OfferID); err != nil {
		return err
	}
	return p.cache.InvalidatePattern(ctx, "offer_list:*")
}

func (p *InvalidatePool) logDroppedTask(task InvalidateTask, err error) {
	// Dropping only delays cache expiry; the TTL bounds the staleness.
	logger.Log.Warn("Cache invalidation task dropped",
		zap.String("offer_id", task.OfferID),
		zap.Int("retries", task.Retry),
		zap.Error(err))
}

// AddTask enqueues an invalidation without blocking the purchase path.
func (p *InvalidatePool) AddTask(task InvalidateTask) {
	select {
	case p.taskQueue <- task:
	default:
		p.logDroppedTask(task, nil)
	}
}
