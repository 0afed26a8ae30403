package worker

import (
	"context"
	"fmt"
	"sync"

	"viewset-bot/internal/pkg/logger"

	"golang.org/x/sync/semaphore"
)

// Pool runs tasks on at most size goroutines at a time. Submit blocks while
// the pool is full.
type Pool struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger logger.ILogger
}

func NewPool(size int, log logger.ILogger) *Pool {
	if size <= 0 {
		size = 1
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), logger: log}
}

// Submit waits for a free slot and runs task on it. It fails only when ctx
// ends before a slot frees up.
func (p *Pool) Submit(ctx context.Context, task func(ctx context.Context)) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire worker: %w", err)
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("WorkerPool", "Task panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			}
		}()
		task(ctx)
	}()
	return nil
}

// Wait blocks until every submitted task has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
