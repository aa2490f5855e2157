package softgl

import (
	"context"
	"sync"
)

// RasterJob shades a band of rows. Done is signalled when Run returns.
type RasterJob struct {
	Run  func()
	Done *sync.WaitGroup
}

// RasterPool manages goroutines that shade row bands in parallel.
type RasterPool struct {
	jobQueue chan RasterJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewRasterPool creates a pool with the given number of workers.
func NewRasterPool(workers int, queueSize int) *RasterPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &RasterPool{
		jobQueue: make(chan RasterJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (p *RasterPool) Workers() int {
	return p.workers
}

// SubmitJob queues a job without blocking.
// Returns false if the queue is full or the pool is shut down.
func (p *RasterPool) SubmitJob(job RasterJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (p *RasterPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			job.Run()
			if job.Done != nil {
				job.Done.Done()
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit. Jobs still queued
// are dropped.
func (p *RasterPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
