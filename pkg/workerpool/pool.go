// Package workerpool runs background work on a fixed number of goroutines.
//
// The event publisher hands broker publishes to a Pool so that placing an
// order or advancing its status never waits on RabbitMQ. When the queue is
// full Submit fails fast with ErrPoolFull and the caller drops the task.
package workerpool

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/pubqr/pkg/logger"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a bounded goroutine pool.
type Pool struct {
	name   string
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New starts size workers with a queue of queue pending tasks. Non-positive
// values fall back to one worker and a queue twice the worker count.
func New(name string, size, queue int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queue <= 0 {
		queue = size * 2
	}

	p := &Pool{name: name, tasks: make(chan func(), queue)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Pending reports how many tasks are queued but not yet picked up.
func (p *Pool) Pending() int {
	return len(p.tasks)
}

// Shutdown stops accepting tasks and waits for the queued ones to finish.
// Calling it again is a no-op.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run keeps a panicking task from taking its worker down.
func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker task panicked", "pool", p.name, "panic", r)
		}
	}()
	task()
}
