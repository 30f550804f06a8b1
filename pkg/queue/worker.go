package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"jobboard-backend/pkg/logger"
)

type message struct {
	routingKey string
	body       []byte
}

// WorkerPool runs tasks on a fixed number of goroutines fed by a bounded channel.
type WorkerPool struct {
	handler     Handler
	tasks       chan message
	wg          sync.WaitGroup
	mu          sync.RWMutex
	closed      bool
	taskTimeout time.Duration
}

// NewWorkerPool starts workers goroutines sharing a backlog of the given size.
func NewWorkerPool(workers, backlog int, handler Handler) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if backlog < 1 {
		backlog = 1
	}
	p := &WorkerPool{
		handler:     handler,
		tasks:       make(chan message, backlog),
		taskTimeout: 2 * time.Minute,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

func (p *WorkerPool) run(id int) {
	defer p.wg.Done()
	for msg := range p.tasks {
		p.process(id, msg)
	}
}

func (p *WorkerPool) process(id int, msg message) {
	// Requests have already returned, so tasks get their own context.
	ctx, cancel := context.WithTimeout(context.Background(), p.taskTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Background task panicked", "worker", id, "routing_key", msg.routingKey, "panic", fmt.Sprint(r))
		}
	}()

	if err := p.handler(ctx, msg.routingKey, msg.body); err != nil {
		logger.Log.Error("Background task failed", "worker", id, "routing_key", msg.routingKey, "error", err)
	}
}

// Publish never blocks: a full backlog yields ErrQueueFull.
func (p *WorkerPool) Publish(_ context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", routingKey, err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	select {
	case p.tasks <- message{routingKey: routingKey, body: body}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *WorkerPool) Close() {
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
