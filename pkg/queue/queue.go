// Package queue hands background tasks from request handlers to workers,
// either through RabbitMQ or an in-process pool when no broker is configured.
package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by the in-process pool when its backlog is exhausted.
var ErrQueueFull = errors.New("queue: backlog full")

// ErrClosed is returned when publishing after shutdown.
var ErrClosed = errors.New("queue: closed")

// Publisher enqueues a JSON-encodable payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close()
}

// Handler processes one delivered message. Returning an error nacks it on
// RabbitMQ and is logged by the in-process pool.
type Handler func(ctx context.Context, routingKey string, body []byte) error
