package queue

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

// recordingAck captures how a delivery was settled.
type recordingAck struct {
	acked, nacked, requeued bool
}

func (a *recordingAck) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *recordingAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}
func (a *recordingAck) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func TestDeliverSettlesMessages(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		acked   bool
		nacked  bool
	}{
		{
			name:    "success acks",
			handler: func(context.Context, string, []byte) error { return nil },
			acked:   true,
		},
		{
			name:    "error nacks without requeue",
			handler: func(context.Context, string, []byte) error { return errors.New("smtp down") },
			nacked:  true,
		},
		{
			name:    "panic is recovered and nacked",
			handler: func(context.Context, string, []byte) error { panic("nil map") },
			nacked:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &recordingAck{}
			d := amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, RoutingKey: "job.created", Body: []byte(`{}`)}

			assert.NotPanics(t, func() { deliver(d, tt.handler) })
			assert.Equal(t, tt.acked, ack.acked)
			assert.Equal(t, tt.nacked, ack.nacked)
			assert.False(t, ack.requeued)
		})
	}
}
