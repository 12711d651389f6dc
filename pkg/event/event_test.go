package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/pkg/workerpool"
)

type fakeChannel struct {
	mu   sync.Mutex
	sent []amqp.Publishing
	keys []string
	err  error

	// confirms, when set, hands out one confirmation per publish in order.
	confirms []*fakeConfirm
}

func (f *fakeChannel) Publish(_ context.Context, exchange, key string, msg amqp.Publishing) (Confirmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if exchange != Exchange {
		return nil, errors.New("wrong exchange")
	}
	f.keys = append(f.keys, key)
	f.sent = append(f.sent, msg)
	if len(f.confirms) == 0 {
		return nil, nil
	}
	c := f.confirms[0]
	f.confirms = f.confirms[1:]
	return c, nil
}

type fakeConfirm struct {
	done chan bool
}

func newFakeConfirm() *fakeConfirm { return &fakeConfirm{done: make(chan bool, 1)} }

func (c *fakeConfirm) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ack := <-c.done:
		return ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestFireSync(t *testing.T) {
	t.Cleanup(Flush)
	var got []interface{}
	Listen(OrderCreated, func(p interface{}) { got = append(got, p) })
	Listen(OrderCreated, func(p interface{}) { got = append(got, p) })

	Fire(OrderCreated, "T12")
	Fire(OrderStatusChanged, "ignored")
	assert.Equal(t, []interface{}{"T12", "T12"}, got)
}

func TestPublisherForward(t *testing.T) {
	t.Cleanup(Flush)
	ch := &fakeChannel{}
	NewPublisher(ch).Forward(OrderCreated, OrderStatusChanged)

	Fire(OrderCreated, map[string]string{"tableCode": "T5"})

	require.Len(t, ch.sent, 1)
	assert.Equal(t, OrderCreated, ch.keys[0])
	assert.Equal(t, "application/json", ch.sent[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.sent[0].DeliveryMode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(ch.sent[0].Body, &body))
	assert.Equal(t, "T5", body["tableCode"])
}

type statusMoved struct{ To string }

func (s statusMoved) RoutingKey() string { return "order.status." + s.To }

func TestKeyedRoutingKey(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, NewPublisher(ch).Publish(context.Background(), OrderStatusChanged, statusMoved{To: "served"}))
	assert.Equal(t, []string{"order.status.served"}, ch.keys)
	assert.Equal(t, OrderStatusChanged, ch.sent[0].Type)
}

func TestPublisherErrorDoesNotPanic(t *testing.T) {
	t.Cleanup(Flush)
	ch := &fakeChannel{err: errors.New("closed")}
	p := NewPublisher(ch)

	assert.Error(t, p.Publish(context.Background(), OrderCreated, 1))
	p.Forward(OrderCreated)
	assert.NotPanics(t, func() { Fire(OrderCreated, 1) })
}

func TestPublisherForwardOnPool(t *testing.T) {
	t.Cleanup(Flush)
	ch := &fakeChannel{}
	pool := workerpool.New("events", 1, 4)
	p := NewPublisher(ch)
	p.UsePool(pool)
	p.Forward(OrderStatusChanged)

	Fire(OrderStatusChanged, statusMoved{To: "paid"})
	pool.Shutdown()

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "order.status.paid", ch.keys[0])

	assert.NotPanics(t, func() { Fire(OrderStatusChanged, statusMoved{To: "paid"}) })
	assert.Len(t, ch.sent, 1)
}

func TestPublishWaitsForItsOwnConfirm(t *testing.T) {
	first, second, third := newFakeConfirm(), newFakeConfirm(), newFakeConfirm()
	ch := &fakeChannel{confirms: []*fakeConfirm{first, second, third}}
	p := NewPublisher(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Publish(ctx, OrderCreated, 1), context.DeadlineExceeded)

	// The first message is acked after its publish gave up. That ack must not
	// be taken by the next publish, which the broker rejects.
	first.done <- true
	second.done <- false
	assert.EqualError(t, p.Publish(context.Background(), OrderCreated, 2), "event: publish NACK from broker")

	third.done <- true
	assert.NoError(t, p.Publish(context.Background(), OrderCreated, 3))
	assert.Len(t, ch.sent, 3)
}
