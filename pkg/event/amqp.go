package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shashiranjanraj/pubqr/pkg/logger"
	"github.com/shashiranjanraj/pubqr/pkg/metrics"
	"github.com/shashiranjanraj/pubqr/pkg/workerpool"
)

// Exchange is the topic exchange order events are published to.
const Exchange = "orders_topic"

// Keyed payloads choose their own routing key; others are published under
// the event name.
type Keyed interface {
	RoutingKey() string
}

func routingKey(name string, payload interface{}) string {
	if k, ok := payload.(Keyed); ok && k.RoutingKey() != "" {
		return k.RoutingKey()
	}
	return name
}

// Confirmer is the broker confirmation of one publish. It is satisfied by
// *amqp.DeferredConfirmation.
type Confirmer interface {
	WaitContext(ctx context.Context) (bool, error)
}

// Channel publishes one message and returns its own confirmation, or nil
// when the channel is not in confirm mode.
type Channel interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (Confirmer, error)
}

// amqpChannel adapts *amqp.Channel to Channel using deferred confirms, so a
// late ack can never be read by a different publish.
type amqpChannel struct {
	ch *amqp.Channel
}

func (c amqpChannel) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (Confirmer, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, nil
	}
	return dc, nil
}

// Publisher forwards events to a RabbitMQ topic exchange.
type Publisher struct {
	conn *amqp.Connection
	ch   Channel
	pool *workerpool.Pool
}

// DialPublisher connects to url, declares the exchange and enables
// publisher confirms.
func DialPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("event: amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("event: amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("event: declare %s: %w", Exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("event: confirm mode: %w", err)
	}
	return &Publisher{conn: conn, ch: amqpChannel{ch: ch}}, nil
}

// NewPublisher wraps an existing channel.
func NewPublisher(ch Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Publish sends payload as persistent JSON and, when the channel confirms,
// waits for the broker to ack this message.
func (p *Publisher) Publish(ctx context.Context, name string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("event: marshal %s: %w", name, err)
	}

	confirm, err := p.ch.Publish(ctx, Exchange, routingKey(name, payload), amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Type:         name,
		Headers:      amqp.Table{"x-source": "pubqr"},
		Body:         body,
	})
	if err != nil {
		return err
	}
	if confirm == nil {
		return nil
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errors.New("event: publish NACK from broker")
	}
	return nil
}

// UsePool moves forwarded publishes onto pool. Without a pool Forward
// publishes inline on the goroutine that fired the event.
func (p *Publisher) UsePool(pool *workerpool.Pool) {
	p.pool = pool
}

// Forward registers listeners that publish every order event. Failures are
// logged and counted and never reach the HTTP caller.
func (p *Publisher) Forward(names ...string) {
	for _, name := range names {
		name := name
		Listen(name, func(payload interface{}) {
			if p.pool == nil {
				p.forward(name, payload)
				return
			}
			if err := p.pool.Submit(func() { p.forward(name, payload) }); err != nil {
				metrics.EventsPublished.WithLabelValues(name, "dropped").Inc()
				logger.Warn("event publish dropped", "event", name, "error", err)
			}
		})
	}
}

func (p *Publisher) forward(name string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, name, payload); err != nil {
		metrics.EventsPublished.WithLabelValues(name, "error").Inc()
		logger.Warn("event publish failed", "event", name, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(name, "ok").Inc()
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
