// Package amqp publishes fulfillment events to RabbitMQ.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"starmap/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FulfilledRoutingKey is the routing key of order fulfilled events.
const FulfilledRoutingKey = "order.fulfilled"

var (
	ErrPublishNacked       = errors.New("publish NACK from broker")
	ErrConfirmsChannelGone = errors.New("broker confirms channel closed")
)

var _ ports.Notifier = (*Publisher)(nil)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	GetNextPublishSeqNo() uint64
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// FulfilledEvent is the JSON body of an order.fulfilled message.
type FulfilledEvent struct {
	OrderID      int64     `json:"orderId"`
	OrderName    string    `json:"orderName"`
	Email        string    `json:"email"`
	PlaceName    string    `json:"placeName"`
	Coordinates  string    `json:"coordinates"`
	ArtifactURL  string    `json:"artifactUrl"`
	ArtifactSize int64     `json:"artifactSize"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher sends one persistent message per notification and waits for
// the broker confirm. Publishes are serialized and each one waits for the
// confirm carrying its own delivery tag; confirms for earlier publishes whose
// Send gave up are dropped.
type Publisher struct {
	ch       Channel
	acks     <-chan amqp.Confirmation
	exchange string
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex
}

func NewPublisher(ch Channel, acks <-chan amqp.Confirmation, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		acks:     acks,
		exchange: exchange,
		logger:   logger.With("component", "amqp_publisher"),
		now:      time.Now,
	}
}

// Connection owns the broker connection behind a Publisher.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func (c *Connection) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Dial connects to url, declares a durable topic exchange and puts the
// channel in confirm mode.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, *Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	c := &Connection{conn: conn, ch: ch}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return NewPublisher(ch, acks, exchange, logger), c, nil
}

func (p *Publisher) Send(ctx context.Context, n ports.Notification) error {
	now := p.now().UTC()
	body, err := json.Marshal(FulfilledEvent{
		OrderID:      n.OrderID,
		OrderName:    n.OrderName,
		Email:        n.CustomerEmail,
		PlaceName:    n.PlaceName,
		Coordinates:  n.Coordinates,
		ArtifactURL:  n.ArtifactURL,
		ArtifactSize: n.ArtifactSize,
		OccurredAt:   now,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx, p.exchange, FulfilledRoutingKey, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     strconv.FormatInt(now.UnixNano(), 10),
		CorrelationId: strconv.FormatInt(n.OrderID, 10),
		Timestamp:     now,
		Headers:       amqp.Table{"x-source": "starmap"},
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("publish order %d: %w", n.OrderID, err)
	}

	if err := p.awaitConfirm(ctx, tag); err != nil {
		return fmt.Errorf("confirm order %d: %w", n.OrderID, err)
	}

	p.logger.InfoContext(ctx, "event published", "orderId", n.OrderID, "exchange", p.exchange)
	return nil
}

// awaitConfirm reads confirms until the one for tag arrives. Confirms are
// delivered in tag order, so anything below tag belongs to an abandoned Send.
func (p *Publisher) awaitConfirm(ctx context.Context, tag uint64) error {
	for {
		select {
		case conf, ok := <-p.acks:
			if !ok {
				return ErrConfirmsChannelGone
			}
			if conf.DeliveryTag < tag {
				p.logger.WarnContext(ctx, "dropping stale confirm",
					"deliveryTag", conf.DeliveryTag, "ack", conf.Ack, "awaiting", tag)
				continue
			}
			if !conf.Ack {
				return ErrPublishNacked
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
