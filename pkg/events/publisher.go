// Package events publishes inventory and access events to RabbitMQ.
// Publishing is best effort: callers log a failed Publish and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultPublishTimeout bounds one Publish call, connect included.
const DefaultPublishTimeout = 2 * time.Second

const (
	InventoryItemCreated = "inventory.item.created"
	InventoryItemDeleted = "inventory.item.deleted"
	HomeAccessGranted    = "home.access.granted"
)

type (
	InventoryItemEvent struct {
		ItemID     uint       `json:"item_id"`
		HomeID     uint       `json:"home_id"`
		Name       string     `json:"name"`
		Quantity   int        `json:"quantity"`
		Expiration *time.Time `json:"expiration_date,omitempty"`
		ActorID    uint       `json:"actor_id"`
		// RecommendedItemID is set when the item was materialized from the catalog.
		RecommendedItemID *uint `json:"recommended_item_id,omitempty"`
	}

	HomeAccessEvent struct {
		HomeID    uint   `json:"home_id"`
		UserID    uint   `json:"user_id"`
		Role      string `json:"role"`
		GrantedBy uint   `json:"granted_by"`
	}

	Publisher interface {
		Publish(ctx context.Context, routingKey string, event any) error
	}

	amqpPublisher struct {
		url     string
		timeout time.Duration
	}

	nopPublisher struct{}
)

// NewPublisher returns a RabbitMQ publisher for url, or a no-op publisher
// when url is empty. A non-positive timeout means DefaultPublishTimeout.
func NewPublisher(url string, timeout time.Duration) Publisher {
	if url == "" {
		return nopPublisher{}
	}
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &amqpPublisher{url: url, timeout: timeout}
}

func Nop() Publisher { return nopPublisher{} }

// Publish opens a short-lived connection, declares a durable queue named
// after the routing key and sends a persistent JSON message to it. The whole
// call, handshake included, is bounded by the publisher timeout.
func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      dialContext(ctx),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(routingKey, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx, "", routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// dialContext connects within ctx and keeps ctx's deadline on the socket
// until the AMQP handshake clears it.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }
