package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/models"
)

// Publisher sends order lifecycle events to the orders topic exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a publisher over an established connection.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderEvent publishes an order event; the event name doubles as the
// routing key.
func (p *Publisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		"orders_topic", // exchange
		event.Event,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: 2,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("event_publish_failed",
			"", fmt.Sprintf("Failed to publish %s event", event.Event), err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event_published", "",
		fmt.Sprintf("Published %s event for order %d", event.Event, event.OrderID))
	return nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
