package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// ExchangeName is the topic exchange order events are published to.
	ExchangeName = "shop_kart.orders"
	exchangeType = "topic"

	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// Publisher publishes order lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// amqpPublisher implements Publisher on top of a RabbitMQ topic exchange.
// Routing key is the event type (e.g. "new_order"), so consumers can bind
// selectively.
type amqpPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger zerolog.Logger
}

// NewAMQPPublisher dials the broker, declares the order exchange and
// returns a ready publisher. Dialing retries a few times to tolerate
// broker container startup.
func NewAMQPPublisher(url string, logger zerolog.Logger) (Publisher, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("failed to connect to RabbitMQ")
		time.Sleep(dialBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return &amqpPublisher{
		conn:   conn,
		ch:     ch,
		logger: logger.With().Str("publisher", "amqp").Logger(),
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal order event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName, // exchange
		event.Type,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("could not publish order event: %w", err)
	}

	p.logger.Debug().
		Str("event_type", event.Type).
		Str("order_id", event.OrderID.String()).
		Msg("order event published")

	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event OrderEvent) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
