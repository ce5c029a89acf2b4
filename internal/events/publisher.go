// Package events publishes domain events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// Routing keys of the events emitted by the services.
const (
	GymPassPurchased  = "gympass.purchased"
	GymPassSuspended  = "gympass.suspended"
	GymPassEntry      = "gympass.entry"
	TaskCreated       = "task.created"
	TaskApproval      = "task.approval"
	TaskReported      = "task.reported"
	TaskEvaluated     = "task.evaluated"
	TrainingRequested = "training.requested"
	TrainingAccepted  = "training.accepted"
	TrainingRejected  = "training.rejected"
	TrainingCancelled = "training.cancelled"
)

// Event is the envelope written to the exchange.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// PublishMessage marshals message to JSON and publishes it as a persistent message.
func PublishMessage(ch channel, exchange, routingKey string, message any) error {
	const op = "events.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Connect dials the broker, retrying up to retries times.
func Connect(url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "events.Connect"
	var conn *amqp.Connection
	var err error

	for n := max(retries, 1); n > 0; n-- {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		log.Warn().Err(err).Msg("rabbitmq not reachable, retrying")
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

type amqpPublisher struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQPPublisher opens a channel on conn and declares a durable topic exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (Publisher, error) {
	const op = "events.NewAMQPPublisher"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, routingKey, Event{
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }

// PublishAsync publishes in the background and only logs failures, so a broker
// outage never fails the request that produced the event.
func PublishAsync(p Publisher, routingKey string, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, routingKey, payload); err != nil {
			log.Error().Err(err).Str("event", routingKey).Msg("failed to publish event")
		}
	}()
}
