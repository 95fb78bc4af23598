package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits analytics events. Publishing is best-effort from the
// request path: a nil *Publisher drops events silently, and callers log but
// never fail a user request on publish errors.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// EventMessage is the wire shape consumed by cmd/worker.
type EventMessage struct {
	Kind     string    `json:"kind"`
	UserID   string    `json:"user_id"`
	EntityID string    `json:"entity_id"`
	Tokens   int       `json:"tokens,omitempty"`
	At       time.Time `json:"at"`
}

func queueNames(queue string) (mainQ, retryQ, dlqQ string) {
	return queue, queue + ".retry", queue + ".dlq"
}

func mainQueueArgs(queue string) amqp.Table {
	_, _, dlqQ := queueNames(queue)
	return amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqQ,
	}
}

func retryQueueArgs(queue string) amqp.Table {
	mainQ, _, _ := queueNames(queue)
	return amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": mainQ,
	}
}

// DeclareTopology declares the three queues shared by the publisher and
// cmd/worker. Rejected deliveries (nack without requeue) dead-letter from
// the main queue to <queue>.dlq; messages placed on <queue>.retry
// dead-letter back into the main queue, so an operator can drain the DLQ
// through it for redelivery.
func DeclareTopology(ch *amqp.Channel, queue string) error {
	mainQ, retryQ, dlqQ := queueNames(queue)

	// DLQ
	if _, err := ch.QueueDeclare(
		dlqQ,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		return err
	}

	// Retry queue: dead-letters back to the main queue
	if _, err := ch.QueueDeclare(
		retryQ,
		true,
		false,
		false,
		false,
		retryQueueArgs(queue),
	); err != nil {
		return err
	}

	// Main queue: dead-letters to the DLQ on reject/nack(requeue=false)
	if _, err := ch.QueueDeclare(
		mainQ,
		true,
		false,
		false,
		false,
		mainQueueArgs(queue),
	); err != nil {
		return err
	}
	return nil
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// match worker
	if err := DeclareTopology(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) Publish(ctx context.Context, msg EventMessage) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
