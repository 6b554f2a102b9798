package service

// This file publishes booking events to RabbitMQ.  Errors are logged and
// returned so callers can ignore them without interrupting the request.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/wonderland-tickets/internal/queue"
)

// defaultDialTimeout applies when the caller's ctx has no deadline.
const defaultDialTimeout = 3 * time.Second

// AMQPPublisher publishes SeatsBookedEvent messages to the seats.booked
// queue.  It dials per message; booking volume is low and this keeps the
// publisher free of reconnect state.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

// PublishSeatsBooked publishes ev as a persistent JSON message.
func (p *AMQPPublisher) PublishSeatsBooked(ctx context.Context, ev q.SeatsBookedEvent) error {
	timeout := defaultDialTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
		if timeout <= 0 {
			return ctx.Err()
		}
	}
	// amqp.Dial allows 30s for connect and handshake; bound both by ctx.
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		log.Warnf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warnf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.SeatsBookedQueue, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Warnf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                 // default exchange
		q.SeatsBookedQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		log.Warnf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
