// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/cruise-booking/internal/queue"
)

// PublishBookingRecorded publishes a BookingRecordedEvent to the
// booking.recorded queue. The function attempts to be robust and
// to never panic; any error is logged and returned so the caller can
// choose to ignore it. Messages are marked as persistent.
func PublishBookingRecorded(ctx context.Context, event q.BookingRecordedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BookingQueueName, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(pubCtx,
		"",                 // exchange: default
		q.BookingQueueName, // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
