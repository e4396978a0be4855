// Package events publishes booking lifecycle events to RabbitMQ. Publishing
// is best effort: a broker failure is logged by the caller and never fails
// the originating request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "cinema.events"

	RoutingKeyBookingCreated   = "booking.created"
	RoutingKeyBookingConfirmed = "booking.confirmed"
	RoutingKeyBookingCancelled = "booking.cancelled"
	RoutingKeySessionDeleted   = "session.deleted"
)

// BookingEvent is the payload carried by every booking.* routing key. It
// contains enough information for downstream consumers to notify or run
// analytics without querying the primary database.
type BookingEvent struct {
	EventID    string    `json:"eventId"`
	BookingID  int       `json:"bookingId"`
	Reference  string    `json:"reference"`
	UserID     int       `json:"userId"`
	SessionID  int       `json:"sessionId"`
	CinemaID   int       `json:"cinemaId"`
	SeatCount  int       `json:"seatCount"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type SessionDeletedEvent struct {
	EventID          string    `json:"eventId"`
	SessionID        int       `json:"sessionId"`
	Outcome          string    `json:"outcome"`
	OrphanedBookings int       `json:"orphanedBookings"`
	OccurredAt       time.Time `json:"occurredAt"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the durable topic exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}
