package events

import (
	"context"
	"fmt"
	"time"

	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

const (
	DriverNone     = "none"
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

// BookingPaid is emitted once a booking transaction has committed.
type BookingPaid struct {
	EventType  string    `json:"event_type"`
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	ShowTimeID string    `json:"show_time_id"`
	TicketIDs  []string  `json:"ticket_ids"`
	SeatLabels []string  `json:"seat_labels"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventBookingPaid = "booking.paid"

// Publisher delivers domain events to a broker. Key is used for partitioning
// where the broker supports it.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NewPublisher picks the broker driver from config.
func NewPublisher(config utils.EventsConfig, log *zap.Logger) (Publisher, error) {
	switch config.Driver {
	case "", DriverNone:
		return NoopPublisher{}, nil
	case DriverRabbitMQ:
		return NewRabbitMQPublisher(config.RabbitMQURL, config.Topic, log)
	case DriverKafka:
		return NewKafkaPublisher(config.KafkaBrokers, config.Topic, log)
	default:
		return nil, fmt.Errorf("unknown events driver %q", config.Driver)
	}
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
