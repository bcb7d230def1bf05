package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated    = "booking.created"
	TypeBookingExtended   = "booking.extended"
	TypeBookingCheckedOut = "booking.checked_out"
)

// BookingEvent is the payload published for every booking lifecycle
// transition. OccurredAt is set by the publisher, not the caller.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	RoomNo     string    `json:"room_no"`
	GuestName  string    `json:"guest_name"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent)
}

type kafkaPublisher struct {
	config *config.Config
	client kafka.Client
}

func NewPublisher(config *config.Config, client kafka.Client) Publisher {
	return &kafkaPublisher{
		config: config,
		client: client,
	}
}

// PublishBookingEvent sends the event asynchronously. Delivery is best
// effort; a failed publish is logged and never fails the originating
// request.
func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) {
	if !p.config.Kafka.Enable {
		return
	}

	event.Type = eventType
	event.OccurredAt = timezone.Now()

	go func(ctx context.Context) {
		err := p.client.SendMessages(ctx, p.config.Kafka.Topic, kafka.Message{
			Key:   event.BookingID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).
				Str("type", eventType).
				Str("bookingID", event.BookingID).
				Msg("Failed to publish booking event")
		}
	}(context.WithoutCancel(ctx))
}
