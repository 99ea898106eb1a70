// Package event publishes domain events to the configured broker.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"nightlife/config"
	"nightlife/infras/kafka"
	"nightlife/infras/otel"
	"nightlife/infras/rabbitmq"
	"nightlife/shared/constant"
	"nightlife/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TopicBookingCreated       = "booking.created"
	TopicBookingStatusChanged = "booking.status_changed"
	TopicBookingArrived       = "booking.arrived"
	TopicRedemptionApplied    = "redemption.applied"
)

const (
	DriverNone     = "none"
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
)

type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) (err error)
}

type publisherImpl struct {
	driver string
	prefix string
	kafka  kafka.Client
	rabbit rabbitmq.Client
	otel   otel.Otel
}

func New(cfg *config.Config, kafkaClient kafka.Client, rabbitClient rabbitmq.Client, otl otel.Otel) Publisher {
	driver := cfg.Events.Driver
	if driver == "" {
		driver = DriverNone
	}

	return &publisherImpl{
		driver: driver,
		prefix: cfg.Events.TopicPrefix,
		kafka:  kafkaClient,
		rabbit: rabbitClient,
		otel:   otl,
	}
}

// Publish wraps payload in an Envelope. The key orders events of one aggregate on kafka.
func (p *publisherImpl) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	envelope := Envelope{
		ID:         uuid.NewString(),
		Type:       topic,
		Key:        key,
		OccurredAt: timezone.Now(),
		Payload:    payload,
	}

	name := p.prefix + topic

	scope.SetAttributes(map[string]any{
		"event.id":     envelope.ID,
		"event.topic":  name,
		"event.driver": p.driver,
	})

	switch p.driver {
	case DriverKafka:
		err = p.kafka.SendMessages(ctx, name, kafka.Message{
			Key:     key,
			Value:   envelope,
			Headers: map[string]string{"event-type": topic},
		})
	case DriverRabbitMQ:
		err = p.rabbit.Publish(ctx, name, envelope)
	case DriverNone:
		log.Debug().Str("topic", name).Str("key", key).Str("event_id", envelope.ID).Msg("event publishing disabled")
	default:
		err = fmt.Errorf("unknown event driver %q", p.driver)
	}

	if err != nil {
		log.Error().Err(err).Str("topic", name).Str("key", key).Msg("failed to publish event")

		return fmt.Errorf("failed to publish %s: %w", name, err)
	}

	return nil
}
