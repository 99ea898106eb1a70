package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/shared/constant"
	"nightlife/shared/timezone"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const exchangeKind = "topic"

var ErrNotConfigured = errors.New("rabbitmq url is not configured")

type Client interface {
	Publish(ctx context.Context, routingKey string, payload any) (err error)
	Close() error
}

type rabbitClientImpl struct {
	url      string
	exchange string
	otel     otel.Otel

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New returns a publisher that dials lazily, so a missing broker only fails the publish call.
func New(config *config.Config, otl otel.Otel) Client {
	return &rabbitClientImpl{
		url:      config.RabbitMQ.URL,
		exchange: config.RabbitMQ.Exchange,
		otel:     otl,
	}
}

func (r *rabbitClientImpl) channelLocked() (*amqp.Channel, error) {
	if r.channel != nil && !r.channel.IsClosed() {
		return r.channel, nil
	}

	if r.url == "" {
		return nil, ErrNotConfigured
	}

	if r.conn == nil || r.conn.IsClosed() {
		conn, err := amqp.Dial(r.url)
		if err != nil {
			return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
		}

		r.conn = conn
	}

	channel, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	err = channel.ExchangeDeclare(r.exchange, exchangeKind, true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()

		return nil, fmt.Errorf("failed to declare exchange %s: %w", r.exchange, err)
	}

	log.Info().Str("exchange", r.exchange).Msg("RabbitMQ channel ready")

	r.channel = channel

	return channel, nil
}

// Publish sends payload as persistent JSON on the topic exchange.
func (r *rabbitClientImpl) Publish(ctx context.Context, routingKey string, payload any) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRabbitScopeName, constant.OtelRabbitScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"messaging.destination": r.exchange,
		"messaging.routing_key": routingKey,
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal rabbitmq payload: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	channel, err := r.channelLocked()
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("RabbitMQ channel unavailable")

		return err
	}

	err = channel.PublishWithContext(ctx, r.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    timezone.Now(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to publish to RabbitMQ")

		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	return nil
}

func (r *rabbitClientImpl) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error

	if r.channel != nil {
		errs = append(errs, r.channel.Close())
		r.channel = nil
	}

	if r.conn != nil {
		errs = append(errs, r.conn.Close())
		r.conn = nil
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close rabbitmq: %w", err)
	}

	return nil
}
