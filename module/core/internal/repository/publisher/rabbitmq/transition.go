package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/publisher"
)

var _ publisher.TransitionPublisher = (*TransitionPublisher)(nil)

const (
	exchangeName = "geofence.events"
	queueName    = "geofence_alerts"
)

type TransitionPublisher struct {
	ch *amqp.Channel
}

func NewTransitionPublisher(conn *amqp.Connection) (*TransitionPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &TransitionPublisher{ch: ch}, nil
}

type alertMessage struct {
	GeofenceID string                 `json:"geofence_id"`
	Event      domain.TransitionEvent `json:"event"`
	Location   alertLocation          `json:"location"`
	Timestamp  int64                  `json:"timestamp"`
}

type alertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *TransitionPublisher) PublishTransition(ctx context.Context, tr *domain.Transition) error {
	msg := alertMessage{
		GeofenceID: tr.GeofenceID,
		Event:      tr.Event,
		Location: alertLocation{
			Latitude:  tr.Sample.Lat,
			Longitude: tr.Sample.Lon,
		},
		Timestamp: tr.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
