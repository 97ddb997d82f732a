// Package rabbitmq publica los eventos de dominio en un exchange topic.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"vet-clinic/internal/ports/notify"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	appID    string
	now      func() time.Time
}

var _ notify.Publisher = (*Publisher)(nil)

// NewPublisher conecta y declara el exchange (topic, durable).
func NewPublisher(url, exchange, appID string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, appID: appID, now: time.Now}, nil
}

// Publish usa la routing key tal cual (p.ej. "user.deleted").
func (p *Publisher) Publish(ctx context.Context, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		AppId:        p.appID,
		Type:         key,
		Timestamp:    p.now().UTC(),
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
