package events

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Channel interface {
	Confirm(noWait bool) error
	PublishWithDeferredConfirmWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) (*amqp091.DeferredConfirmation, error)
	Close() error
}

// ChannelOpener hands out a fresh channel per publish.
type ChannelOpener func() (Channel, error)

type Publisher struct {
	open     ChannelOpener
	exchange string
	closer   io.Closer
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url string, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial amqp")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to open amqp channel")
	}
	defer func() {
		_ = ch.Close()
	}()

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}

	return NewPublisher(func() (Channel, error) {
		return conn.Channel()
	}, exchange, conn), nil
}

func NewPublisher(
	open ChannelOpener,
	exchange string,
	closer io.Closer,
) *Publisher {
	return &Publisher{
		open:     open,
		exchange: exchange,
		closer:   closer,
	}
}

// Publish sends the envelope as persistent JSON and waits for the broker confirm.
func (p *Publisher) Publish(ctx context.Context, key string, envelope Envelope) error {
	ch, err := p.open()
	if err != nil {
		return errors.Wrap(err, "failed to open amqp channel")
	}
	defer func() {
		_ = ch.Close()
	}()

	if err = ch.Confirm(false); err != nil {
		return errors.Wrap(err, "failed to enable publisher confirms")
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	msgID := envelope.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(
		ctx, p.exchange, key, false, false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     msgID,
			CorrelationId: envelope.Meta.CorrelationID,
			Type:          envelope.Meta.Type,
			Timestamp:     time.Now().UTC(),
			Body:          body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s", key)
	}

	if confirm != nil {
		acked, waitErr := confirm.WaitContext(ctx)
		if waitErr != nil {
			return errors.Wrapf(waitErr, "failed to wait confirm for %s", key)
		}

		if !acked {
			return errors.Newf("broker nacked %s", key)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("key", key).Str("exchange", p.exchange).
		Str("event_id", msgID).Msg("published")

	return nil
}

func (p *Publisher) Close() error {
	if p.closer == nil {
		return nil
	}

	return p.closer.Close()
}
