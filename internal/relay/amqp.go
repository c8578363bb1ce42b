package relay

import (
	"context"
	"fmt"

	"github.com/nixpig/slideworker/internal/jobmanager"
	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQPConfig struct {
	URL      string
	Exchange string
}

// AMQPSink publishes Events to a topic exchange with routing keys of the form
// job.<type>.<status>.
type AMQPSink struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPSink dials the broker and declares the exchange.
func NewAMQPSink(cfg AMQPConfig) (*AMQPSink, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPSink{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

func (s *AMQPSink) Name() string {
	return "amqp"
}

func (s *AMQPSink) Send(ctx context.Context, e jobmanager.Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(ctx,
		s.exchange,
		routingKey(e),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   fmt.Sprintf("%s-%d", e.ID, e.Job.Version),
			Body:        payload,
		},
	)
}

func (s *AMQPSink) Close() error {
	s.channel.Close()
	return s.conn.Close()
}

func routingKey(e jobmanager.Event) string {
	return fmt.Sprintf("job.%s.%s", e.Job.Type, e.Job.Status)
}
